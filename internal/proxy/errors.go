package proxy

import (
	"encoding/json"
	"net/http"
)

// Error codes written in the error envelope.
const (
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeUpstream         = "upstream_error"
)

// ErrorResponse is the body of every error the proxy itself produces:
//
//	{"error":{"code":"validation_error","message":"..."}}
//
// Upstream errors are passed through untouched.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
