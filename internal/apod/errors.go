package apod

import (
	"errors"
	"fmt"
)

// Kind classifies a feed failure.
type Kind int

const (
	// KindValidation means the request was rejected before any network call.
	KindValidation Kind = iota + 1
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork
	// KindParse means the response body could not be decoded.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by this package.
type Error struct {
	Kind   Kind
	Op     string
	Status int // HTTP status for non-2xx responses, zero otherwise
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: api returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns a short line suitable for showing to a person.
func (e *Error) Message() string {
	switch e.Kind {
	case KindValidation:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "invalid request"
	case KindNetwork:
		if e.Status != 0 {
			return fmt.Sprintf("API Error: %d", e.Status)
		}
		return "Network error: could not reach the APOD service"
	case KindParse:
		return "Unexpected response from the APOD service"
	default:
		return e.Error()
	}
}

// KindOf returns the Kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func validationError(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}
