package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

// forwarded lists the query parameters passed upstream. Anything else,
// api_key included, is dropped.
var forwarded = []string{"date", "start_date", "end_date", "count", "thumbs"}

// Server forwards feed requests to the upstream API, attaching the
// server-side key.
type Server struct {
	upstream *url.URL
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
	router   *mux.Router
}

// Option customises a Server.
type Option func(*Server)

// WithHTTPClient replaces the client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Server) {
		if hc != nil {
			s.http = hc
		}
	}
}

// New builds a Server for upstream. apiKey must not be empty.
func New(upstream, apiKey string, logger *zap.Logger, opts ...Option) (*Server, error) {
	u, err := url.Parse(strings.TrimSpace(upstream))
	if err != nil {
		return nil, fmt.Errorf("parse upstream %q: %w", upstream, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("parse upstream %q: want an absolute http(s) url", upstream)
	}
	u.RawQuery, u.Fragment = "", ""

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("upstream api key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		upstream: u,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, s.logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/apod", s.handleAPOD).Methods(http.MethodGet)

	// Router middleware does not wrap these two.
	r.NotFoundHandler = requestID(s.logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})))
	r.MethodNotAllowedHandler = requestID(s.logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})))
	return r
}

func (s *Server) handleAPOD(w http.ResponseWriter, r *http.Request) {
	query, err := upstreamQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	query.Set("api_key", s.apiKey)

	target := *s.upstream
	target.RawQuery = query.Encode()

	resp, err := s.forward(r.Context(), target.String())
	if err != nil {
		s.logger.Error("upstream request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, CodeUpstream, "upstream request failed")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		s.logger.Warn("upstream rate limited", zap.String("request_id", RequestID(r.Context())))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		s.logger.Warn("copy upstream body", zap.Error(err))
	}
}

func (s *Server) forward(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		// The key is part of the URL; keep it out of the error.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("execute request: %w", uerr.Err)
		}
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// upstreamQuery keeps the forwarded parameters and rejects mixing the
// single-date and range modes.
func upstreamQuery(in url.Values) (url.Values, error) {
	out := url.Values{}
	for _, name := range forwarded {
		if v := strings.TrimSpace(in.Get(name)); v != "" {
			out.Set(name, v)
		}
	}
	ranged := out.Has("start_date") || out.Has("end_date")
	switch {
	case out.Has("date") && ranged:
		return nil, fmt.Errorf("date cannot be combined with start_date or end_date")
	case out.Has("end_date") && !out.Has("start_date"):
		return nil, fmt.Errorf("end_date requires start_date")
	case out.Has("count") && (ranged || out.Has("date")):
		return nil, fmt.Errorf("count cannot be combined with date parameters")
	}
	return out, nil
}
