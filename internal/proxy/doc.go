// Package proxy implements stargaze-proxy, a small HTTP server that holds
// the NASA API key so clients never need it.
//
// Routes:
//
//	GET /healthz    liveness, returns "ok"
//	GET /api/apod   same query and response shape as the upstream feed
//
// /api/apod forwards date, start_date, end_date, count and thumbs, adds the
// server's api_key, and copies the upstream status and body back. A client
// supplied api_key is discarded. Errors produced by the proxy itself use
// the envelope
//
//	{"error":{"code":"upstream_error","message":"upstream request failed"}}
//
// Every response carries X-Request-ID. Requests are logged with zap
// without their query string.
package proxy
