package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/stargaze/internal/apod"
)

type fakeUpstream struct {
	mu      sync.Mutex
	queries []url.Values
	status  int
	body    string
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeUpstream) calls() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.queries...)
}

func newProxy(t *testing.T, up *fakeUpstream) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	upstream := httptest.NewServer(up)
	t.Cleanup(upstream.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	srv, err := New(upstream.URL+"/planetary/apod", "SERVER-KEY", zap.New(core))
	require.NoError(t, err)

	front := httptest.NewServer(srv.Handler())
	t.Cleanup(front.Close)
	return front, logs
}

func decodeError(t *testing.T, resp *http.Response) ErrorBody {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestNew_Validates(t *testing.T) {
	_, err := New("", "k", nil)
	assert.Error(t, err)
	_, err = New("ftp://example.com", "k", nil)
	assert.Error(t, err)
	_, err = New("https://api.nasa.gov/planetary/apod", "  ", nil)
	assert.ErrorContains(t, err, "api key")
	_, err = New("https://api.nasa.gov/planetary/apod?api_key=x", "k", nil)
	assert.NoError(t, err)
}

func TestHealthz(t *testing.T) {
	front, _ := newProxy(t, &fakeUpstream{status: http.StatusOK})

	resp, err := http.Get(front.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestAPOD_ForwardsRangeWithServerKey(t *testing.T) {
	up := &fakeUpstream{status: http.StatusOK, body: `[{"date":"2024-01-01","media_type":"image"}]`}
	front, logs := newProxy(t, up)

	resp, err := http.Get(front.URL + "/api/apod?start_date=2024-01-01&end_date=2024-01-03&api_key=CLIENT&debug=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `[{"date":"2024-01-01","media_type":"image"}]`, string(body))

	calls := up.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SERVER-KEY", calls[0].Get("api_key"))
	assert.Equal(t, "2024-01-01", calls[0].Get("start_date"))
	assert.Equal(t, "2024-01-03", calls[0].Get("end_date"))
	assert.False(t, calls[0].Has("debug"))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/apod", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			s, _ := v.(string)
			assert.NotContains(t, s, "SERVER-KEY")
		}
	}
}

func TestAPOD_PassesUpstreamStatusThrough(t *testing.T) {
	up := &fakeUpstream{status: http.StatusTooManyRequests, body: `{"error":{"code":"OVER_RATE_LIMIT"}}`}
	front, logs := newProxy(t, up)

	resp, err := http.Get(front.URL + "/api/apod?date=2020-01-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(body), "OVER_RATE_LIMIT")
	assert.Len(t, logs.FilterMessage("upstream rate limited").All(), 1)
}

func TestAPOD_RejectsMixedModes(t *testing.T) {
	up := &fakeUpstream{status: http.StatusOK, body: `{}`}
	front, _ := newProxy(t, up)

	for _, q := range []string{
		"date=2020-01-01&start_date=2020-01-01",
		"end_date=2020-01-03",
		"count=3&date=2020-01-01",
	} {
		resp, err := http.Get(front.URL + "/api/apod?" + q)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, CodeValidation, decodeError(t, resp).Code, q)
		resp.Body.Close()
	}
	assert.Empty(t, up.calls())
}

func TestAPOD_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	endpoint := dead.URL
	dead.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	srv, err := New(endpoint, "SERVER-KEY", zap.New(core), WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/apod?date=2020-01-01", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), CodeUpstream)
	failed := logs.FilterMessage("upstream request failed").All()
	require.Len(t, failed, 1)
	assert.NotContains(t, failed[0].ContextMap()["error"], "SERVER-KEY")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	front, _ := newProxy(t, &fakeUpstream{status: http.StatusOK})

	resp, err := http.Get(front.URL + "/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, CodeNotFound, decodeError(t, resp).Code)
	resp.Body.Close()

	resp, err = http.Post(front.URL+"/api/apod", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, CodeMethodNotAllowed, decodeError(t, resp).Code)
	resp.Body.Close()
}

func TestRequestIDHeader(t *testing.T) {
	front, _ := newProxy(t, &fakeUpstream{status: http.StatusOK})

	resp, err := http.Get(front.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	_, err = uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err, "minted id should be a uuid")

	want := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, front.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, want)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, want, resp.Header.Get(HeaderRequestID))

	req, _ = http.NewRequest(http.MethodGet, front.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(HeaderRequestID))
}

func TestFeedClientThroughProxy(t *testing.T) {
	up := &fakeUpstream{status: http.StatusOK, body: `[
		{"date":"2024-01-01","title":"A","media_type":"image","url":"https://x/a.jpg"},
		{"date":"2024-01-02","title":"B","media_type":"video","url":"https://x/b"}
	]`}
	front, _ := newProxy(t, up)

	client, err := apod.NewClient(front.URL+"/api/apod", "")
	require.NoError(t, err)
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	r, err := apod.NewDateRange("2024-01-01", "2024-01-02", today)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entries, err := client.FetchRange(ctx, r)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Title)

	calls := up.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SERVER-KEY", calls[0].Get("api_key"))
}

func TestRootIsNotTheFeedPath(t *testing.T) {
	up := &fakeUpstream{status: http.StatusOK, body: `[]`}
	front, _ := newProxy(t, up)

	resp, err := http.Get(front.URL + "/?start_date=2024-01-01&end_date=2024-01-03")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, CodeNotFound, decodeError(t, resp).Code)
	assert.Empty(t, up.calls())
}
