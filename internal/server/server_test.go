package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/workoutlog/internal/api/httpclient"
	"github.com/at-ishikawa/workoutlog/internal/metrics"
	testhelper "github.com/at-ishikawa/workoutlog/internal/testutil"
)

func TestServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, handler)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	response, err := client.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the context was canceled")
	}
}

func TestServe_ClosedListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	err = Serve(context.Background(), listener, http.NotFoundHandler())
	assert.Error(t, err)
}

func TestPanicRecovery(t *testing.T) {
	manager := metrics.NewTestManager()
	handler := PanicRecovery(manager)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(manager.CounterPanics))
}

func TestRequestMetrics(t *testing.T) {
	manager := metrics.NewTestManager()
	handler := RequestMetrics(manager)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		assert.Equal(t, 1.0, testutil.ToFloat64(manager.GaugeRequests))
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(manager.CounterPageRequests.WithLabelValues(http.MethodDelete, "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(manager.GaugeRequests))
}

func TestDrainAndCloseRequest(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("unread")}
	handler := DrainAndCloseRequest()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = body
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	assert.Equal(t, 0, body.Reader.(*strings.Reader).Len())
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

// TestDashboardAgainstBackend drives the pages through the HTTP client against a fake API
func TestDashboardAgainstBackend(t *testing.T) {
	backend := testhelper.NewFakeBackend(t, testToday,
		testhelper.NewRunLog(testToday.AddDays(-1), testhelper.WithFatigue(6), testhelper.WithReflection("Hills")),
		testhelper.NewStrengthLog(testToday.AddDays(-20)),
	)

	client, err := httpclient.NewClient(backend.URL(), httpclient.WithTimeout(5*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	site := httptest.NewServer(newTestRouter(t, client, nil, prometheus.NewRegistry()))
	t.Cleanup(site.Close)

	browser := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	t.Cleanup(browser.CloseIdleConnections)

	do := func(t *testing.T, method, path string, form url.Values) (int, string, string) {
		t.Helper()
		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequest(method, site.URL+path, body)
		require.NoError(t, err)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		response, err := browser.Do(req)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, response.Body.Close())
		}()
		content, err := io.ReadAll(response.Body)
		require.NoError(t, err)
		return response.StatusCode, response.Header.Get("Location"), string(content)
	}

	status, _, page := do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `<p class="value">2</p>`)
	assert.Contains(t, page, "Hills")
	assert.Contains(t, page, "Sessions: 1 / Average fatigue: 6.0/10 / Distance: 5.0 km")

	status, location, _ := do(t, http.MethodPost, "/log", url.Values{
		"date":          {"2025-01-15"},
		"workout_type":  {"strength"},
		"exercises":     {"Deadlift, 5, 3, 140kg"},
		"fatigue_level": {"7"},
	})
	require.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/log?date=2025-01-15", location)

	stored, ok := backend.Log(testToday)
	require.True(t, ok)
	require.Len(t, stored.Exercises, 1)
	assert.Equal(t, "140kg", stored.Exercises[0].Load)

	status, _, page = do(t, http.MethodPost, "/log", url.Values{"date": {"2025-01-15"}, "workout_type": {"run"}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, page, "Log already exists for 2025-01-15. Use PUT to update.")

	status, location, _ = do(t, http.MethodPost, "/log/2025-01-15/analyze", url.Values{"history_days": {"7"}})
	require.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/log?date=2025-01-15", location)

	status, _, page = do(t, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "Analyzed strength with 1 earlier logs.")

	status, location, _ = do(t, http.MethodPost, "/log/2025-01-15/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/", location)
	_, ok = backend.Log(testToday)
	assert.False(t, ok)

	backend.Fail(http.MethodGet, "/stats/summary", http.StatusServiceUnavailable)
	status, _, page = do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, page, "forced failure for GET /stats/summary")

	status, _, _ = do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
}
