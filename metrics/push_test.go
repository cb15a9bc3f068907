package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCounter = NewCounter("push_test_total", "test", "counter used by push tests", []string{"outcome"})

func TestPushDisabled(t *testing.T) {
	require.NoError(t, Push(PushConfig{}, "regtest"))
}

func TestPush(t *testing.T) {
	testCounter.WithLabelValues("ok").Inc()

	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("X-Test")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, Push(PushConfig{
		URL:     srv.URL,
		Headers: map[string]string{"X-Test": "yes"},
	}, "regtest"))
	require.True(t, strings.HasPrefix(path, "/metrics/job/pegfed/network/regtest"), path)
	require.Equal(t, "yes", auth)
}

func TestPushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	require.Error(t, Push(PushConfig{URL: srv.URL}, "regtest"))
}
