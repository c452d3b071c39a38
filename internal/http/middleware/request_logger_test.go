package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/lead-capture/pkg/logging"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter("info", &buf)
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/submit-lead", nil)
	req.Header.Set("X-Request-ID", "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var lines []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "request started", lines[0]["msg"])
	assert.Equal(t, "req-123", lines[0]["request_id"])
	assert.Equal(t, "request completed", lines[1]["msg"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), lines[1]["status"])
	assert.Equal(t, "/api/submit-lead", lines[1]["path"])
}

func TestRequestLoggerDefaultsStatusAndID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter("info", &buf)
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	scanner := bufio.NewScanner(&buf)
	var last map[string]any
	for scanner.Scan() {
		last = map[string]any{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &last))
	}
	assert.Equal(t, float64(http.StatusOK), last["status"])
	assert.NotEmpty(t, last["request_id"])
}
