package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/lead-capture/internal/config"
	"github.com/wolfman30/lead-capture/internal/leadform"
	"github.com/wolfman30/lead-capture/pkg/logging"
)

func TestParseFlagsDefaultsFromConfig(t *testing.T) {
	cfg := &appconfig.Config{LeadFormEndpoint: "http://api.local/api/submit-lead", LeadFormTimeout: 7 * time.Second}

	opts, err := parseFlags(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/api/submit-lead", opts.endpoint)
	assert.Equal(t, 7*time.Second, opts.timeout)
	assert.Empty(t, opts.logFile)
}

func TestParseFlagsOverrides(t *testing.T) {
	cfg := &appconfig.Config{LeadFormEndpoint: "http://api.local/api/submit-lead", LeadFormTimeout: time.Second}

	opts, err := parseFlags([]string{"-endpoint", "https://leads.example.com/api/submit-lead", "-timeout", "3s"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://leads.example.com/api/submit-lead", opts.endpoint)
	assert.Equal(t, 3*time.Second, opts.timeout)
}

func TestParseFlagsRejectsEmptyEndpoint(t *testing.T) {
	_, err := parseFlags([]string{"-endpoint", ""}, &appconfig.Config{})
	assert.Error(t, err)
}

func TestOpenLog(t *testing.T) {
	w, closeFn, err := openLog("")
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	closeFn()

	path := filepath.Join(t.TempDir(), "leadform.log")
	w, closeFn, err = openLog(path)
	require.NoError(t, err)
	logNotifier{logger: logging.NewWithWriter("info", w)}.Notify(leadform.Notice{Kind: leadform.NoticeError, Message: "boom"})
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lead submission failed")
	assert.Contains(t, string(data), "boom")
}
