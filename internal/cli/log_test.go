package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/truchet/pkg/observability"
	"github.com/matzehuels/truchet/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      log.Level
		debug      bool
		wantCaller bool
	}{
		{"info drops debug", log.InfoLevel, false, false},
		{"debug reports caller", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("subdivided level", "level", 2)
			logger.Info("generated pattern", "leaves", 96)

			out := buf.String()
			if got := strings.Contains(out, "subdivided level"); got != tt.debug {
				t.Errorf("debug line logged = %v, want %v: %q", got, tt.debug, out)
			}
			if !strings.Contains(out, "leaves=96") {
				t.Errorf("info line missing: %q", out)
			}
			if got := strings.Contains(out, "log_test.go"); got != tt.wantCaller {
				t.Errorf("caller reported = %v, want %v: %q", got, tt.wantCaller, out)
			}
		})
	}
}

func TestSetLogLevelReportsCaller(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)
	t.Cleanup(observability.Reset)

	c.Logger.Debug("resolved parameters", "seed", 7)
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("debug level should report the caller: %q", buf.String())
	}
}

func TestStopwatchDone(t *testing.T) {
	var buf bytes.Buffer
	sw := startStopwatch(newLogger(&buf, log.InfoLevel))
	sw.done("wrote pattern", "seed", 7, "files", 2)

	out := buf.String()
	for _, want := range []string{"wrote pattern", "seed=7", "files=2", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, log.InfoLevel)

	ctx := withRequestLogger(context.Background(), base, "abc")
	requestLogger(ctx).Info("served pattern")
	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Errorf("request logger should carry the ID: %q", buf.String())
	}

	if requestLogger(context.Background()) != log.Default() {
		t.Error("outside a request the default logger should be used")
	}
}

func TestServerLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	runner := pipeline.NewRunner(nil, nil, logger)
	h := newRouter(runner, pipeline.Options{}, logger)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/pattern.gif", nil)
	req.Header.Set(headerRequestID, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "request failed") || !strings.Contains(out, "request_id="+id) {
		t.Errorf("failure should be logged with the request ID: %q", out)
	}
}
