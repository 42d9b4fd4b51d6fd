package observability

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/eppwire/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("gateway", "GET", "/health", 200, 12*time.Millisecond)
	RecordCodecError(DirectionDecode, "parse", time.Millisecond)
}

func TestRecordCodecCountsByKind(t *testing.T) {
	testlog.Start(t)
	before := testutil.ToFloat64(CodecMessages().WithLabelValues(DirectionEncode, "test-kind"))
	RecordCodec(DirectionEncode, "test-kind", time.Millisecond)
	RecordCodec(DirectionEncode, "test-kind", time.Millisecond)
	after := testutil.ToFloat64(CodecMessages().WithLabelValues(DirectionEncode, "test-kind"))
	if after-before != 2 {
		t.Fatalf("expected 2 recorded messages, got %v", after-before)
	}
}

func TestRequestMiddlewareLogsKindAndClass(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)), RequestMetrics("test-gw"))
	r.POST("/ok", func(c *gin.Context) {
		c.Header(HeaderKind, "command/login")
		c.Status(http.StatusOK)
	})
	r.POST("/bad", func(c *gin.Context) {
		c.Set(ContextClass, "parse")
		_ = c.Error(errors.New("malformed xml"))
		c.Status(http.StatusBadRequest)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("test-gw", "POST", "/ok", "200"))
	for _, path := range []string{"/ok", "/bad", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("test-gw", "POST", "/ok", "200")) - before; got != 1 {
		t.Fatalf("expected one counted /ok request, got %v", got)
	}
	if testutil.ToFloat64(httpRequests.WithLabelValues("test-gw", "POST", "unmatched", "404")) < 1 {
		t.Fatalf("expected unmatched route label")
	}

	out := buf.String()
	for _, want := range []string{`"kind":"command/login"`, `"class":"parse"`, `"error":"malformed xml"`, `"level":"warn"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %s: %s", want, out)
		}
	}
}
