package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

var (
	registerOnce sync.Once

	codecMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eppwire",
			Subsystem: "codec",
			Name:      "messages_total",
			Help:      "EPP documents encoded or decoded, by message kind.",
		},
		[]string{"direction", "kind"},
	)
	codecErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eppwire",
			Subsystem: "codec",
			Name:      "errors_total",
			Help:      "Failed encode/decode calls, by error class.",
		},
		[]string{"direction", "class"},
	)
	codecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eppwire",
			Subsystem: "codec",
			Name:      "duration_seconds",
			Help:      "Encode/decode duration in seconds.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"direction"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eppwire",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Codec gateway HTTP requests.",
		},
		[]string{"gateway", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eppwire",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"gateway", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecMessages, codecErrors, codecDuration, httpRequests, httpDuration)
	})
}

// RecordCodec counts one successful encode or decode of a message kind.
func RecordCodec(direction, kind string, duration time.Duration) {
	RegisterMetrics()
	codecMessages.WithLabelValues(direction, kind).Inc()
	codecDuration.WithLabelValues(direction).Observe(duration.Seconds())
}

// RecordCodecError counts one failed encode or decode. class is the error
// family: parse, format, schema, target or io.
func RecordCodecError(direction, class string, duration time.Duration) {
	RegisterMetrics()
	codecErrors.WithLabelValues(direction, class).Inc()
	codecDuration.WithLabelValues(direction).Observe(duration.Seconds())
}

func RecordHTTPRequest(gateway, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(gateway, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(gateway, method, path, statusLabel).Observe(duration.Seconds())
}

// CodecMessages exposes the message counter for assertions.
func CodecMessages() *prometheus.CounterVec { return codecMessages }

// CodecErrors exposes the error counter for assertions.
func CodecErrors() *prometheus.CounterVec { return codecErrors }
