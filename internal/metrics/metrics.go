package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thebluefowl/spacesync/internal/mediasync"
)

var _ mediasync.Observer = (*PrometheusObserver)(nil)

// PrometheusObserver exports sync metrics to Prometheus.
type PrometheusObserver struct {
	duration      *prometheus.HistogramVec
	opErrors      *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	uploadedBytes prometheus.Counter
}

// NewPrometheusObserver registers upload/delete/skip metrics with reg.
// Collectors already registered under the same names are reused.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "spacesync"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Latency of remote store operations issued by the sync engine.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	opErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Count of failed uploads and deletes.",
	}, []string{"operation"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_files_total",
		Help:      "Files not uploaded, by reason.",
	}, []string{"reason"})
	uploadedBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Cumulative size of files successfully uploaded.",
	})

	o := &PrometheusObserver{}
	var err error
	if o.duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if o.opErrors, err = register(reg, opErrors); err != nil {
		return nil, err
	}
	if o.skipped, err = register(reg, skipped); err != nil {
		return nil, err
	}
	if o.uploadedBytes, err = register(reg, uploadedBytes); err != nil {
		return nil, err
	}
	return o, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register sync metric: %w", err)
	}
	return c, nil
}

// RecordUpload tracks upload duration, size, and failures.
func (o *PrometheusObserver) RecordUpload(duration time.Duration, sizeBytes int64, err error) {
	if o == nil {
		return
	}
	recordOperation(o, "upload", duration, err)
	if err == nil {
		o.uploadedBytes.Add(float64(sizeBytes))
	}
}

func (o *PrometheusObserver) RecordDelete(duration time.Duration, err error) {
	if o == nil {
		return
	}
	recordOperation(o, "delete", duration, err)
}

func (o *PrometheusObserver) RecordSkip(reason string) {
	if o == nil {
		return
	}
	o.skipped.WithLabelValues(reason).Inc()
}

func recordOperation(o *PrometheusObserver, op string, duration time.Duration, err error) {
	o.duration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		o.opErrors.WithLabelValues(op).Inc()
	}
}
