// Package metrics exports counters for the async-to-generator pass.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/remap/internal/ast"
)

// Recorder counts transformed functions. It implements remap.Observer.
type Recorder struct {
	functions *prometheus.CounterVec
	pure      prometheus.Counter
	iife      prometheus.Counter
	duration  prometheus.Histogram
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		functions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remap_functions_total",
				Help: "Async functions lowered to generators, by node kind",
			},
			[]string{"kind"},
		),
		pure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remap_pure_annotations_total",
			Help: "Driver calls annotated as pure",
		}),
		iife: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remap_iife_total",
			Help: "Lowered functions invoked where they are defined",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "remap_program_duration_seconds",
			Help:    "Duration of whole-program passes",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{r.functions, r.pure, r.iife, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveFunction records one lowered function.
func (r *Recorder) ObserveFunction(kind ast.Kind, iife, annotated bool) {
	r.functions.WithLabelValues(kind.String()).Inc()
	if iife {
		r.iife.Inc()
	}
	if annotated {
		r.pure.Inc()
	}
}

// ObserveProgram records the duration of a whole-program pass.
func (r *Recorder) ObserveProgram(d time.Duration) {
	r.duration.Observe(d.Seconds())
}
