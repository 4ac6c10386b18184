// Package metrics exposes the decisions of a CORS middleware
// as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/jub0bs/corsfilter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// A Recorder counts the decisions of a [cors.Middleware].
// Pass it to [cors.WithObserver] and serve its metrics
// with [*Recorder.Handler].
//
// Recorders are safe for concurrent use by multiple goroutines.
type Recorder struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	reloads   *prometheus.CounterVec
}

// NewRecorder creates a Recorder backed by its own registry,
// so that several Recorders never collide.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corsfilter_decisions_total",
			Help: "Total number of requests decided by the CORS filter.",
		}, []string{"type", "outcome"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corsfilter_policy_reloads_total",
			Help: "Total number of CORS policy reload attempts.",
		}, []string{"result"}),
	}
	reg.MustRegister(r.decisions, r.reloads)
	return r
}

// ObserveDecision implements [cors.Observer].
// Requests without Origin are counted with type "other".
func (r *Recorder) ObserveDecision(typ cors.RequestType, outcome cors.Outcome) {
	r.decisions.WithLabelValues(typeLabel(typ), string(outcome)).Inc()
}

// ObserveReload counts one attempt at reloading a policy;
// err is the reason why the attempt failed, if any.
func (r *Recorder) ObserveReload(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.reloads.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler that serves r's metrics
// in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func typeLabel(typ cors.RequestType) string {
	if s := typ.String(); s != "" {
		return s
	}
	return "other"
}
