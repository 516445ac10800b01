package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg         *prom.Registry
	reschedules *prom.CounterVec
	cancels     *prom.CounterVec
	fired       *prom.CounterVec
	scheduled   prom.Gauge
}

// NewPrometheusRecorder constructs and registers the reminder metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		reschedules: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hydration",
			Name:      "reschedules_total",
			Help:      "Reminder reschedule attempts by result",
		}, []string{"result"}),
		cancels: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hydration",
			Name:      "cancellations_total",
			Help:      "Reminder cancel-all attempts by result",
		}, []string{"result"}),
		fired: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "hydration",
			Name:      "notifications_fired_total",
			Help:      "Notifications handed to the delivery channel, by trigger kind",
		}, []string{"trigger"}),
		scheduled: prom.NewGauge(prom.GaugeOpts{
			Namespace: "hydration",
			Name:      "scheduled_notifications",
			Help:      "Notifications currently registered with the local backend",
		}),
	}
	reg.MustRegister(pr.reschedules, pr.cancels, pr.fired, pr.scheduled)
	return pr
}

func (p *PrometheusRecorder) IncReschedule(result string) { p.reschedules.WithLabelValues(result).Inc() }
func (p *PrometheusRecorder) IncCancel(result string)     { p.cancels.WithLabelValues(result).Inc() }
func (p *PrometheusRecorder) IncFired(trigger string)     { p.fired.WithLabelValues(trigger).Inc() }
func (p *PrometheusRecorder) SetScheduled(n int)          { p.scheduled.Set(float64(n)) }

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
