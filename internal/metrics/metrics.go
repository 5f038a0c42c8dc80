package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	inferenceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gateway",
			Name:      "inference_requests_total",
			Help:      "Total inference requests served per model and cloud provider",
		},
		[]string{"model", "cloud_provider"},
	)

	inferenceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gateway",
			Name:      "inference_latency_seconds",
			Help:      "Inference latency reported by the serving backend",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model", "cloud_provider"},
	)

	providerUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gateway",
			Name:      "provider_up",
			Help:      "Whether the provider's health endpoint answered 200 on the last probe",
		},
		[]string{"cloud_provider"},
	)
)

func init() {
	prometheus.MustRegister(inferenceRequests, inferenceLatency, providerUp)
}

// ObserveInference records one served inference request and its
// backend-reported latency in seconds.
func ObserveInference(model, cloudProvider string, latencySeconds float64) {
	inferenceRequests.WithLabelValues(model, cloudProvider).Inc()
	inferenceLatency.WithLabelValues(model, cloudProvider).Observe(latencySeconds)
}

// SetProviderUp updates the availability gauge for a provider.
func SetProviderUp(cloudProvider string, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	providerUp.WithLabelValues(cloudProvider).Set(v)
}
