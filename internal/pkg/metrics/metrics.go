package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

var (
	SectionFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "section_fetch_total",
			Help:      "Dashboard section fetches by section and outcome.",
		},
		[]string{"section", "status"},
	)

	SectionFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dashboard",
			Name:      "section_fetch_duration_seconds",
			Help:      "Time spent fetching a dashboard section.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"section"},
	)

	PriceFeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "price_feed_requests_total",
			Help:      "External price feed requests by outcome.",
		},
		[]string{"status"},
	)
)

// MustRegisterMetrics registers all collectors on reg, or the default registerer when reg is nil.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(SectionFetchTotal, SectionFetchDuration, PriceFeedRequests)
}

// ObserveSection records the outcome and latency of one section fetch.
func ObserveSection(section string, started time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusUnavailable
	}
	SectionFetchTotal.WithLabelValues(section, status).Inc()
	SectionFetchDuration.WithLabelValues(section).Observe(time.Since(started).Seconds())
}

// ObservePriceFeed records the outcome of one price feed request.
func ObservePriceFeed(err error) {
	status := StatusOK
	if err != nil {
		status = StatusUnavailable
	}
	PriceFeedRequests.WithLabelValues(status).Inc()
}
