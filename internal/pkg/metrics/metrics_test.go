package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSection(t *testing.T) {
	okBefore := testutil.ToFloat64(SectionFetchTotal.WithLabelValues("escrow", StatusOK))
	failBefore := testutil.ToFloat64(SectionFetchTotal.WithLabelValues("escrow", StatusUnavailable))

	ObserveSection("escrow", time.Now(), nil)
	ObserveSection("escrow", time.Now(), errors.New("boom"))
	ObserveSection("escrow", time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(SectionFetchTotal.WithLabelValues("escrow", StatusOK)))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(SectionFetchTotal.WithLabelValues("escrow", StatusUnavailable)))
}

func TestObservePriceFeed(t *testing.T) {
	before := testutil.ToFloat64(PriceFeedRequests.WithLabelValues(StatusUnavailable))
	ObservePriceFeed(errors.New("timeout"))
	assert.Equal(t, before+1, testutil.ToFloat64(PriceFeedRequests.WithLabelValues(StatusUnavailable)))
}

func TestMustRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { MustRegisterMetrics(reg) })
	assert.Panics(t, func() { MustRegisterMetrics(reg) })
}
