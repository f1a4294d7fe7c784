package prometheusmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/metrics"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

func createMetricsForTesting() *Metrics {
	return NewMetrics(config.PrometheusMetrics{
		Namespace: "prebid",
		Subsystem: "server",
	}, []openrtb_ext.BidderName{openrtb_ext.BidderYahooSSP})
}

func TestMetricCountGatekeeping(t *testing.T) {
	m := createMetricsForTesting()

	metricFamilies, err := m.Registry.Gather()
	assert.NoError(t, err)

	names := make([]string, 0, len(metricFamilies))
	for _, mf := range metricFamilies {
		names = append(names, mf.GetName())
	}

	assert.ElementsMatch(t, []string{
		"prebid_server_adapter_requests",
		"prebid_server_adapter_dropped_bids",
		"prebid_server_adapter_bids",
		"prebid_server_adapter_skipped_seatbids",
		"prebid_server_adapter_user_syncs",
	}, names)
}

func TestRecordAdapterRequests(t *testing.T) {
	m := createMetricsForTesting()

	m.RecordAdapterRequests(metrics.AdapterRequestLabels{
		Adapter:       openrtb_ext.BidderYahooSSP,
		Mode:          openrtb_ext.MediaTypeModeBanner,
		SingleRequest: true,
	}, 1, 2)

	assertCounterVecValue(t, "single", m.adapterRequests, 1, prometheus.Labels{
		adapterLabel:       "yahoossp",
		modeLabel:          "banner",
		singleRequestLabel: "true",
	})
	assertCounterVecValue(t, "multi", m.adapterRequests, 0, prometheus.Labels{
		adapterLabel:       "yahoossp",
		modeLabel:          "banner",
		singleRequestLabel: "false",
	})
	assertCounterVecValue(t, "dropped", m.adapterDroppedBids, 2, prometheus.Labels{
		adapterLabel: "yahoossp",
	})
}

func TestRecordAdapterBids(t *testing.T) {
	m := createMetricsForTesting()

	m.RecordAdapterBids(metrics.AdapterBidLabels{Adapter: openrtb_ext.BidderYahooSSP}, 3, 0)
	m.RecordAdapterBids(metrics.AdapterBidLabels{Adapter: openrtb_ext.BidderYahooSSP}, 1, 1)

	assertCounterVecValue(t, "bids", m.adapterBids, 4, prometheus.Labels{adapterLabel: "yahoossp"})
	assertCounterVecValue(t, "skipped", m.adapterSkippedSeatBids, 1, prometheus.Labels{adapterLabel: "yahoossp"})
}

func TestRecordUserSyncs(t *testing.T) {
	m := createMetricsForTesting()

	m.RecordUserSyncs(openrtb_ext.BidderYahooSSP, metrics.SyncTypeImage, 1)
	m.RecordUserSyncs(openrtb_ext.BidderYahooSSP, metrics.SyncTypeIFrame, 2)

	assertCounterVecValue(t, "image", m.adapterUserSyncs, 1, prometheus.Labels{adapterLabel: "yahoossp", syncTypeLabel: "image"})
	assertCounterVecValue(t, "iframe", m.adapterUserSyncs, 2, prometheus.Labels{adapterLabel: "yahoossp", syncTypeLabel: "iframe"})
}

func assertCounterVecValue(t *testing.T, description string, counterVec *prometheus.CounterVec, expected float64, labels prometheus.Labels) {
	counter := counterVec.With(labels)
	var metric dto.Metric
	assert.NoError(t, counter.Write(&metric), description)
	assert.Equal(t, expected, metric.GetCounter().GetValue(), description)
}
