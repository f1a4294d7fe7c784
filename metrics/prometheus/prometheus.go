package prometheusmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/metrics"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	adapterRequests        *prometheus.CounterVec
	adapterDroppedBids     *prometheus.CounterVec
	adapterBids            *prometheus.CounterVec
	adapterSkippedSeatBids *prometheus.CounterVec
	adapterUserSyncs       *prometheus.CounterVec
}

const (
	adapterLabel       = "adapter"
	modeLabel          = "mode"
	singleRequestLabel = "single_request"
	syncTypeLabel      = "sync_type"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics, adapters []openrtb_ext.BidderName) *Metrics {
	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.adapterRequests = newCounter(cfg, metrics.Registry,
		"adapter_requests",
		"Count of outbound requests built by an adapter labeled by media type mode and request mode.",
		[]string{adapterLabel, modeLabel, singleRequestLabel})

	metrics.adapterDroppedBids = newCounter(cfg, metrics.Registry,
		"adapter_dropped_bids",
		"Count of ad units dropped because the configured mode did not cover their media types.",
		[]string{adapterLabel})

	metrics.adapterBids = newCounter(cfg, metrics.Registry,
		"adapter_bids",
		"Count of bids normalized from exchange responses.",
		[]string{adapterLabel})

	metrics.adapterSkippedSeatBids = newCounter(cfg, metrics.Registry,
		"adapter_skipped_seatbids",
		"Count of seat bids skipped because they held no bid.",
		[]string{adapterLabel})

	metrics.adapterUserSyncs = newCounter(cfg, metrics.Registry,
		"adapter_user_syncs",
		"Count of user syncs extracted from exchange responses labeled by sync type.",
		[]string{adapterLabel, syncTypeLabel})

	preloadLabelValues(&metrics, adapters)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func preloadLabelValues(m *Metrics, adapters []openrtb_ext.BidderName) {
	modes := []openrtb_ext.MediaTypeMode{openrtb_ext.MediaTypeModeBanner, openrtb_ext.MediaTypeModeVideo, openrtb_ext.MediaTypeModeAll}

	for _, a := range adapters {
		adapter := string(a)
		for _, mode := range modes {
			for _, single := range []bool{true, false} {
				m.adapterRequests.WithLabelValues(adapter, string(mode), strconv.FormatBool(single))
			}
		}
		m.adapterDroppedBids.WithLabelValues(adapter)
		m.adapterBids.WithLabelValues(adapter)
		m.adapterSkippedSeatBids.WithLabelValues(adapter)
		for _, st := range metrics.SyncTypes() {
			m.adapterUserSyncs.WithLabelValues(adapter, string(st))
		}
	}
}

func (m *Metrics) RecordAdapterRequests(labels metrics.AdapterRequestLabels, requests int, droppedBids int) {
	m.adapterRequests.With(prometheus.Labels{
		adapterLabel:       string(labels.Adapter),
		modeLabel:          string(labels.Mode),
		singleRequestLabel: strconv.FormatBool(labels.SingleRequest),
	}).Add(float64(requests))

	if droppedBids > 0 {
		m.adapterDroppedBids.With(prometheus.Labels{
			adapterLabel: string(labels.Adapter),
		}).Add(float64(droppedBids))
	}
}

func (m *Metrics) RecordAdapterBids(labels metrics.AdapterBidLabels, bids int, skippedSeatBids int) {
	m.adapterBids.With(prometheus.Labels{
		adapterLabel: string(labels.Adapter),
	}).Add(float64(bids))

	if skippedSeatBids > 0 {
		m.adapterSkippedSeatBids.With(prometheus.Labels{
			adapterLabel: string(labels.Adapter),
		}).Add(float64(skippedSeatBids))
	}
}

func (m *Metrics) RecordUserSyncs(adapter openrtb_ext.BidderName, syncType metrics.SyncType, count int) {
	m.adapterUserSyncs.With(prometheus.Labels{
		adapterLabel:  string(adapter),
		syncTypeLabel: string(syncType),
	}).Add(float64(count))
}
