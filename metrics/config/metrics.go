package config

import (
	gometrics "github.com/rcrowley/go-metrics"

	mainConfig "github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/metrics"
	prometheusmetrics "github.com/prebid/yahoossp-bid-adapter/metrics/prometheus"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// NewMetricsEngine reads the configuration and returns the appropriate metrics engine
// for this instance.
func NewMetricsEngine(cfg *mainConfig.Configuration, adapterList []openrtb_ext.BidderName) *DetailedMetricsEngine {
	// Create a list of metrics engines to use.
	// Capacity of 2, as unlikely to have more than 2 metrics backends, and in the case
	// of 1 we won't use the list so it will be garbage collected.
	engineList := make(MultiMetricsEngine, 0, 2)
	returnEngine := DetailedMetricsEngine{}

	if cfg.Metrics.GoMetrics.Enabled {
		returnEngine.GoMetrics = metrics.NewMetrics(gometrics.NewPrefixedRegistry(cfg.Metrics.GoMetrics.Prefix), adapterList)
		engineList = append(engineList, returnEngine.GoMetrics)
	}
	if cfg.Metrics.Prometheus.Enabled {
		returnEngine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus, adapterList)
		engineList = append(engineList, returnEngine.PrometheusMetrics)
	}

	// Now return the proper metrics engine
	if len(engineList) > 1 {
		returnEngine.MetricsEngine = &engineList
	} else if len(engineList) == 1 {
		returnEngine.MetricsEngine = engineList[0]
	} else {
		returnEngine.MetricsEngine = &NilMetricsEngine{}
	}

	return &returnEngine
}

// DetailedMetricsEngine is a MultiMetricsEngine that preserves links to underlying metrics engines.
type DetailedMetricsEngine struct {
	metrics.MetricsEngine
	GoMetrics         *metrics.Metrics
	PrometheusMetrics *prometheusmetrics.Metrics
}

// MultiMetricsEngine logs metrics to multiple metrics databases. These can be useful in transitioning
// an instance from one engine to another, you can run both in parallel to verify stats match up.
type MultiMetricsEngine []metrics.MetricsEngine

func (me *MultiMetricsEngine) RecordAdapterRequests(labels metrics.AdapterRequestLabels, requests int, droppedBids int) {
	for _, thisME := range *me {
		thisME.RecordAdapterRequests(labels, requests, droppedBids)
	}
}

func (me *MultiMetricsEngine) RecordAdapterBids(labels metrics.AdapterBidLabels, bids int, skippedSeatBids int) {
	for _, thisME := range *me {
		thisME.RecordAdapterBids(labels, bids, skippedSeatBids)
	}
}

func (me *MultiMetricsEngine) RecordUserSyncs(adapter openrtb_ext.BidderName, syncType metrics.SyncType, count int) {
	for _, thisME := range *me {
		thisME.RecordUserSyncs(adapter, syncType, count)
	}
}

// NilMetricsEngine implements the MetricsEngine interface where no metrics are actually captured. This is
// used if no metric backend is configured and also for tests.
type NilMetricsEngine struct{}

func (me *NilMetricsEngine) RecordAdapterRequests(labels metrics.AdapterRequestLabels, requests int, droppedBids int) {
}

func (me *NilMetricsEngine) RecordAdapterBids(labels metrics.AdapterBidLabels, bids int, skippedSeatBids int) {
}

func (me *NilMetricsEngine) RecordUserSyncs(adapter openrtb_ext.BidderName, syncType metrics.SyncType, count int) {
}
