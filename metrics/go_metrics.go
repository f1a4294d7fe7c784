package metrics

import (
	"fmt"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// Metrics is the go-metrics implementation of MetricsEngine.
type Metrics struct {
	MetricsRegistry gometrics.Registry

	// adapter -> mode -> single request
	AdapterRequestMeter map[openrtb_ext.BidderName]map[openrtb_ext.MediaTypeMode]map[bool]gometrics.Meter
	DroppedBidMeter     map[openrtb_ext.BidderName]gometrics.Meter
	BidMeter            map[openrtb_ext.BidderName]gometrics.Meter
	SkippedSeatBidMeter map[openrtb_ext.BidderName]gometrics.Meter
	UserSyncMeter       map[openrtb_ext.BidderName]map[SyncType]gometrics.Meter
}

// NewMetrics creates a new Metrics object with all the meters registered up front, so lookups
// during an auction never mutate the maps.
func NewMetrics(registry gometrics.Registry, adapters []openrtb_ext.BidderName) *Metrics {
	m := &Metrics{
		MetricsRegistry:     registry,
		AdapterRequestMeter: make(map[openrtb_ext.BidderName]map[openrtb_ext.MediaTypeMode]map[bool]gometrics.Meter, len(adapters)),
		DroppedBidMeter:     make(map[openrtb_ext.BidderName]gometrics.Meter, len(adapters)),
		BidMeter:            make(map[openrtb_ext.BidderName]gometrics.Meter, len(adapters)),
		SkippedSeatBidMeter: make(map[openrtb_ext.BidderName]gometrics.Meter, len(adapters)),
		UserSyncMeter:       make(map[openrtb_ext.BidderName]map[SyncType]gometrics.Meter, len(adapters)),
	}

	modes := []openrtb_ext.MediaTypeMode{openrtb_ext.MediaTypeModeBanner, openrtb_ext.MediaTypeModeVideo, openrtb_ext.MediaTypeModeAll}

	for _, a := range adapters {
		m.AdapterRequestMeter[a] = make(map[openrtb_ext.MediaTypeMode]map[bool]gometrics.Meter, len(modes))
		for _, mode := range modes {
			m.AdapterRequestMeter[a][mode] = map[bool]gometrics.Meter{
				true:  gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.requests.%s.single", a, mode), registry),
				false: gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.requests.%s.multi", a, mode), registry),
			}
		}
		m.DroppedBidMeter[a] = gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.dropped_bids", a), registry)
		m.BidMeter[a] = gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.bids", a), registry)
		m.SkippedSeatBidMeter[a] = gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.skipped_seatbids", a), registry)

		m.UserSyncMeter[a] = make(map[SyncType]gometrics.Meter, 2)
		for _, st := range SyncTypes() {
			m.UserSyncMeter[a][st] = gometrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.usersync.%s", a, st), registry)
		}
	}

	return m
}

func (me *Metrics) RecordAdapterRequests(labels AdapterRequestLabels, requests int, droppedBids int) {
	if byMode, ok := me.AdapterRequestMeter[labels.Adapter]; ok {
		if meters, ok := byMode[labels.Mode]; ok {
			meters[labels.SingleRequest].Mark(int64(requests))
		}
	}
	if meter, ok := me.DroppedBidMeter[labels.Adapter]; ok {
		meter.Mark(int64(droppedBids))
	}
}

func (me *Metrics) RecordAdapterBids(labels AdapterBidLabels, bids int, skippedSeatBids int) {
	if meter, ok := me.BidMeter[labels.Adapter]; ok {
		meter.Mark(int64(bids))
	}
	if meter, ok := me.SkippedSeatBidMeter[labels.Adapter]; ok {
		meter.Mark(int64(skippedSeatBids))
	}
}

func (me *Metrics) RecordUserSyncs(adapter openrtb_ext.BidderName, syncType SyncType, count int) {
	if bySyncType, ok := me.UserSyncMeter[adapter]; ok {
		if meter, ok := bySyncType[syncType]; ok {
			meter.Mark(int64(count))
		}
	}
}
