package metrics

import (
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// AdapterRequestLabels describe one MakeRequests call.
type AdapterRequestLabels struct {
	Adapter       openrtb_ext.BidderName
	Mode          openrtb_ext.MediaTypeMode
	SingleRequest bool
}

// AdapterBidLabels describe one MakeBids call.
type AdapterBidLabels struct {
	Adapter openrtb_ext.BidderName
}

// SyncType is the kind of user sync handed to the host.
type SyncType string

const (
	SyncTypeImage  SyncType = "image"
	SyncTypeIFrame SyncType = "iframe"
)

// SyncTypes returns all the sync types.
func SyncTypes() []SyncType {
	return []SyncType{SyncTypeImage, SyncTypeIFrame}
}

// MetricsEngine is a generic interface to record adapter metrics into the desired backend.
// Implementations must be safe for concurrent use.
type MetricsEngine interface {
	// RecordAdapterRequests records the outbound requests built from one auction, and how many
	// ad units were dropped because the configured mode did not cover their media types.
	RecordAdapterRequests(labels AdapterRequestLabels, requests int, droppedBids int)
	// RecordAdapterBids records the bids normalized from one exchange response, and how many
	// seat bids were skipped because they held no bid.
	RecordAdapterBids(labels AdapterBidLabels, bids int, skippedSeatBids int)
	// RecordUserSyncs records the user syncs extracted from a response.
	RecordUserSyncs(adapter openrtb_ext.BidderName, syncType SyncType, count int)
}
