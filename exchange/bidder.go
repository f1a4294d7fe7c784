package exchange

import (
	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/errortypes"
	"github.com/prebid/yahoossp-bid-adapter/logger"
	"github.com/prebid/yahoossp-bid-adapter/metrics"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// AdaptedBidder is a Bidder as the host sees it: built, configured and measured.
type AdaptedBidder interface {
	adapters.Bidder
}

// BidderAdapter records the outcome of every call to the wrapped Bidder.
type BidderAdapter struct {
	Bidder        adapters.Bidder
	BidderName    openrtb_ext.BidderName
	me            metrics.MetricsEngine
	mode          openrtb_ext.MediaTypeMode
	singleRequest bool
}

// AdaptBidder converts an adapters.Bidder into an exchange.AdaptedBidder.
func AdaptBidder(bidder adapters.Bidder, me metrics.MetricsEngine, name openrtb_ext.BidderName, cfg config.Adapter) AdaptedBidder {
	return &BidderAdapter{
		Bidder:        bidder,
		BidderName:    name,
		me:            me,
		mode:          cfg.MediaTypeMode(),
		singleRequest: cfg.SingleRequestMode,
	}
}

func (bidder *BidderAdapter) IsBidRequestValid(bid *adapters.AdUnitBid) bool {
	return bidder.Bidder.IsBidRequestValid(bid)
}

func (bidder *BidderAdapter) MakeRequests(bids []adapters.AdUnitBid, bidderRequest *adapters.BidderRequest, reqInfo *adapters.ExtraRequestInfo) ([]*adapters.RequestData, []error) {
	reqs, errs := bidder.Bidder.MakeRequests(bids, bidderRequest, reqInfo)
	logErrors(bidder.BidderName, "MakeRequests", errs)

	sent := make(map[string]struct{}, len(bids))
	for _, req := range reqs {
		for _, impID := range req.ImpIDs {
			sent[impID] = struct{}{}
		}
	}
	dropped := len(bids) - len(sent)
	if dropped < 0 {
		dropped = 0
	}

	bidder.me.RecordAdapterRequests(metrics.AdapterRequestLabels{
		Adapter:       bidder.BidderName,
		Mode:          bidder.mode,
		SingleRequest: bidder.singleRequest,
	}, len(reqs), dropped)

	return reqs, errs
}

func (bidder *BidderAdapter) MakeBids(request *adapters.RequestData, response *adapters.ResponseData) (*adapters.BidderResponse, []error) {
	bidResponse, errs := bidder.Bidder.MakeBids(request, response)
	logErrors(bidder.BidderName, "MakeBids", errs)

	skipped := 0
	for _, err := range errs {
		if errortypes.ReadCode(err) == errortypes.SkippedSeatBidWarningCode {
			skipped++
		}
	}

	bids := 0
	if bidResponse != nil {
		bids = len(bidResponse.Bids)
	}
	bidder.me.RecordAdapterBids(metrics.AdapterBidLabels{Adapter: bidder.BidderName}, bids, skipped)

	return bidResponse, errs
}

func (bidder *BidderAdapter) GetUserSyncs(syncOptions adapters.SyncOptions, responses []*adapters.ResponseData) []adapters.UserSync {
	userSyncs := bidder.Bidder.GetUserSyncs(syncOptions, responses)

	counts := make(map[metrics.SyncType]int, 2)
	for _, userSync := range userSyncs {
		switch userSync.Type {
		case adapters.UserSyncImage:
			counts[metrics.SyncTypeImage]++
		case adapters.UserSyncIFrame:
			counts[metrics.SyncTypeIFrame]++
		}
	}
	for _, syncType := range metrics.SyncTypes() {
		if counts[syncType] > 0 {
			bidder.me.RecordUserSyncs(bidder.BidderName, syncType, counts[syncType])
		}
	}

	return userSyncs
}

func logErrors(bidderName openrtb_ext.BidderName, call string, errs []error) {
	for _, err := range errortypes.FatalOnly(errs) {
		logger.Errorf("%s: %s: %v", bidderName, call, err)
	}
}
