package adapters

import (
	"fmt"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/errortypes"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// InfoAwareBidder wraps a Bidder to ensure all requests abide by the capabilities and
// media types defined in the bidder-info/{bidder}.yaml file.
//
// It adjusts incoming ad units in the following ways:
//  1. If site traffic is not supported by the info file, then nothing reaches the delegate.
//  2. If a given MediaType is not supported, then it will be set to nil before the ad unit is
//     forwarded to the delegate.
//  3. Any ad units which have no MediaTypes left will be removed.
//  4. If there are no ad units left, the delegate won't be called at all.
//
// The caller's ad units are never modified.
type InfoAwareBidder struct {
	Bidder
	info parsedSupports
}

// BuildInfoAwareBidder wraps a bidder to enforce media type support.
func BuildInfoAwareBidder(bidder Bidder, info config.BidderInfo) Bidder {
	return &InfoAwareBidder{
		Bidder: bidder,
		info:   parseBidderInfo(info),
	}
}

func (i *InfoAwareBidder) MakeRequests(bids []AdUnitBid, bidderRequest *BidderRequest, reqInfo *ExtraRequestInfo) ([]*RequestData, []error) {
	if len(bids) == 0 {
		return nil, nil
	}
	if !i.info.enabled {
		return nil, []error{&errortypes.Warning{Message: "this bidder does not support site requests"}}
	}

	allowed, errs := pruneAdUnits(bids, i.info)
	if len(allowed) == 0 {
		return nil, append(errs, &errortypes.Warning{Message: "Bid request didn't contain media types supported by the bidder"})
	}

	reqs, delegateErrs := i.Bidder.MakeRequests(allowed, bidderRequest, reqInfo)
	return reqs, append(errs, delegateErrs...)
}

// pruneAdUnits returns copies of the ad units stripped of the media types the bidder does not
// support, leaving out those with nothing left.
func pruneAdUnits(bids []AdUnitBid, allowedTypes parsedSupports) ([]AdUnitBid, []error) {
	var errs []error
	allowed := make([]AdUnitBid, 0, len(bids))

	for i, bid := range bids {
		if !allowedTypes.banner && bid.MediaTypes.Banner != nil {
			bid.MediaTypes.Banner = nil
			errs = append(errs, &errortypes.Warning{Message: fmt.Sprintf("bids[%d] uses banner, but this bidder doesn't support it", i)})
		}
		if !allowedTypes.video && bid.MediaTypes.Video != nil {
			bid.MediaTypes.Video = nil
			errs = append(errs, &errortypes.Warning{Message: fmt.Sprintf("bids[%d] uses video, but this bidder doesn't support it", i)})
		}

		if bid.MediaTypes.Banner == nil && bid.MediaTypes.Video == nil {
			errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("bids[%d] has no supported MediaTypes. It will be ignored", i)})
			continue
		}
		allowed = append(allowed, bid)
	}
	return allowed, errs
}

type parsedSupports struct {
	enabled bool
	banner  bool
	video   bool
}

func parseBidderInfo(info config.BidderInfo) parsedSupports {
	var parsed parsedSupports
	if info.Capabilities == nil || info.Capabilities.Site == nil {
		return parsed
	}

	parsed.enabled = true
	for _, allowedType := range info.Capabilities.Site.MediaTypes {
		switch allowedType {
		case openrtb_ext.BidTypeBanner:
			parsed.banner = true
		case openrtb_ext.BidTypeVideo:
			parsed.video = true
		}
	}
	return parsed
}
