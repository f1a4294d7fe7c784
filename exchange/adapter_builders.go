package exchange

import (
	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/adapters/yahoossp"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// newAdapterBuilders returns the builders of all the bidders compiled into the binary.
func newAdapterBuilders() map[openrtb_ext.BidderName]adapters.Builder {
	return map[openrtb_ext.BidderName]adapters.Builder{
		openrtb_ext.BidderYahooSSP: yahoossp.Builder,
	}
}
