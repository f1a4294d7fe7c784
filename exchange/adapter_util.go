package exchange

import (
	"fmt"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/logger"
	"github.com/prebid/yahoossp-bid-adapter/metrics"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// BuildAdapters builds every enabled bidder of infos, wrapped with bidder-info enforcement and
// metrics. Nothing is returned if any bidder fails to build.
func BuildAdapters(cfg *config.Configuration, infos config.BidderInfos, me metrics.MetricsEngine) (map[openrtb_ext.BidderName]AdaptedBidder, []error) {
	bidders, errs := buildBidders(cfg, infos, newAdapterBuilders())
	if len(errs) > 0 {
		return nil, errs
	}

	exchangeBidders := make(map[openrtb_ext.BidderName]AdaptedBidder, len(bidders))
	for bidderName, bidder := range bidders {
		adapterCfg, _ := cfg.Adapter(bidderName)
		exchangeBidders[bidderName] = AdaptBidder(bidder, me, bidderName, adapterCfg)
	}
	return exchangeBidders, nil
}

func buildBidders(cfg *config.Configuration, infos config.BidderInfos, builders map[openrtb_ext.BidderName]adapters.Builder) (map[openrtb_ext.BidderName]adapters.Bidder, []error) {
	bidders := make(map[openrtb_ext.BidderName]adapters.Bidder)
	server := cfg.Server()
	var errs []error

	for bidder, info := range infos {
		bidderName, bidderNameFound := openrtb_ext.GetBidderName(bidder)
		if !bidderNameFound {
			errs = append(errs, fmt.Errorf("%v: unknown bidder", bidder))
			continue
		}

		builder, builderFound := builders[bidderName]
		if !builderFound {
			errs = append(errs, fmt.Errorf("%v: builder not registered", bidder))
			continue
		}

		if !info.IsEnabled() {
			logger.Infof("%s: disabled by configuration", bidderName)
			continue
		}

		adapterCfg, _ := cfg.Adapter(bidderName)
		bidderInstance, builderErr := builder(bidderName, adapterCfg, server)
		if builderErr != nil {
			errs = append(errs, fmt.Errorf("%v: %v", bidder, builderErr))
			continue
		}
		bidders[bidderName] = adapters.BuildInfoAwareBidder(bidderInstance, info)
	}
	return bidders, errs
}

// GetActiveBidders returns a map of all active bidder names.
func GetActiveBidders(infos config.BidderInfos) map[string]openrtb_ext.BidderName {
	activeBidders := make(map[string]openrtb_ext.BidderName)

	for name, info := range infos {
		if info.IsEnabled() {
			activeBidders[name] = openrtb_ext.BidderName(name)
		}
	}

	return activeBidders
}

// GetDisabledBidderWarningMessages returns the message to show for every bidder name which is
// known but not usable on this host.
func GetDisabledBidderWarningMessages(infos config.BidderInfos) map[string]string {
	removed := map[string]string{
		"yssp":         `Bidder "yssp" is no longer available. If you're looking to use the Yahoo SSP adapter, please rename it to "yahoossp" in your configuration.`,
		"verizonmedia": `Bidder "verizonmedia" is no longer available. Please update your configuration.`,
	}

	for name, info := range infos {
		if info.Disabled {
			removed[name] = fmt.Sprintf(`Bidder "%s" has been disabled on this host. Please work with the host to enable this bidder again.`, name)
		}
	}
	return removed
}
