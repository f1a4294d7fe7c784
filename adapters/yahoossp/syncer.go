package yahoossp

import (
	"errors"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/usersync"
)

// NewSyncer builds the cookie sync of the bidder from its bidder-info. A usersync_url in the
// adapter config replaces the redirect endpoint URL.
func NewSyncer(cfg *config.Configuration, info config.BidderInfo, adapterCfg config.Adapter) (usersync.Syncer, error) {
	if info.Syncer == nil {
		return nil, errors.New("bidder-info has no userSync section")
	}

	syncerConfig := *info.Syncer
	syncerConfig.Redirect = syncerConfig.Redirect.Override(adapterCfg.UserSyncURL)

	return usersync.NewSyncer(cfg.UserSync, cfg.ExternalURL, syncerConfig)
}
