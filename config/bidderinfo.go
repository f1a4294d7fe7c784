package config

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

//go:embed bidder-info/*.yaml
var bidderInfoFS embed.FS

const bidderInfoDirectory = "bidder-info"

// BidderInfos contains a mapping of bidder name to bidder info.
type BidderInfos map[string]BidderInfo

// BidderInfo specifies the static facts of a bidder: who maintains it, what it can bid on and how
// it syncs users.
type BidderInfo struct {
	Disabled     bool              // copied from adapter config for convenience.
	Maintainer   *MaintainerInfo   `yaml:"maintainer"`
	Capabilities *CapabilitiesInfo `yaml:"capabilities"`
	GVLVendorID  uint16            `yaml:"gvlVendorID"`
	Syncer       *Syncer           `yaml:"userSync"`
}

// MaintainerInfo specifies the support email address for a bidder.
type MaintainerInfo struct {
	Email string `yaml:"email"`
}

// CapabilitiesInfo specifies the supported platforms for a bidder.
type CapabilitiesInfo struct {
	Site *PlatformInfo `yaml:"site"`
}

// PlatformInfo specifies the supported media types for a bidder.
type PlatformInfo struct {
	MediaTypes []openrtb_ext.BidType `yaml:"mediaTypes"`
}

// IsEnabled returns true if the bidder is enabled by the adapter configuration.
func (info BidderInfo) IsEnabled() bool {
	return !info.Disabled
}

// SupportsMediaType reports whether the bidder bids on site inventory of the given media type.
func (info BidderInfo) SupportsMediaType(mediaType openrtb_ext.BidType) bool {
	if info.Capabilities == nil || info.Capabilities.Site == nil {
		return false
	}
	for _, m := range info.Capabilities.Site.MediaTypes {
		if m == mediaType {
			return true
		}
	}
	return false
}

// Syncer specifies the user sync settings for a bidder.
type Syncer struct {
	// Key is used as the record key for the user sync cookie. We recommend using the bidder name
	// as the key for consistency, but that is not enforced as a requirement.
	Key string `yaml:"key"`

	// Default identifies which endpoint is preferred if both are allowed by the publisher. This is
	// only required if there is more than one endpoint configured for the bidder. Valid values are
	// `iframe` and `redirect`.
	Default string `yaml:"default"`

	// IFrame configures an iframe endpoint for user syncing.
	IFrame *SyncerEndpoint `yaml:"iframe"`

	// Redirect configures an redirect endpoint for user syncing. This is also known as an image
	// endpoint in the Prebid.js project.
	Redirect *SyncerEndpoint `yaml:"redirect"`

	// SupportCORS identifies if CORS is supported for the user syncing endpoints.
	SupportCORS *bool `yaml:"supportCors"`
}

// SyncerEndpoint specifies the configuration of the URL returned by the cookie sync for a
// bidder.
//
// In most cases, bidders will specify a URL with a `{{.RedirectURL}}` macro for the call back to
// the host and a UserMacro which the bidder server will replace with the user's id. Example:
//
//	url: "https://sync.bidderserver.com/usersync?gdpr={{.GDPR}}&gdpr_consent={{.GDPRConsent}}&us_privacy={{.USPrivacy}}&redirect={{.RedirectURL}}"
//	userMacro: "$UID"
type SyncerEndpoint struct {
	// URL is the endpoint on the bidder server the user will be redirected to when a user sync is
	// requested. {{.RedirectURL}} is resolved at application startup; {{.GDPR}},
	// {{.GDPRConsent}} and {{.USPrivacy}} are resolved per request.
	URL string `yaml:"url"`

	// RedirectURL overrides the host's user_sync.redirect_url template for this endpoint.
	RedirectURL string `yaml:"redirectUrl"`

	// ExternalURL overrides the host's external_url for this endpoint.
	ExternalURL string `yaml:"externalUrl"`

	// UserMacro is the bidder server's user id macro. It has no default.
	UserMacro string `yaml:"userMacro"`
}

// Override returns a copy of s with the URL replaced by url when url is not empty. s is not
// modified.
func (s *SyncerEndpoint) Override(url string) *SyncerEndpoint {
	if s == nil {
		if url == "" {
			return nil
		}
		return &SyncerEndpoint{URL: url}
	}

	copy := *s
	if url != "" {
		copy.URL = url
	}
	return &copy
}

// LoadBidderInfos parses the bidder-info/{bidder}.yaml files compiled into the binary.
func LoadBidderInfos(adapterConfigs map[string]Adapter, bidders []string) (BidderInfos, error) {
	sub, err := fs.Sub(bidderInfoFS, bidderInfoDirectory)
	if err != nil {
		return nil, err
	}
	return LoadBidderInfoFS(sub, adapterConfigs, bidders)
}

// LoadBidderInfoFS parses the {bidder}.yaml files at the root of fsys.
func LoadBidderInfoFS(fsys fs.FS, adapterConfigs map[string]Adapter, bidders []string) (BidderInfos, error) {
	infos := BidderInfos{}

	for _, bidder := range bidders {
		data, err := fs.ReadFile(fsys, bidder+".yaml")
		if err != nil {
			return nil, err
		}

		info := BidderInfo{}
		if err := yaml.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("error parsing yaml for bidder %s.yaml: %v", bidder, err)
		}

		info.Disabled = !isEnabledByConfig(adapterConfigs, bidder)
		infos[bidder] = info
	}

	return infos, nil
}

func isEnabledByConfig(adapterConfigs map[string]Adapter, bidderName string) bool {
	a, ok := adapterConfigs[strings.ToLower(bidderName)]
	return ok && !a.Disabled
}

// ToGVLVendorIDMap transforms a BidderInfos object to a map of bidder names to GVL id. Disabled
// bidders are omitted from the result.
func (infos BidderInfos) ToGVLVendorIDMap() map[openrtb_ext.BidderName]uint16 {
	m := make(map[openrtb_ext.BidderName]uint16, len(infos))
	for name, info := range infos {
		if info.IsEnabled() && info.GVLVendorID != 0 {
			m[openrtb_ext.BidderName(name)] = info.GVLVendorID
		}
	}
	return m
}
