package config

import (
	"fmt"
	"text/template"

	validator "github.com/asaskevich/govalidator"

	"github.com/prebid/yahoossp-bid-adapter/macros"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

type Adapter struct {
	// Endpoint is the exchange URL. It is interpreted as a Golang Template; {{.PublisherID}} is
	// replaced with the site id (dcn) of the request.
	Endpoint string `mapstructure:"endpoint"`
	// UserSyncURL overrides the redirect user sync URL of the bidder-info file when set.
	//
	// This value will be interpreted as a Golang Template. At runtime, the following Template variables will be replaced.
	//
	//   {{.GDPR}}        -- This will be replaced with the "gdpr" property sent to /cookie_sync
	//   {{.GDPRConsent}} -- This will be replaced with the "consent" property sent to /cookie_sync
	//   {{.USPrivacy}}   -- This will be replaced with the "us_privacy" property sent to /cookie_sync
	//   {{.RedirectURL}} -- This will be replaced with the host's escaped /setuid URL
	//
	// For more info on templates, see: https://golang.org/pkg/text/template/
	UserSyncURL string `mapstructure:"usersync_url"`
	Disabled    bool   `mapstructure:"disabled"`

	// Mode selects the media types sent to the exchange: banner (default), video or all.
	Mode string `mapstructure:"mode"`
	// SingleRequestMode sends every ad unit of an auction in one request instead of one
	// request per ad unit.
	SingleRequestMode bool `mapstructure:"single_request_mode"`
}

// MediaTypeMode returns the parsed Mode. Unrecognized values are kept as they are, which makes
// the adapter skip every ad unit.
func (a Adapter) MediaTypeMode() openrtb_ext.MediaTypeMode {
	mode, err := openrtb_ext.ParseMediaTypeMode(a.Mode)
	if err != nil {
		return openrtb_ext.MediaTypeMode(a.Mode)
	}
	return mode
}

// validateAdapters validates adapter's endpoint, user sync URL and mode
func validateAdapters(adapterMap map[string]Adapter, errs []error) []error {
	for adapterName, adapter := range adapterMap {
		if !adapter.Disabled {
			// Verify that every adapter has a valid endpoint associated with it
			errs = validateAdapterEndpoint(adapter.Endpoint, adapterName, errs)

			// Verify that valid user_sync URLs are specified in the config
			errs = validateAdapterUserSyncURL(adapter.UserSyncURL, adapterName, errs)

			if _, err := openrtb_ext.ParseMediaTypeMode(adapter.Mode); err != nil {
				errs = append(errs, fmt.Errorf("adapters.%s.mode: %v", adapterName, err))
			}
		}
	}
	return errs
}

const (
	dummyPublisherID string = "12"
	dummyGDPR        string = "0"
	dummyGDPRConsent string = "someGDPRConsentString"
	dummyCCPA        string = "1NYN"
	dummyRedirectURL string = "http%3A%2F%2Flocalhost%2Fsetuid"
)

// validateAdapterEndpoint makes sure that an adapter has a valid endpoint
// associated with it
func validateAdapterEndpoint(endpoint string, adapterName string, errs []error) []error {
	if endpoint == "" {
		return append(errs, fmt.Errorf("There's no default endpoint available for %s. Calls to this bidder/exchange will fail. "+
			"Please set adapters.%s.endpoint in your app config", adapterName, adapterName))
	}

	// Create endpoint template
	endpointTemplate, err := template.New("endpointTemplate").Parse(endpoint)
	if err != nil {
		return append(errs, fmt.Errorf("Invalid endpoint template: %s for adapter: %s. %v", endpoint, adapterName, err))
	}
	// Resolve macros (if any) in the endpoint URL
	resolvedEndpoint, err := macros.ResolveMacros(endpointTemplate, macros.EndpointTemplateParams{
		PublisherID: dummyPublisherID,
	})
	if err != nil {
		return append(errs, fmt.Errorf("Unable to resolve endpoint: %s for adapter: %s. %v", endpoint, adapterName, err))
	}
	// Validating using both IsURL and IsRequestURL because IsURL allows relative paths
	// whereas IsRequestURL requires absolute path but fails to check other valid URL
	// format constraints.
	if !validator.IsURL(resolvedEndpoint) || !validator.IsRequestURL(resolvedEndpoint) {
		errs = append(errs, fmt.Errorf("The endpoint: %s for %s is not a valid URL", resolvedEndpoint, adapterName))
	}
	return errs
}

// validateAdapterUserSyncURL validates an adapter's user sync URL if it is set
func validateAdapterUserSyncURL(userSyncURL string, adapterName string, errs []error) []error {
	if userSyncURL != "" {
		userSyncTemplate, err := template.New("userSyncTemplate").Parse(userSyncURL)
		if err != nil {
			return append(errs, fmt.Errorf("Invalid user sync URL template: %s for adapter: %s. %v", userSyncURL, adapterName, err))
		}
		dummyMacroValues := macros.UserSyncTemplateParams{
			GDPR:        dummyGDPR,
			GDPRConsent: dummyGDPRConsent,
			USPrivacy:   dummyCCPA,
			RedirectURL: dummyRedirectURL,
		}
		resolvedUserSyncURL, err := macros.ResolveMacros(userSyncTemplate, dummyMacroValues)
		if err != nil {
			return append(errs, fmt.Errorf("Unable to resolve user sync URL: %s for adapter: %s. %v", userSyncURL, adapterName, err))
		}
		if !validator.IsURL(resolvedUserSyncURL) || !validator.IsRequestURL(resolvedUserSyncURL) {
			errs = append(errs, fmt.Errorf("The user_sync URL: %s for %s is invalid", resolvedUserSyncURL, adapterName))
		}
	}
	return errs
}
