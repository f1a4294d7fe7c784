package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// Configuration holds everything the adapter reads from the host's configuration store.
type Configuration struct {
	ExternalURL string             `mapstructure:"external_url"`
	GvlID       int                `mapstructure:"gvl_id"`
	DataCenter  string             `mapstructure:"datacenter"`
	Metrics     Metrics            `mapstructure:"metrics"`
	UserSync    UserSync           `mapstructure:"user_sync"`
	Adapters    map[string]Adapter `mapstructure:"adapters"`
}

// Server describes the host running the adapter. It is handed to adapter Builders.
type Server struct {
	ExternalUrl string
	GvlID       int
	DataCenter  string
}

// UserSync holds the host side of user syncing.
type UserSync struct {
	// RedirectURL is the template of the host's /setuid call. {{.ExternalURL}}, {{.SyncerKey}},
	// {{.SyncType}} and {{.UserMacro}} are resolved at startup.
	RedirectURL string `mapstructure:"redirect_url"`
}

// DefaultUserSyncRedirectURL is the host's /setuid template.
const DefaultUserSyncRedirectURL = "{{.ExternalURL}}/setuid?bidder={{.SyncerKey}}&gdpr={{.GDPR}}&gdpr_consent={{.GDPRConsent}}&us_privacy={{.USPrivacy}}&f={{.SyncType}}&uid={{.UserMacro}}"

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
	GoMetrics  GoMetrics         `mapstructure:"go_metrics"`
}

type PrometheusMetrics struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

type GoMetrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
}

const (
	// DefaultYahooSSPEndpoint is the exchange endpoint used when no override is configured.
	DefaultYahooSSPEndpoint = "https://c2shb.ssp.yahoo.com/bidRequest"
	// DefaultYahooSSPUserSyncURL is the redirect user sync template shipped in bidder-info.
	DefaultYahooSSPUserSyncURL = "https://ups.analytics.yahoo.com/ups/58401/occ?gdpr={{.GDPR}}&gdpr_consent={{.GDPRConsent}}&us_privacy={{.USPrivacy}}&redir={{.RedirectURL}}"
)

// SetupViper installs the defaults for every key the adapter reads.
func SetupViper(v *viper.Viper) {
	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("gvl_id", 25)
	v.SetDefault("datacenter", "")

	v.SetDefault("user_sync.redirect_url", DefaultUserSyncRedirectURL)

	v.SetDefault("metrics.prometheus.enabled", false)
	v.SetDefault("metrics.prometheus.namespace", "")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("metrics.go_metrics.enabled", false)
	v.SetDefault("metrics.go_metrics.prefix", "")

	bidder := string(openrtb_ext.BidderYahooSSP)
	v.SetDefault("adapters."+bidder+".endpoint", DefaultYahooSSPEndpoint)
	v.SetDefault("adapters."+bidder+".usersync_url", "")
	v.SetDefault("adapters."+bidder+".mode", string(openrtb_ext.MediaTypeModeBanner))
	v.SetDefault("adapters."+bidder+".single_request_mode", false)
	v.SetDefault("adapters."+bidder+".disabled", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PBS")
	v.AutomaticEnv()
}

// New uses viper to get the adapter configuration. The result is validated; all problems are
// reported together.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}

	if errs := c.validate(nil); len(errs) > 0 {
		return &c, errors.Join(errs...)
	}
	return &c, nil
}

func (cfg *Configuration) validate(errs []error) []error {
	if cfg.ExternalURL != "" {
		if _, err := url.Parse(cfg.ExternalURL); err != nil {
			errs = append(errs, fmt.Errorf("external_url %q is invalid: %v", cfg.ExternalURL, err))
		}
	}
	return validateAdapters(cfg.Adapters, errs)
}

// Server returns the host description passed to adapter Builders.
func (cfg *Configuration) Server() Server {
	return Server{
		ExternalUrl: cfg.ExternalURL,
		GvlID:       cfg.GvlID,
		DataCenter:  cfg.DataCenter,
	}
}

// Adapter returns the configuration of a bidder, with the bool reporting if it was present.
func (cfg *Configuration) Adapter(bidder openrtb_ext.BidderName) (Adapter, bool) {
	a, ok := cfg.Adapters[strings.ToLower(string(bidder))]
	return a, ok
}
