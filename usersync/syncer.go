package usersync

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"text/template"

	validator "github.com/asaskevich/govalidator"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/gdpr"
	"github.com/prebid/yahoossp-bid-adapter/macros"
)

// Syncer represents the user sync configuration for a bidder.
type Syncer interface {
	// Key is the name of the syncer as stored in the user's cookie.
	Key() string

	// DefaultSyncType is the sync type preferred when the device allows more than one.
	DefaultSyncType() SyncType

	// SupportsType returns true if the syncer supports at least one of the specified sync types.
	SupportsType(syncTypes []SyncType) bool

	// GetSync returns a user sync for the user's device to perform, or an error if the none of the
	// sync types are supported or if macro substitution fails.
	GetSync(syncTypes []SyncType, privacy Privacy) (Sync, error)
}

// Privacy holds the consent signals of the /cookie_sync call.
type Privacy struct {
	GDPR        gdpr.Signal
	GDPRConsent string
	USPrivacy   string
}

// Sync represents a user sync for the user's device to perform.
type Sync struct {
	URL         string
	Type        SyncType
	SupportCORS bool
}

type standardSyncer struct {
	key             string
	defaultSyncType SyncType
	iframe          *template.Template
	redirect        *template.Template
	supportCORS     bool
}

const (
	setuidSyncTypeIFrame   = "b"
	setuidSyncTypeRedirect = "i"
)

// NewSyncer creates a new Syncer instance from the provided configuration, or an error if macro
// substitution fails or the url specified is invalid.
func NewSyncer(hostConfig config.UserSync, externalURL string, syncerConfig config.Syncer) (Syncer, error) {
	if syncerConfig.IFrame == nil && syncerConfig.Redirect == nil {
		return nil, errors.New("at least one iframe or redirect is required")
	}

	if syncerConfig.Key == "" {
		return nil, errors.New("key is required")
	}

	syncer := standardSyncer{
		key:         syncerConfig.Key,
		supportCORS: syncerConfig.SupportCORS != nil && *syncerConfig.SupportCORS,
	}

	defaultSyncType, err := resolveDefaultSyncType(syncerConfig)
	if err != nil {
		return nil, err
	}
	syncer.defaultSyncType = defaultSyncType

	if syncerConfig.IFrame != nil {
		var err error
		syncer.iframe, err = buildTemplate(syncerConfig.Key, setuidSyncTypeIFrame, hostConfig, externalURL, *syncerConfig.IFrame)
		if err != nil {
			return nil, fmt.Errorf("iframe %v", err)
		}
	}

	if syncerConfig.Redirect != nil {
		var err error
		syncer.redirect, err = buildTemplate(syncerConfig.Key, setuidSyncTypeRedirect, hostConfig, externalURL, *syncerConfig.Redirect)
		if err != nil {
			return nil, fmt.Errorf("redirect %v", err)
		}
	}

	return syncer, nil
}

func resolveDefaultSyncType(syncerConfig config.Syncer) (SyncType, error) {
	if syncerConfig.Default == "" {
		if syncerConfig.IFrame != nil && syncerConfig.Redirect != nil {
			return SyncTypeUnknown, errors.New("default is required if both iframe and redirect are specified")
		}
		if syncerConfig.IFrame != nil {
			return SyncTypeIFrame, nil
		}
		return SyncTypeRedirect, nil
	}

	switch syncType := SyncTypeParse(syncerConfig.Default); syncType {
	case SyncTypeIFrame:
		if syncerConfig.IFrame == nil {
			return SyncTypeUnknown, errors.New("default is set to iframe but no iframe endpoint is configured")
		}
		return syncType, nil
	case SyncTypeRedirect:
		if syncerConfig.Redirect == nil {
			return SyncTypeUnknown, errors.New("default is set to redirect but no redirect endpoint is configured")
		}
		return syncType, nil
	}
	return SyncTypeUnknown, fmt.Errorf("default is set to an unrecognized value %q, expected iframe or redirect", syncerConfig.Default)
}

var (
	macroRegexExternalHost = regexp.MustCompile(`{{\s*\.ExternalURL\s*}}`)
	macroRegexSyncerKey    = regexp.MustCompile(`{{\s*\.SyncerKey\s*}}`)
	macroRegexSyncType     = regexp.MustCompile(`{{\s*\.SyncType\s*}}`)
	macroRegexUserMacro    = regexp.MustCompile(`{{\s*\.UserMacro\s*}}`)
	macroRegexRedirect     = regexp.MustCompile(`{{\s*\.RedirectURL\s*}}`)
	macroRegex             = regexp.MustCompile(`{{\s*\..*?\s*}}`)
)

func buildTemplate(key, syncTypeValue string, hostConfig config.UserSync, hostExternalURL string, syncerEndpoint config.SyncerEndpoint) (*template.Template, error) {
	redirectTemplate := syncerEndpoint.RedirectURL
	if redirectTemplate == "" {
		redirectTemplate = hostConfig.RedirectURL
	}

	externalURL := syncerEndpoint.ExternalURL
	if externalURL == "" {
		externalURL = hostExternalURL
	}

	redirectURL := macroRegexSyncerKey.ReplaceAllLiteralString(redirectTemplate, key)
	redirectURL = macroRegexSyncType.ReplaceAllLiteralString(redirectURL, syncTypeValue)
	redirectURL = macroRegexUserMacro.ReplaceAllLiteralString(redirectURL, syncerEndpoint.UserMacro)
	redirectURL = macroRegexExternalHost.ReplaceAllLiteralString(redirectURL, externalURL)
	redirectURL = escapeTemplate(redirectURL)

	url := macroRegexRedirect.ReplaceAllLiteralString(syncerEndpoint.URL, redirectURL)

	templateName := strings.ToLower(key) + "_usersync_url"
	t, err := template.New(templateName).Option("missingkey=zero").Parse(url)
	if err != nil {
		return nil, err
	}

	if err := validateTemplate(t); err != nil {
		return nil, err
	}

	return t, nil
}

// escapeTemplate url encodes a string template leaving the macro tags unaffected.
func escapeTemplate(x string) string {
	escaped := strings.Builder{}

	i := 0
	for _, m := range macroRegex.FindAllStringIndex(x, -1) {
		escaped.WriteString(url.QueryEscape(x[i:m[0]]))
		escaped.WriteString(x[m[0]:m[1]])
		i = m[1]
	}
	escaped.WriteString(url.QueryEscape(x[i:]))

	return escaped.String()
}

var templateTestValues = macros.UserSyncTemplateParams{
	GDPR:        "anyGDPR",
	GDPRConsent: "anyGDPRConsent",
	USPrivacy:   "anyCCPAConsent",
}

func validateTemplate(template *template.Template) error {
	url, err := macros.ResolveMacros(template, templateTestValues)
	if err != nil {
		return err
	}

	if !validator.IsURL(url) || !validator.IsRequestURL(url) {
		return fmt.Errorf(`composed url: "%s" is invalid`, url)
	}

	return nil
}

func (s standardSyncer) Key() string {
	return s.key
}

func (s standardSyncer) DefaultSyncType() SyncType {
	return s.defaultSyncType
}

func (s standardSyncer) SupportsType(syncTypes []SyncType) bool {
	supported := s.filterSupportedSyncTypes(syncTypes)
	return len(supported) > 0
}

func (s standardSyncer) filterSupportedSyncTypes(syncTypes []SyncType) []SyncType {
	supported := make([]SyncType, 0, len(syncTypes))
	for _, syncType := range syncTypes {
		switch syncType {
		case SyncTypeIFrame:
			if s.iframe != nil {
				supported = append(supported, SyncTypeIFrame)
			}
		case SyncTypeRedirect:
			if s.redirect != nil {
				supported = append(supported, SyncTypeRedirect)
			}
		}
	}
	return supported
}

func (s standardSyncer) GetSync(syncTypes []SyncType, privacy Privacy) (Sync, error) {
	syncType, err := s.chooseSyncType(syncTypes)
	if err != nil {
		return Sync{}, err
	}

	syncTemplate := s.chooseTemplate(syncType)

	url, err := macros.ResolveMacros(syncTemplate, macros.UserSyncTemplateParams{
		GDPR:        privacy.GDPR.String(),
		GDPRConsent: privacy.GDPRConsent,
		USPrivacy:   privacy.USPrivacy,
	})
	if err != nil {
		return Sync{}, err
	}

	sync := Sync{
		URL:         url,
		Type:        syncType,
		SupportCORS: s.supportCORS,
	}
	return sync, nil
}

func (s standardSyncer) chooseSyncType(syncTypes []SyncType) (SyncType, error) {
	if len(syncTypes) == 0 {
		return SyncTypeUnknown, errors.New("no sync types provided")
	}

	supported := s.filterSupportedSyncTypes(syncTypes)
	if len(supported) == 0 {
		return SyncTypeUnknown, errors.New("no sync types supported")
	}

	// prefer default type
	for _, syncType := range supported {
		if syncType == s.defaultSyncType {
			return syncType, nil
		}
	}

	return supported[0], nil
}

func (s standardSyncer) chooseTemplate(syncType SyncType) *template.Template {
	switch syncType {
	case SyncTypeIFrame:
		return s.iframe
	case SyncTypeRedirect:
		return s.redirect
	default:
		return nil
	}
}
