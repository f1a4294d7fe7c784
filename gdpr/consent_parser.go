package gdpr

import (
	"fmt"

	"github.com/prebid/go-gdpr/api"
	tcf2ConsentConstants "github.com/prebid/go-gdpr/consentconstants/tcf2"
	"github.com/prebid/go-gdpr/vendorconsent"
)

// ErrorMalformedConsent is returned for consent strings that cannot be decoded as TCF2.
type ErrorMalformedConsent struct {
	Consent string
	Cause   error
}

func (e *ErrorMalformedConsent) Error() string {
	return fmt.Sprintf("malformed consent string %s: %v", e.Consent, e.Cause)
}

// ParsedConsent holds the notable fields of a decoded TCF2 consent string.
type ParsedConsent struct {
	EncodingVersion uint8
	ListVersion     uint16
	PolicyVersion   uint8
	PurposeOne      bool
}

// ParseConsent decodes a TCF2 consent string. The adapter never changes its output based on the
// result; it is used to flag consent strings the exchange will not be able to read.
func ParseConsent(consent string) (ParsedConsent, error) {
	parsed, err := vendorconsent.ParseString(consent)
	if err != nil {
		return ParsedConsent{}, &ErrorMalformedConsent{
			Consent: consent,
			Cause:   err,
		}
	}

	if err := validateVersions(parsed); err != nil {
		return ParsedConsent{}, &ErrorMalformedConsent{
			Consent: consent,
			Cause:   err,
		}
	}

	return ParsedConsent{
		EncodingVersion: parsed.Version(),
		ListVersion:     parsed.VendorListVersion(),
		PolicyVersion:   parsed.TCFPolicyVersion(),
		PurposeOne:      parsed.PurposeAllowed(tcf2ConsentConstants.InfoStorageAccess),
	}, nil
}

// validateVersions ensures that certain version fields in the consent string contain valid values.
func validateVersions(pc api.VendorConsents) error {
	if version := pc.Version(); version != 2 {
		return fmt.Errorf("invalid encoding format version: %d", version)
	}
	if policyVersion := pc.TCFPolicyVersion(); policyVersion > 4 {
		return fmt.Errorf("invalid TCF policy version: %d", policyVersion)
	}
	return nil
}
