package gdpr

import (
	"encoding/json"
	"strconv"

	tcf2ConsentConstants "github.com/prebid/go-gdpr/consentconstants/tcf2"
	"github.com/tidwall/gjson"
)

// TCF2APIVersion is the CMP API version that exposes per-purpose consents in the vendor data.
const TCF2APIVersion = 2

// purposeOneConsentPath is the vendor data path holding the consent for storing and accessing
// information on the device.
var purposeOneConsentPath = "purpose.consents." + strconv.Itoa(int(tcf2ConsentConstants.InfoStorageAccess))

// HasPurposeOneConsent reports whether the exchange may receive cookies. It fails open: only an
// applicable GDPR signal from a TCF2 CMP whose vendor data explicitly refuses purpose 1 returns
// false. Missing or unreadable vendor data allows credentials.
func HasPurposeOneConsent(gdprApplies bool, apiVersion int, vendorData json.RawMessage) bool {
	if !gdprApplies || apiVersion != TCF2APIVersion {
		return true
	}
	if len(vendorData) == 0 {
		return true
	}

	consent := gjson.GetBytes(vendorData, purposeOneConsentPath)
	return consent.Type != gjson.False
}
