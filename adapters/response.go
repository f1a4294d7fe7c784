package adapters

import (
	"fmt"
	"net/http"

	"github.com/prebid/yahoossp-bid-adapter/errortypes"
)

// IsResponseStatusCodeNoContent reports whether the exchange had nothing to bid.
func IsResponseStatusCodeNoContent(response *ResponseData) bool {
	return response.StatusCode == http.StatusNoContent
}

// CheckResponseStatusCodeForWarnings returns a Warning for any status outside 2xx. The auction
// goes on without the response.
func CheckResponseStatusCodeForWarnings(response *ResponseData) error {
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &errortypes.Warning{
			Message:     fmt.Sprintf("Unexpected status code: %d.", response.StatusCode),
			WarningCode: errortypes.UnexpectedStatusCodeWarningCode,
		}
	}
	return nil
}
