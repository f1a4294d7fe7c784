package errortypes

import "errors"

const (
	UnknownErrorCode  = 999
	BadInputErrorCode = 1
)

// Warning codes, one per kind of input or response the adapter skips.
const (
	InvalidPrivacyConsentWarningCode = iota + 10001
	InvalidBidderParamsWarningCode
	SkippedSeatBidWarningCode
	UnexpectedStatusCodeWarningCode
	MalformedResponseWarningCode
)

// Coder is implemented by every error this module returns to the auction.
type Coder interface {
	Code() int
	Severity() Severity
}

// ReadCode returns the code of err, or UnknownErrorCode when nothing in its chain is a Coder.
func ReadCode(err error) int {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return UnknownErrorCode
}
