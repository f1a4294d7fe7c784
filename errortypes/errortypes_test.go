package errortypes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCode(t *testing.T) {
	skipped := &Warning{Message: "c", WarningCode: SkippedSeatBidWarningCode}

	assert.Equal(t, BadInputErrorCode, ReadCode(&BadInput{Message: "a"}))
	assert.Equal(t, SkippedSeatBidWarningCode, ReadCode(skipped))
	assert.Equal(t, SkippedSeatBidWarningCode, ReadCode(fmt.Errorf("ad unit b: %w", skipped)))
	assert.Equal(t, UnknownErrorCode, ReadCode(errors.New("d")))
}

func TestWarningCodesAreDistinct(t *testing.T) {
	codes := []int{
		InvalidPrivacyConsentWarningCode,
		InvalidBidderParamsWarningCode,
		SkippedSeatBidWarningCode,
		UnexpectedStatusCodeWarningCode,
		MalformedResponseWarningCode,
	}
	seen := make(map[int]bool, len(codes))
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate warning code %d", c)
		assert.Greater(t, c, 10000)
		seen[c] = true
	}
}

func TestSeverityFilters(t *testing.T) {
	warning := &Warning{Message: "skipped", WarningCode: SkippedSeatBidWarningCode}
	fatal := &BadInput{Message: "bad"}
	plain := errors.New("plain")

	assert.True(t, IsWarning(warning))
	assert.True(t, IsWarning(fmt.Errorf("wrapped: %w", warning)))
	assert.False(t, IsWarning(fatal))
	assert.False(t, IsWarning(plain))

	assert.Equal(t, []error{fatal, plain}, FatalOnly([]error{warning, fatal, plain}))
	assert.Empty(t, FatalOnly([]error{warning}))
}
