package openrtb_ext

import (
	"fmt"
)

// MediaTypeMode selects which declared media types of an ad unit are sent to the exchange.
type MediaTypeMode string

const (
	// MediaTypeModeUnset behaves like MediaTypeModeBanner.
	MediaTypeModeUnset  MediaTypeMode = ""
	MediaTypeModeBanner MediaTypeMode = "banner"
	MediaTypeModeVideo  MediaTypeMode = "video"
	MediaTypeModeAll    MediaTypeMode = "all"
)

// ParseMediaTypeMode returns the mode for a configured value. An empty value resolves to the
// banner default.
func ParseMediaTypeMode(mode string) (MediaTypeMode, error) {
	switch MediaTypeMode(mode) {
	case MediaTypeModeUnset, MediaTypeModeBanner:
		return MediaTypeModeBanner, nil
	case MediaTypeModeVideo:
		return MediaTypeModeVideo, nil
	case MediaTypeModeAll:
		return MediaTypeModeAll, nil
	default:
		return "", fmt.Errorf("invalid media type mode %q, expected one of banner, video or all", mode)
	}
}

// Allows reports whether impressions built in this mode may carry the given media type.
// Unrecognized modes allow nothing.
func (m MediaTypeMode) Allows(bidType BidType) bool {
	switch m {
	case MediaTypeModeUnset, MediaTypeModeBanner:
		return bidType == BidTypeBanner
	case MediaTypeModeVideo:
		return bidType == BidTypeVideo
	case MediaTypeModeAll:
		return bidType == BidTypeBanner || bidType == BidTypeVideo
	}
	return false
}
