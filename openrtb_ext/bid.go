package openrtb_ext

// BidType is the media type of an ad unit's requested format and of the bid served for it.
// The values double as the keys of an ad unit's MediaTypes object.
type BidType string

const (
	BidTypeBanner BidType = "banner"
	BidTypeVideo  BidType = "video"
)

// BidTypes lists the media types the adapter knows how to build impressions for, in the order
// impressions are emitted for a multi-format ad unit.
func BidTypes() []BidType {
	return []BidType{BidTypeBanner, BidTypeVideo}
}
