package adapters

import (
	"encoding/json"
	"net/http"

	"github.com/prebid/openrtb/v20/adcom1"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// Bidder describes how to connect to an external demand source.
//
// The host calls MakeRequests once per auction, executes the returned requests itself and hands
// each response to MakeBids. GetUserSyncs is called with the same responses once the auction is
// over.
type Bidder interface {
	// IsBidRequestValid reports whether an ad unit may take part in the auction.
	IsBidRequestValid(bid *AdUnitBid) bool

	// MakeRequests makes the HTTP requests which should be made to fetch bids.
	//
	// Bidders can return no requests, which means the ad units were not for them. Errors are
	// non-fatal diagnostics unless their severity says otherwise; requests and errors may both
	// be returned.
	MakeRequests(bids []AdUnitBid, bidderRequest *BidderRequest, reqInfo *ExtraRequestInfo) ([]*RequestData, []error)

	// MakeBids unpacks the server's response into Bids.
	//
	// The bids can be nil (for no bids), but should not contain nil elements.
	MakeBids(request *RequestData, response *ResponseData) (*BidderResponse, []error)

	// GetUserSyncs returns the user syncs the page should fire for the given responses.
	GetUserSyncs(syncOptions SyncOptions, responses []*ResponseData) []UserSync
}

// Builder is a function which creates a Bidder from its configuration.
type Builder func(openrtb_ext.BidderName, config.Adapter, config.Server) (Bidder, error)

// AdUnitBid is the bidder-specific part of one ad unit of the page.
type AdUnitBid struct {
	BidID        string          `json:"bidId"`
	AdUnitCode   string          `json:"adUnitCode"`
	Sizes        json.RawMessage `json:"sizes,omitempty"`
	MediaTypes   MediaTypes      `json:"mediaTypes"`
	Params       json.RawMessage `json:"params,omitempty"`
	UserIDAsEids []openrtb2.EID  `json:"userIdAsEids,omitempty"`
}

// MediaTypes holds the media type configuration of an ad unit. A nil entry means the ad unit
// does not declare that media type.
type MediaTypes struct {
	Banner *BannerMediaType `json:"banner,omitempty"`
	Video  *VideoMediaType  `json:"video,omitempty"`
}

// Declares reports whether the media type is configured on the ad unit.
func (m MediaTypes) Declares(bidType openrtb_ext.BidType) bool {
	switch bidType {
	case openrtb_ext.BidTypeBanner:
		return m.Banner != nil
	case openrtb_ext.BidTypeVideo:
		return m.Video != nil
	}
	return false
}

type BannerMediaType struct {
	Sizes json.RawMessage          `json:"sizes,omitempty"`
	Mimes []string                 `json:"mimes,omitempty"`
	Pos   adcom1.PlacementPosition `json:"pos,omitempty"`
}

// VideoMediaType follows the OpenRTB video object. Zero values mean the publisher left the field
// unset.
type VideoMediaType struct {
	PlayerSize     json.RawMessage               `json:"playerSize,omitempty"`
	Mimes          []string                      `json:"mimes,omitempty"`
	MaxBitrate     int64                         `json:"maxbitrate,omitempty"`
	MaxDuration    int64                         `json:"maxduration,omitempty"`
	MinDuration    int64                         `json:"minduration,omitempty"`
	API            []adcom1.APIFramework         `json:"api,omitempty"`
	Delivery       []adcom1.DeliveryMethod       `json:"delivery,omitempty"`
	Pos            adcom1.PlacementPosition      `json:"pos,omitempty"`
	PlaybackMethod []adcom1.PlaybackMethod       `json:"playbackmethod,omitempty"`
	Placement      adcom1.VideoPlacementSubtype  `json:"placement,omitempty"`
	Rewarded       int8                          `json:"rewarded,omitempty"`
	Linearity      adcom1.LinearityMode          `json:"linearity,omitempty"`
	Protocols      []adcom1.MediaCreativeSubtype `json:"protocols,omitempty"`
}

// BidderRequest is the auction-wide context shared by every ad unit of the bidder.
type BidderRequest struct {
	AuctionID   string       `json:"auctionId"`
	RefererInfo RefererInfo  `json:"refererInfo"`
	GDPRConsent *GDPRConsent `json:"gdprConsent,omitempty"`
	USPConsent  string       `json:"uspConsent,omitempty"`
	UserAgent   string       `json:"userAgent,omitempty"`
	Bids        []AdUnitBid  `json:"bids,omitempty"`
}

type RefererInfo struct {
	Referer string `json:"referer"`
}

// GDPRConsent is the consent management platform's view of the user. VendorData is the raw
// TCF data the CMP returned.
type GDPRConsent struct {
	GDPRApplies   bool            `json:"gdprApplies"`
	ConsentString string          `json:"consentString"`
	APIVersion    int             `json:"apiVersion"`
	VendorData    json.RawMessage `json:"vendorData,omitempty"`
}

// ExtraRequestInfo tells the bidder about the host making the call.
type ExtraRequestInfo struct {
	PrebidVersion string
}

// RequestData packages together the fields needed to make an HTTP Request.
type RequestData struct {
	Method          string
	Uri             string
	Body            []byte
	Headers         http.Header
	WithCredentials bool
	ImpIDs          []string
}

// ResponseData packages together information from the server's http.Response.
//
// This exists so that the host can implement its "debug" functionality uniformly across all Bidders.
type ResponseData struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// BidderResponse wraps the server's response with the list of bids and the currency they use.
type BidderResponse struct {
	Currency string
	Bids     []*BidResult
}

// NewBidderResponseWithBidsCapacity create a new BidderResponse initialising the bids array capacity
func NewBidderResponseWithBidsCapacity(bidsCapacity int) *BidderResponse {
	return &BidderResponse{
		Currency: "USD",
		Bids:     make([]*BidResult, 0, bidsCapacity),
	}
}

// NewBidderResponse create a new BidderResponse initialising the bids array and the default currency
func NewBidderResponse() *BidderResponse {
	return NewBidderResponseWithBidsCapacity(0)
}

// BidResult is one bid in the shape the page-side auction expects.
type BidResult struct {
	RequestID  string  `json:"requestId"`
	Ad         string  `json:"ad"`
	CPM        float64 `json:"cpm"`
	Currency   string  `json:"currency"`
	Width      int64   `json:"width"`
	Height     int64   `json:"height"`
	CreativeID string  `json:"creativeId"`
	DealID     *string `json:"dealId"`
	NetRevenue bool    `json:"netRevenue"`
	TTL        int     `json:"ttl"`
	// EncryptedCPM holds an encrypted price the exchange sent in place of a readable one. CPM
	// then falls back to the clear price.
	EncryptedCPM string `json:"encryptedCpm,omitempty"`
}

// SyncOptions are the user sync kinds the page allows.
type SyncOptions struct {
	IFrameEnabled bool `json:"iframeEnabled"`
	PixelEnabled  bool `json:"pixelEnabled"`
}

type UserSyncType string

const (
	UserSyncImage  UserSyncType = "image"
	UserSyncIFrame UserSyncType = "iframe"
)

// UserSync is a pixel or iframe the page should load to sync the user with the exchange.
type UserSync struct {
	Type UserSyncType `json:"type"`
	URL  string       `json:"url"`
}
