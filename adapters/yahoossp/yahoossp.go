package yahoossp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"text/template"

	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/xorcare/pointer"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/errortypes"
	"github.com/prebid/yahoossp-bid-adapter/gdpr"
	"github.com/prebid/yahoossp-bid-adapter/logger"
	"github.com/prebid/yahoossp-bid-adapter/macros"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

const (
	adapterVersion  = "1.0.0"
	openRTBVersion  = "2.5"
	bidResponseTTL  = 3600
	defaultCurrency = "USD"
)

// supportedEidSources are the identity providers whose ids are forwarded to the exchange.
var supportedEidSources = map[string]struct{}{
	"verizonmedia.com": {},
	"liveramp.com":     {},
}

type adapter struct {
	bidderName    openrtb_ext.BidderName
	endpoint      *template.Template
	mode          openrtb_ext.MediaTypeMode
	singleRequest bool
	validator     openrtb_ext.BidderParamValidator
}

// Builder builds a new instance of the Yahoo SSP adapter for the given bidder with the given config.
func Builder(bidderName openrtb_ext.BidderName, cfg config.Adapter, server config.Server) (adapters.Bidder, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultYahooSSPEndpoint
	}

	template, err := template.New("endpointTemplate").Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to parse endpoint url template: %v", err)
	}
	if _, err := macros.ResolveMacros(template, macros.EndpointTemplateParams{PublisherID: "dcn"}); err != nil {
		return nil, fmt.Errorf("unable to resolve endpoint url template: %v", err)
	}

	validator, err := openrtb_ext.NewBidderParamsValidator()
	if err != nil {
		return nil, fmt.Errorf("unable to load bidder params schema: %v", err)
	}

	return &adapter{
		bidderName:    bidderName,
		endpoint:      template,
		mode:          cfg.MediaTypeMode(),
		singleRequest: cfg.SingleRequestMode,
		validator:     validator,
	}, nil
}

// IsBidRequestValid accepts every ad unit. Malformed params are sent as they are.
func (a *adapter) IsBidRequestValid(bid *adapters.AdUnitBid) bool {
	return true
}

func (a *adapter) MakeRequests(bids []adapters.AdUnitBid, bidderRequest *adapters.BidderRequest, reqInfo *adapters.ExtraRequestInfo) ([]*adapters.RequestData, []error) {
	if bidderRequest == nil {
		bidderRequest = &adapters.BidderRequest{}
	}
	var prebidVersion string
	if reqInfo != nil {
		prebidVersion = reqInfo.PrebidVersion
	}

	filtered := a.filterByMode(bids)
	if len(filtered) == 0 {
		return nil, nil
	}

	var errs []error
	params := make([]openrtb_ext.ExtImpYahooSSP, len(filtered))
	for i := range filtered {
		var err error
		if params[i], err = a.parseParams(&filtered[i]); err != nil {
			errs = append(errs, err)
		}
	}

	if err := checkConsentString(bidderRequest.GDPRConsent); err != nil {
		errs = append(errs, err)
	}

	payload := buildOpenRTBRequest(bidderRequest, filtered, params[0])
	withCredentials := hasPurposeOneConsent(bidderRequest.GDPRConsent)

	uri, err := a.buildEndpointURL(params[0])
	if err != nil {
		return nil, append(errs, err)
	}

	if a.singleRequest {
		for i := range filtered {
			payload.Imp = append(payload.Imp, buildImp(&filtered[i], params[i], a.mode, prebidVersion))
		}
		request, err := makeRequest(uri, payload, withCredentials)
		if err != nil {
			return nil, append(errs, err)
		}
		return []*adapters.RequestData{request}, errs
	}

	requests := make([]*adapters.RequestData, 0, len(filtered))
	for i := range filtered {
		payloadClone := payload.clone()
		payloadClone.Imp = append(payloadClone.Imp, buildImp(&filtered[i], params[i], a.mode, prebidVersion))
		request, err := makeRequest(uri, payloadClone, withCredentials)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		requests = append(requests, request)
	}
	return requests, errs
}

// filterByMode keeps the ad units which declare a media type the configured mode allows.
func (a *adapter) filterByMode(bids []adapters.AdUnitBid) []adapters.AdUnitBid {
	filtered := make([]adapters.AdUnitBid, 0, len(bids))
	for _, bid := range bids {
		if a.allowsAny(bid.MediaTypes) {
			filtered = append(filtered, bid)
			continue
		}
		logger.Debugf("%s: dropping ad unit %s, mode %q allows none of its media types", a.bidderName, bid.AdUnitCode, a.mode)
	}
	return filtered
}

func (a *adapter) allowsAny(mediaTypes adapters.MediaTypes) bool {
	for _, bidType := range openrtb_ext.BidTypes() {
		if mediaTypes.Declares(bidType) && a.mode.Allows(bidType) {
			return true
		}
	}
	return false
}

// parseParams reads the bidder params of an ad unit. Params which do not match the schema are
// reported and still used as far as they can be read.
func (a *adapter) parseParams(bid *adapters.AdUnitBid) (openrtb_ext.ExtImpYahooSSP, error) {
	var err error
	if len(bytes.TrimSpace(bid.Params)) == 0 {
		logger.Warnf("%s: ad unit %s has no params", a.bidderName, bid.AdUnitCode)
		return openrtb_ext.ExtImpYahooSSP{}, &errortypes.Warning{
			Message:     fmt.Sprintf("ad unit %s: missing params", bid.AdUnitCode),
			WarningCode: errortypes.InvalidBidderParamsWarningCode,
		}
	}
	if validationErr := a.validator.Validate(a.bidderName, bid.Params); validationErr != nil {
		logger.Warnf("%s: params of ad unit %s do not match the schema: %v", a.bidderName, bid.AdUnitCode, validationErr)
		err = &errortypes.Warning{
			Message:     fmt.Sprintf("ad unit %s: invalid params: %v", bid.AdUnitCode, validationErr),
			WarningCode: errortypes.InvalidBidderParamsWarningCode,
		}
	}

	var params openrtb_ext.ExtImpYahooSSP
	params.Dcn, _ = jsonparser.GetString(bid.Params, "dcn")
	params.Pos, _ = jsonparser.GetString(bid.Params, "pos")
	return params, err
}

func (a *adapter) buildEndpointURL(params openrtb_ext.ExtImpYahooSSP) (string, error) {
	uri, err := macros.ResolveMacros(a.endpoint, macros.EndpointTemplateParams{PublisherID: url.QueryEscape(params.Dcn)})
	if err != nil {
		return "", &errortypes.BadInput{Message: fmt.Sprintf("unable to resolve endpoint: %v", err)}
	}
	return uri, nil
}

// buildOpenRTBRequest builds the request shared by every impression of the auction. The site id
// is the dcn of the first ad unit.
func buildOpenRTBRequest(bidderRequest *adapters.BidderRequest, bids []adapters.AdUnitBid, params openrtb_ext.ExtImpYahooSSP) *openRTBRequest {
	gdprApplies := bidderRequest.GDPRConsent != nil && bidderRequest.GDPRConsent.GDPRApplies

	var euconsent string
	if gdprApplies {
		euconsent = bidderRequest.GDPRConsent.ConsentString
	}

	eidSource := &bids[0]
	if len(bidderRequest.Bids) > 0 {
		eidSource = &bidderRequest.Bids[0]
	}

	return &openRTBRequest{
		ID:  bidderRequest.AuctionID,
		Imp: []impression{},
		Site: &openrtb2.Site{
			ID:   params.Dcn,
			Page: bidderRequest.RefererInfo.Referer,
		},
		Device: &openrtb2.Device{
			DNT: pointer.Int8(0),
			UA:  bidderRequest.UserAgent,
		},
		Regs: &regs{
			Ext: regsExt{
				USPrivacy: bidderRequest.USPConsent,
				GDPR:      int8(gdpr.SignalFromApplies(gdprApplies)),
			},
		},
		Source: &source{
			Ext: sourceExt{HB: 1},
			FD:  1,
		},
		User: &user{
			Regs: userRegs{GDPR: userGDPR{EUConsent: euconsent}},
			Ext:  userExt{Eids: getSupportedEids(eidSource)},
		},
	}
}

// getSupportedEids returns the extended ids of the ad unit issued by a supported identity
// provider, in their original order.
func getSupportedEids(bid *adapters.AdUnitBid) []openrtb2.EID {
	eids := make([]openrtb2.EID, 0, len(bid.UserIDAsEids))
	for _, eid := range bid.UserIDAsEids {
		if _, ok := supportedEidSources[eid.Source]; ok {
			eids = append(eids, eid)
		}
	}
	return cloneEids(eids)
}

func hasPurposeOneConsent(consent *adapters.GDPRConsent) bool {
	if consent == nil {
		return true
	}
	return gdpr.HasPurposeOneConsent(consent.GDPRApplies, consent.APIVersion, consent.VendorData)
}

// checkConsentString flags consent strings the exchange will not be able to read. The string is
// forwarded either way.
func checkConsentString(consent *adapters.GDPRConsent) error {
	if consent == nil || !consent.GDPRApplies || consent.ConsentString == "" {
		return nil
	}
	if _, err := gdpr.ParseConsent(consent.ConsentString); err != nil {
		return &errortypes.Warning{
			Message:     err.Error(),
			WarningCode: errortypes.InvalidPrivacyConsentWarningCode,
		}
	}
	return nil
}

func makeRequest(uri string, payload *openRTBRequest, withCredentials bool) (*adapters.RequestData, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Add("Content-Type", "application/json")
	headers.Add("x-openrtb-version", openRTBVersion)

	impIDs := make([]string, 0, len(payload.Imp))
	for _, imp := range payload.Imp {
		impIDs = append(impIDs, imp.ID)
	}

	return &adapters.RequestData{
		Method:          http.MethodPost,
		Uri:             uri,
		Body:            body,
		Headers:         headers,
		WithCredentials: withCredentials,
		ImpIDs:          impIDs,
	}, nil
}
