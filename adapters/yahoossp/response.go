package yahoossp

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/errortypes"
	"github.com/prebid/yahoossp-bid-adapter/logger"
)

// MakeBids takes the first bid of every seat bid. Seat bids without a bid are skipped and
// reported as warnings; no response makes the call fail.
func (a *adapter) MakeBids(request *adapters.RequestData, response *adapters.ResponseData) (*adapters.BidderResponse, []error) {
	bidResponse := adapters.NewBidderResponse()

	if response == nil || adapters.IsResponseStatusCodeNoContent(response) {
		return bidResponse, nil
	}

	if err := adapters.CheckResponseStatusCodeForWarnings(response); err != nil {
		return bidResponse, []error{err}
	}

	body := bytes.TrimSpace(response.Body)
	if len(body) == 0 {
		return bidResponse, nil
	}
	if body[0] != '{' {
		return bidResponse, []error{&errortypes.Warning{
			Message:     "response body is not a JSON object",
			WarningCode: errortypes.MalformedResponseWarningCode,
		}}
	}

	currency, _ := jsonparser.GetString(body, "cur")
	if currency == "" {
		currency = defaultCurrency
	}
	bidResponse.Currency = currency

	seatBids, dataType, _, err := jsonparser.Get(body, "seatbid")
	if err != nil || dataType != jsonparser.Array {
		return bidResponse, nil
	}

	var errs []error
	seatBidIndex := 0
	jsonparser.ArrayEach(seatBids, func(seatBid []byte, _ jsonparser.ValueType, _ int, _ error) {
		defer func() { seatBidIndex++ }()

		bid, dataType, _, err := jsonparser.Get(seatBid, "bid", "[0]")
		if err != nil || dataType != jsonparser.Object {
			logger.Debugf("%s: skipping seatbid %d without a bid", a.bidderName, seatBidIndex)
			errs = append(errs, &errortypes.Warning{
				Message:     fmt.Sprintf("seatbid %d has no bid", seatBidIndex),
				WarningCode: errortypes.SkippedSeatBidWarningCode,
			})
			return
		}

		bidResponse.Bids = append(bidResponse.Bids, buildBidResult(bid, currency))
	})

	return bidResponse, errs
}

func buildBidResult(bid []byte, currency string) *adapters.BidResult {
	result := &adapters.BidResult{
		RequestID:  getString(bid, "impid"),
		Ad:         getString(bid, "adm"),
		Currency:   currency,
		Width:      getInt(bid, "w"),
		Height:     getInt(bid, "h"),
		CreativeID: getString(bid, "crid"),
		NetRevenue: true,
		TTL:        bidResponseTTL,
	}

	if result.CreativeID == "" {
		result.CreativeID = "0"
	}
	if dealID := getString(bid, "dealid"); dealID != "" {
		result.DealID = &dealID
	}

	price, _ := getFloat(bid, "price")
	result.CPM = price

	// A zero or empty encp leaves the price in place.
	encp, dataType, _, err := jsonparser.Get(bid, "ext", "encp")
	if err != nil {
		return result
	}
	switch dataType {
	case jsonparser.Number:
		if cpm, err := jsonparser.ParseFloat(encp); err == nil && cpm != 0 {
			result.CPM = cpm
		}
	case jsonparser.String:
		s, err := jsonparser.ParseString(encp)
		if err != nil || s == "" {
			break
		}
		if cpm, err := strconv.ParseFloat(s, 64); err == nil {
			result.CPM = cpm
		} else {
			result.EncryptedCPM = s
		}
	}

	return result
}

// getString reads a string or a number as a string.
func getString(data []byte, keys ...string) string {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return ""
		}
		return s
	case jsonparser.Number:
		return string(value)
	}
	return ""
}

// getFloat reads a number, or a string holding a number.
func getFloat(data []byte, keys ...string) (float64, bool) {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return 0, false
	}
	switch dataType {
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		return f, err == nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func getInt(data []byte, keys ...string) int64 {
	f, _ := getFloat(data, keys...)
	return int64(f)
}
