package yahoossp

import (
	"encoding/json"
	"testing"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// This file actually intends to test openrtb_ext/bidder-params/yahoossp.json
//
// These also validate the format of the external API: adUnits[i].bids[j].params

// TestValidParams makes sure that the yahoossp schema accepts all params fields which we intend to support.
func TestValidParams(t *testing.T) {
	validator, err := openrtb_ext.NewBidderParamsValidator()
	if err != nil {
		t.Fatalf("Failed to fetch the json-schemas. %v", err)
	}

	for _, validParam := range validParams {
		if err := validator.Validate(openrtb_ext.BidderYahooSSP, json.RawMessage(validParam)); err != nil {
			t.Errorf("Schema rejected yahoossp params: %s", validParam)
		}
	}
}

// TestInvalidParams makes sure that the yahoossp schema rejects all the params fields we don't support.
func TestInvalidParams(t *testing.T) {
	validator, err := openrtb_ext.NewBidderParamsValidator()
	if err != nil {
		t.Fatalf("Failed to fetch the json-schemas. %v", err)
	}

	for _, invalidParam := range invalidParams {
		if err := validator.Validate(openrtb_ext.BidderYahooSSP, json.RawMessage(invalidParam)); err == nil {
			t.Errorf("Schema allowed unexpected params: %s", invalidParam)
		}
	}
}

var validParams = []string{
	`{"dcn": "1234", "pos": "header"}`,
	`{"dcn": "8a969516017a7a396ec539d97f540011", "pos": "8a969978017a7aaabab4ab0bc01a0009"}`,
	`{"dcn": "1234", "pos": "header", "extra": true}`,
}

var invalidParams = []string{
	`null`,
	`nil`,
	``,
	`[]`,
	`true`,
	`{}`,
	`{"dcn": 1234, "pos": "header"}`,
	`{"dcn": "1234", "pos": 5}`,
	`{"dcn": "", "pos": "header"}`,
	`{"dcn": "1234", "pos": ""}`,
	`{"dcn": "1234"}`,
	`{"pos": "header"}`,
}
