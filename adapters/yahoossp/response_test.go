package yahoossp

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/errortypes"
)

func makeBids(t *testing.T, statusCode int, body string) (*adapters.BidderResponse, []error) {
	t.Helper()
	bidder := newBidder(t, config.Adapter{})
	return bidder.MakeBids(&adapters.RequestData{}, &adapters.ResponseData{StatusCode: statusCode, Body: []byte(body)})
}

func TestMakeBids(t *testing.T) {
	bidResponse, errs := makeBids(t, http.StatusOK, `{
		"id": "auction",
		"seatbid": [{"bid": [{"impid": "X", "price": 0.09, "adm": "<div>ad</div>", "w": 728, "h": 90}]}]
	}`)

	assert.Empty(t, errs)
	require.NotNil(t, bidResponse)
	assert.Equal(t, "USD", bidResponse.Currency)
	assert.Equal(t, []*adapters.BidResult{{
		RequestID:  "X",
		Ad:         "<div>ad</div>",
		CPM:        0.09,
		Currency:   "USD",
		Width:      728,
		Height:     90,
		CreativeID: "0",
		DealID:     nil,
		NetRevenue: true,
		TTL:        3600,
	}}, bidResponse.Bids)
}

func TestMakeBidsFields(t *testing.T) {
	dealID := "deal-1"

	testCases := []struct {
		description string
		body        string
		expected    adapters.BidResult
	}{
		{
			description: "creative-deal-and-currency",
			body:        `{"cur": "EUR", "seatbid": [{"bid": [{"impid": "1", "price": 1.5, "crid": "creative-1", "dealid": "deal-1"}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1.5, Currency: "EUR", CreativeID: "creative-1", DealID: &dealID, NetRevenue: true, TTL: 3600},
		},
		{
			description: "numeric-creative-id",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "crid": 42}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1, Currency: "USD", CreativeID: "42", NetRevenue: true, TTL: 3600},
		},
		{
			description: "numeric-encp-replaces-price",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "ext": {"encp": 2.25}}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 2.25, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
		{
			description: "numeric-string-encp-replaces-price",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "ext": {"encp": "3.5"}}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 3.5, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
		{
			description: "encrypted-encp-keeps-price",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "ext": {"encp": "a8Fz0xK"}}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600, EncryptedCPM: "a8Fz0xK"},
		},
		{
			description: "zero-encp-keeps-price",
			body:        `{"seatbid": [{"bid": [{"impid": "X", "price": 0.09, "ext": {"encp": 0}}]}]}`,
			expected:    adapters.BidResult{RequestID: "X", CPM: 0.09, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
		{
			description: "empty-encp-keeps-price",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "ext": {"encp": ""}}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
		{
			description: "null-encp-keeps-price",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "ext": {"encp": null}}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
		{
			description: "empty-deal-id",
			body:        `{"seatbid": [{"bid": [{"impid": "1", "price": 1, "dealid": ""}]}]}`,
			expected:    adapters.BidResult{RequestID: "1", CPM: 1, Currency: "USD", CreativeID: "0", NetRevenue: true, TTL: 3600},
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			bidResponse, errs := makeBids(t, http.StatusOK, test.body)
			assert.Empty(t, errs)
			require.Len(t, bidResponse.Bids, 1)
			assert.Equal(t, &test.expected, bidResponse.Bids[0])
		})
	}
}

func TestMakeBidsFirstBidOfEachSeat(t *testing.T) {
	bidResponse, errs := makeBids(t, http.StatusOK, `{"seatbid": [
		{"bid": [{"impid": "1", "price": 1}, {"impid": "ignored", "price": 9}]},
		{"bid": []},
		{"seat": "no-bid"},
		{"bid": [{"impid": "2", "price": 2}]}
	]}`)

	require.Len(t, bidResponse.Bids, 2)
	assert.Equal(t, "1", bidResponse.Bids[0].RequestID)
	assert.Equal(t, "2", bidResponse.Bids[1].RequestID)

	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "seatbid 1 has no bid")
	assert.EqualError(t, errs[1], "seatbid 2 has no bid")
	for _, err := range errs {
		assert.Equal(t, errortypes.SkippedSeatBidWarningCode, errortypes.ReadCode(err))
	}
}

func TestMakeBidsEmpty(t *testing.T) {
	testCases := []struct {
		description  string
		statusCode   int
		body         string
		expectedCode int
		expectedErr  string
	}{
		{description: "no-content", statusCode: http.StatusNoContent},
		{description: "empty-body", statusCode: http.StatusOK, body: ""},
		{description: "missing-seatbid", statusCode: http.StatusOK, body: `{"id": "auction"}`},
		{description: "seatbid-not-an-array", statusCode: http.StatusOK, body: `{"seatbid": {}}`},
		{description: "empty-seatbid", statusCode: http.StatusOK, body: `{"seatbid": []}`},
		{
			description:  "server-error",
			statusCode:   http.StatusInternalServerError,
			body:         `{"seatbid": [{"bid": [{"impid": "1", "price": 1}]}]}`,
			expectedCode: errortypes.UnexpectedStatusCodeWarningCode,
			expectedErr:  "Unexpected status code: 500.",
		},
		{
			description:  "bad-request",
			statusCode:   http.StatusBadRequest,
			expectedCode: errortypes.UnexpectedStatusCodeWarningCode,
			expectedErr:  "Unexpected status code: 400.",
		},
		{
			description:  "not-an-object",
			statusCode:   http.StatusOK,
			body:         `[{"seatbid": []}]`,
			expectedCode: errortypes.MalformedResponseWarningCode,
			expectedErr:  "response body is not a JSON object",
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			bidResponse, errs := makeBids(t, test.statusCode, test.body)
			require.NotNil(t, bidResponse)
			assert.Empty(t, bidResponse.Bids)

			if test.expectedErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.EqualError(t, errs[0], test.expectedErr)
			assert.Equal(t, test.expectedCode, errortypes.ReadCode(errs[0]))
			assert.True(t, errortypes.IsWarning(errs[0]))
		})
	}
}

func TestMakeBidsNilResponse(t *testing.T) {
	bidder := newBidder(t, config.Adapter{})
	bidResponse, errs := bidder.MakeBids(&adapters.RequestData{}, nil)
	assert.Empty(t, errs)
	require.NotNil(t, bidResponse)
	assert.Empty(t, bidResponse.Bids)
}
