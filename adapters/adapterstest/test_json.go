package adapterstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
)

// RunJSONBidderTest is a helper method intended to unit test Bidders' adapters.
// It requires that:
//
//  1. Bidders communicate with external servers over HTTP.
//  2. The HTTP request bodies are legal JSON.
//
// Although the project does not require it, we *highly* recommend that all Bidders write tests using this.
// Doing so will likely save you time in the long run, and catch some subtle bugs.
//
// This function will read all the files in rootDir/exemplary and rootDir/supplemental. It will
// run one test per file. The files should describe a testCase: the ad units and auction context
// handed to MakeRequests, the requests it must build, the responses the server gives back, and
// the bids MakeBids must produce from them. Optionally it describes the user syncs GetUserSyncs
// must extract from those responses.
//
// Files in "exemplary" should show typical behavior. Files in "supplemental" cover edge cases
// and malformed input.
func RunJSONBidderTest(t *testing.T, rootDir string, bidder adapters.Bidder) {
	runTests(t, filepath.Join(rootDir, "exemplary"), bidder, false)
	runTests(t, filepath.Join(rootDir, "supplemental"), bidder, true)
}

// runTests runs all the *.json files in a directory. If allowErrors is false, and one of the test files
// expects errors from the bidder, then the test will fail.
func runTests(t *testing.T, directory string, bidder adapters.Bidder, allowErrors bool) {
	t.Helper()
	if caseFiles, err := os.ReadDir(directory); err == nil {
		for _, caseFile := range caseFiles {
			if caseFile.IsDir() || filepath.Ext(caseFile.Name()) != ".json" {
				continue
			}
			fileName := filepath.Join(directory, caseFile.Name())
			caseData, err := loadFile(fileName)
			if err != nil {
				t.Fatalf("Failed to load contents of file %s: %v", fileName, err)
			}

			if !allowErrors && caseData.expectsErrors() {
				t.Fatalf("Exemplary test file %s must not expect errors.", fileName)
			}
			t.Run(caseFile.Name(), func(t *testing.T) {
				runTestCase(t, fileName, caseData, bidder)
			})
		}
	}
}

// loadFile reads and parses a file as a test case. If something goes wrong, it returns an error.
func loadFile(filename string) (*testCase, error) {
	caseData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file %s: %v", filename, err)
	}

	var tc testCase
	if err := json.Unmarshal(caseData, &tc); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal JSON from file: %v", err)
	}

	return &tc, nil
}

// runTestCase runs a single test case. It will make sure:
//
//   - That the Bidder does not return nil HTTP requests, bids, or errors inside their lists
//   - That the Bidder's HTTP calls match the test file's expectations.
//   - That the Bidder's Bids match the test file's expectations
//   - That the Bidder's errors match the test file's expectations
//   - That the Bidder's user syncs match the test file's expectations, when it declares them
func runTestCase(t *testing.T, filename string, tc *testCase, bidder adapters.Bidder) {
	requests, errs := bidder.MakeRequests(tc.BidRequest.Bids, tc.BidRequest.BidderRequest, &tc.RequestInfo)
	assertErrorList(t, fmt.Sprintf("%s: MakeRequests", filename), errs, tc.MakeRequestErrors)
	assertMakeRequestsOutput(t, filename, requests, tc.HttpCalls)

	var bidResponses []*adapters.BidderResponse
	var bidsErrs = make([]error, 0, len(tc.MakeBidsErrors))
	responses := make([]*adapters.ResponseData, 0, len(tc.HttpCalls))
	for i := 0; i < len(tc.HttpCalls); i++ {
		response := tc.HttpCalls[i].Response.ToResponseData(t)
		responses = append(responses, response)

		if i >= len(requests) {
			continue
		}
		bids, theseErrs := bidder.MakeBids(requests[i], response)
		bidsErrs = append(bidsErrs, theseErrs...)
		bidResponses = append(bidResponses, bids)
	}

	assertErrorList(t, fmt.Sprintf("%s: MakeBids", filename), bidsErrs, tc.MakeBidsErrors)

	for i := 0; i < len(tc.BidResponses); i++ {
		if i >= len(bidResponses) {
			t.Fatalf("%s: Expected %d bid responses but got %d", filename, len(tc.BidResponses), len(bidResponses))
		}
		assertBidResponse(t, fmt.Sprintf("%s: bidResponse[%d]", filename, i), bidResponses[i], tc.BidResponses[i])
	}

	if tc.UserSyncs != nil {
		userSyncs := bidder.GetUserSyncs(tc.SyncOptions, responses)
		assertJSONEqual(t, fmt.Sprintf("%s: userSyncs", filename), userSyncs, tc.UserSyncs)
	}
}

type testCase struct {
	BidRequest        mockBidRequest            `json:"mockBidRequest"`
	RequestInfo       adapters.ExtraRequestInfo `json:"requestInfo"`
	HttpCalls         []httpCall                `json:"httpCalls"`
	BidResponses      []expectedBidResponse     `json:"expectedBidResponses"`
	MakeRequestErrors []expectedError           `json:"expectedMakeRequestsErrors"`
	MakeBidsErrors    []expectedError           `json:"expectedMakeBidsErrors"`
	SyncOptions       adapters.SyncOptions      `json:"syncOptions"`
	UserSyncs         json.RawMessage           `json:"expectedUserSyncs,omitempty"`
}

type mockBidRequest struct {
	Bids          []adapters.AdUnitBid    `json:"bids"`
	BidderRequest *adapters.BidderRequest `json:"bidderRequest"`
}

type expectedError struct {
	Comparison string `json:"comparison"`
	Value      string `json:"value"`
}

func (tc *testCase) expectsErrors() bool {
	return len(tc.MakeRequestErrors) > 0 || len(tc.MakeBidsErrors) > 0
}

type httpCall struct {
	Request  httpRequest  `json:"expectedRequest"`
	Response httpResponse `json:"mockResponse"`
}

type httpRequest struct {
	Body            json.RawMessage `json:"body"`
	Uri             string          `json:"uri"`
	Method          string          `json:"method"`
	Headers         http.Header     `json:"headers"`
	WithCredentials *bool           `json:"withCredentials,omitempty"`
	ImpIDs          []string        `json:"impIDs"`
}

type httpResponse struct {
	Status  int             `json:"status"`
	Body    json.RawMessage `json:"body"`
	Headers http.Header     `json:"headers"`
}

func (resp *httpResponse) ToResponseData(t *testing.T) *adapters.ResponseData {
	return &adapters.ResponseData{
		StatusCode: resp.Status,
		Body:       resp.Body,
		Headers:    resp.Headers,
	}
}

type expectedBidResponse struct {
	Currency string          `json:"currency"`
	Bids     json.RawMessage `json:"bids"`
}

// assertErrorList compares the actual errors with the expected ones, either literally or by
// regular expression.
func assertErrorList(t *testing.T, description string, actual []error, expected []expectedError) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Fatalf("%s had wrong error count. Expected %d, got %d (%v)", description, len(expected), len(actual), actual)
	}
	for i := 0; i < len(actual); i++ {
		if expected[i].Comparison == "literal" {
			if expected[i].Value != actual[i].Error() {
				t.Errorf(`%s error[%d] had wrong message. Expected "%s", got "%s"`, description, i, expected[i].Value, actual[i].Error())
			}
		} else if expected[i].Comparison == "regex" {
			if matched, _ := regexp.MatchString(expected[i].Value, actual[i].Error()); !matched {
				t.Errorf(`%s error[%d] had wrong message. Expected match with regex "%s", got "%s"`, description, i, expected[i].Value, actual[i].Error())
			}
		} else {
			t.Fatalf(`invalid comparison type "%s"`, expected[i].Comparison)
		}
	}
}

func assertMakeRequestsOutput(t *testing.T, filename string, actual []*adapters.RequestData, expected []httpCall) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Fatalf("%s: MakeRequests had wrong request count. Expected %d, got %d", filename, len(expected), len(actual))
	}
	for i := 0; i < len(expected); i++ {
		if actual[i] == nil {
			t.Fatalf("%s: MakeRequests returned a nil request at index %d", filename, i)
		}
		diffHttpRequests(t, fmt.Sprintf("%s: httpRequest[%d]", filename, i), actual[i], &(expected[i].Request))
	}
}

// diffHttpRequests compares the actual HTTP request data to the expected one.
// It assumes that the request bodies are JSON
func diffHttpRequests(t *testing.T, description string, actual *adapters.RequestData, expected *httpRequest) {
	t.Helper()

	if expected.Uri != actual.Uri {
		t.Errorf(`%s had wrong uri. Expected "%s", got "%s"`, description, expected.Uri, actual.Uri)
	}
	if expected.Method != "" && expected.Method != actual.Method {
		t.Errorf(`%s had wrong method. Expected "%s", got "%s"`, description, expected.Method, actual.Method)
	}
	if expected.Headers != nil {
		assertJSONEqual(t, description+" headers", actual.Headers, expected.Headers)
	}
	if expected.WithCredentials != nil && *expected.WithCredentials != actual.WithCredentials {
		t.Errorf("%s had wrong withCredentials. Expected %t, got %t", description, *expected.WithCredentials, actual.WithCredentials)
	}
	if expected.ImpIDs != nil {
		assertJSONEqual(t, description+" impIDs", actual.ImpIDs, expected.ImpIDs)
	}

	diffJson(t, description, actual.Body, expected.Body)
}

func assertBidResponse(t *testing.T, description string, actual *adapters.BidderResponse, expected expectedBidResponse) {
	t.Helper()

	if actual == nil {
		t.Fatalf("%s: MakeBids returned a nil response", description)
	}
	if expected.Currency != "" && expected.Currency != actual.Currency {
		t.Errorf(`%s had wrong currency. Expected "%s", got "%s"`, description, expected.Currency, actual.Currency)
	}
	for i, bid := range actual.Bids {
		if bid == nil {
			t.Fatalf("%s: MakeBids returned a nil bid at index %d", description, i)
		}
	}
	assertJSONEqual(t, description+" bids", actual.Bids, expected.Bids)
}

// assertJSONEqual marshals actual and compares it as JSON with expected, which is either raw
// JSON or a value to marshal.
func assertJSONEqual(t *testing.T, description string, actual interface{}, expected interface{}) {
	t.Helper()

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("%s: failed to marshal actual value: %v", description, err)
	}

	expectedJSON, ok := expected.(json.RawMessage)
	if !ok {
		if expectedJSON, err = json.Marshal(expected); err != nil {
			t.Fatalf("%s: failed to marshal expected value: %v", description, err)
		}
	}
	diffJson(t, description, actualJSON, expectedJSON)
}

// diffJson compares two JSON byte arrays for structural equality. It will produce an error if either
// byte array is not actually JSON.
func diffJson(t *testing.T, description string, actual []byte, expected []byte) {
	t.Helper()

	if len(actual) == 0 && len(expected) == 0 {
		return
	}
	if len(actual) == 0 || len(expected) == 0 {
		t.Fatalf("%s json diff failed. Expected %d bytes in body, but got %d.", description, len(expected), len(actual))
	}
	var left, right interface{}
	if err := json.Unmarshal(actual, &left); err != nil {
		t.Fatalf("%s json diff failed. Actual value is not JSON: %v", description, err)
	}
	if err := json.Unmarshal(expected, &right); err != nil {
		t.Fatalf("%s json diff failed. Expected value is not JSON: %v", description, err)
	}

	// Arrays and scalars are wrapped so both sides compare as objects.
	leftObject, leftIsObject := left.(map[string]interface{})
	rightObject, rightIsObject := right.(map[string]interface{})
	if !leftIsObject || !rightIsObject {
		leftObject = map[string]interface{}{"value": left}
		rightObject = map[string]interface{}{"value": right}
	}

	diff := gojsondiff.New().CompareObjects(leftObject, rightObject)
	if diff.Modified() {
		printer := formatter.NewAsciiFormatter(leftObject, formatter.AsciiFormatterConfig{
			ShowArrayIndex: true,
		})
		output, err := printer.Format(diff)
		if err != nil {
			t.Errorf("%s did not match, but diff formatting failed. %v", description, err)
		} else {
			t.Errorf("%s json did not match expected.\n\n%s", description, output)
		}
	}
}
