package macros

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
)

const validEndpointTemplate = "http://localhost/bidRequest?dcn={{.PublisherID}}"

func TestResolveMacros(t *testing.T) {
	endpointTemplate, _ := template.New("endpointTemplate").Parse(validEndpointTemplate)
	syncTemplate, _ := template.New("syncTemplate").Parse("https://sync.example.com/?gdpr={{.GDPR}}&gdpr_consent={{.GDPRConsent}}&us_privacy={{.USPrivacy}}")

	testCases := []struct {
		aTemplate *template.Template
		params    interface{}
		result    string
		hasError  bool
	}{
		{aTemplate: endpointTemplate, params: EndpointTemplateParams{PublisherID: "1"}, result: "http://localhost/bidRequest?dcn=1", hasError: false},
		{aTemplate: endpointTemplate, params: UserSyncTemplateParams{GDPR: "SomeGDPR", GDPRConsent: "SomeGDPRConsent"}, result: "", hasError: true},
		{aTemplate: syncTemplate, params: UserSyncTemplateParams{GDPR: "1", GDPRConsent: "BOPVK28OVJoTBABABAENBs-AAAAhuAKAANAAoACwAGgAPAAxAB", USPrivacy: "1NYN"}, result: "https://sync.example.com/?gdpr=1&gdpr_consent=BOPVK28OVJoTBABABAENBs-AAAAhuAKAANAAoACwAGgAPAAxAB&us_privacy=1NYN", hasError: false},
	}

	for _, test := range testCases {
		res, err := ResolveMacros(test.aTemplate, test.params)

		if test.hasError {
			assert.NotNil(t, err, "Error shouldn't be nil")
			assert.Empty(t, res, "Result should be empty")
		} else {
			assert.Nil(t, err, "Err should be nil")
			assert.Equal(t, test.result, res, "String after resolving macros should be %s", test.result)
		}
	}
}
