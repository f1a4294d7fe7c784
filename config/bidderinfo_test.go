package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

const testInfoFilesPath = "./test/bidder-info"
const testInvalidInfoFilesPath = "./test/bidder-info-invalid"

func TestLoadBidderInfoFS(t *testing.T) {
	trueValue := true
	adapterConfigs := map[string]Adapter{"yahoossp": {}}

	infos, err := LoadBidderInfoFS(os.DirFS(testInfoFilesPath), adapterConfigs, []string{"yahoossp"})
	require.NoError(t, err)

	expected := BidderInfos{
		"yahoossp": {
			Disabled: false,
			Maintainer: &MaintainerInfo{
				Email: "some-email@domain.com",
			},
			GVLVendorID: 42,
			Capabilities: &CapabilitiesInfo{
				Site: &PlatformInfo{
					MediaTypes: []openrtb_ext.BidType{openrtb_ext.BidTypeBanner, openrtb_ext.BidTypeVideo},
				},
			},
			Syncer: &Syncer{
				Key:     "foo",
				Default: "iframe",
				IFrame: &SyncerEndpoint{
					URL:         "https://foo.com/sync?mode=iframe&r={{.RedirectURL}}",
					RedirectURL: "{{.ExternalURL}}/setuid/iframe",
					ExternalURL: "https://iframe.host",
					UserMacro:   "%UID",
				},
				Redirect: &SyncerEndpoint{
					URL:         "https://foo.com/sync?mode=redirect&r={{.RedirectURL}}",
					RedirectURL: "{{.ExternalURL}}/setuid/redirect",
					ExternalURL: "https://redirect.host",
					UserMacro:   "#UID",
				},
				SupportCORS: &trueValue,
			},
		},
	}
	assert.Equal(t, expected, infos)
}

func TestLoadBidderInfoInvalid(t *testing.T) {
	expectedError := "error parsing yaml for bidder yahoossp.yaml: yaml: unmarshal errors:\n  line 3: cannot unmarshal !!str `42` into uint16"
	_, err := LoadBidderInfoFS(os.DirFS(testInvalidInfoFilesPath), nil, []string{"yahoossp"})
	assert.EqualError(t, err, expectedError, "incorrect error message returned while loading invalid bidder config")
}

func TestLoadBidderInfoMissingFile(t *testing.T) {
	_, err := LoadBidderInfoFS(os.DirFS(testInfoFilesPath), nil, []string{"unknown"})
	assert.Error(t, err)
}

func TestLoadBidderInfosEmbedded(t *testing.T) {
	infos, err := LoadBidderInfos(map[string]Adapter{"yahoossp": {}}, []string{"yahoossp"})
	require.NoError(t, err)

	info := infos["yahoossp"]
	assert.True(t, info.IsEnabled())
	assert.Equal(t, uint16(25), info.GVLVendorID)
	assert.True(t, info.SupportsMediaType(openrtb_ext.BidTypeBanner))
	assert.True(t, info.SupportsMediaType(openrtb_ext.BidTypeVideo))
	require.NotNil(t, info.Syncer)
	assert.Equal(t, "yahoossp", info.Syncer.Key)
	assert.Equal(t, "redirect", info.Syncer.Default)
	require.NotNil(t, info.Syncer.Redirect)
	assert.Equal(t, DefaultYahooSSPUserSyncURL, info.Syncer.Redirect.URL)
	assert.Nil(t, info.Syncer.IFrame)
}

func TestLoadBidderInfosDisabled(t *testing.T) {
	infos, err := LoadBidderInfos(map[string]Adapter{"yahoossp": {Disabled: true}}, []string{"yahoossp"})
	require.NoError(t, err)
	assert.False(t, infos["yahoossp"].IsEnabled())

	infos, err = LoadBidderInfos(nil, []string{"yahoossp"})
	require.NoError(t, err)
	assert.False(t, infos["yahoossp"].IsEnabled())
}

func TestSupportsMediaTypeWithoutCapabilities(t *testing.T) {
	assert.False(t, BidderInfo{}.SupportsMediaType(openrtb_ext.BidTypeBanner))
	assert.False(t, BidderInfo{Capabilities: &CapabilitiesInfo{}}.SupportsMediaType(openrtb_ext.BidTypeBanner))
}

func TestSyncerEndpointOverride(t *testing.T) {
	var nilEndpoint *SyncerEndpoint
	assert.Nil(t, nilEndpoint.Override(""))
	assert.Equal(t, &SyncerEndpoint{URL: "https://a.com"}, nilEndpoint.Override("https://a.com"))

	original := &SyncerEndpoint{URL: "https://original.com", UserMacro: "$UID"}
	assert.Equal(t, &SyncerEndpoint{URL: "https://override.com", UserMacro: "$UID"}, original.Override("https://override.com"))
	assert.Equal(t, original, original.Override(""))
	assert.Equal(t, "https://original.com", original.URL)
}

func TestToGVLVendorIDMap(t *testing.T) {
	givenBidderInfos := BidderInfos{
		"bidderA": BidderInfo{Disabled: false, GVLVendorID: 0},
		"bidderB": BidderInfo{Disabled: false, GVLVendorID: 100},
		"bidderC": BidderInfo{Disabled: true, GVLVendorID: 0},
		"bidderD": BidderInfo{Disabled: true, GVLVendorID: 200},
	}

	expectedGVLVendorIDMap := map[openrtb_ext.BidderName]uint16{
		"bidderB": 100,
	}

	assert.Equal(t, expectedGVLVendorIDMap, givenBidderInfos.ToGVLVendorIDMap())
}
