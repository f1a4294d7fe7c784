package openrtb_ext

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBidderName(t *testing.T) {
	name, ok := GetBidderName("yahoossp")
	assert.True(t, ok)
	assert.Equal(t, BidderYahooSSP, name)

	name, ok = GetBidderName("YahooSSP")
	assert.True(t, ok, "lookup is case insensitive")
	assert.Equal(t, BidderYahooSSP, name)

	_, ok = GetBidderName("verizonmedia")
	assert.False(t, ok)
}

func TestBidderParamSchemasAreEmbedded(t *testing.T) {
	validator, err := NewBidderParamsValidator()
	require.NoError(t, err)

	for _, bidderName := range bidderMap {
		assert.NotEmpty(t, validator.Schema(bidderName), "missing schema for %s", bidderName)
	}
}

func TestBidderParamsValidatorFSRejectsUnknownBidder(t *testing.T) {
	fsys := fstest.MapFS{
		"unknown.json": &fstest.MapFile{Data: []byte(`{"type":"object"}`)},
	}

	_, err := NewBidderParamsValidatorFS(fsys)
	assert.Error(t, err)
}

func TestBidderParamsValidatorFSRejectsBadSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"yahoossp.json": &fstest.MapFile{Data: []byte(`{"type": 12}`)},
	}

	_, err := NewBidderParamsValidatorFS(fsys)
	assert.Error(t, err)
}

func TestValidateUnknownBidder(t *testing.T) {
	validator, err := NewBidderParamsValidator()
	require.NoError(t, err)

	assert.Error(t, validator.Validate(BidderName("other"), json.RawMessage(`{}`)))
}
