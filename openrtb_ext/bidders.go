package openrtb_ext

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed bidder-params/*.json
var bidderParamsFS embed.FS

const schemaDirectory = "bidder-params"

type BidderName string

const (
	BidderYahooSSP BidderName = "yahoossp"
)

var bidderMap = map[string]BidderName{
	"yahoossp": BidderYahooSSP,
}

// GetBidderName returns the BidderName for the given string, if it exists.
// The second argument is true if the name was valid, and false otherwise.
func GetBidderName(name string) (BidderName, bool) {
	bidderName, ok := bidderMap[strings.ToLower(name)]
	return bidderName, ok
}

func (name BidderName) String() string {
	return string(name)
}

// The BidderParamValidator is used to check the params of an ad unit against the bidder's JSON schema.
type BidderParamValidator interface {
	Validate(name BidderName, ext json.RawMessage) error
	// Schema returns the JSON schema used to perform validation.
	Schema(name BidderName) string
}

// NewBidderParamsValidator makes a BidderParamValidator from the schemas compiled into the binary.
func NewBidderParamsValidator() (BidderParamValidator, error) {
	sub, err := fs.Sub(bidderParamsFS, schemaDirectory)
	if err != nil {
		return nil, err
	}
	return NewBidderParamsValidatorFS(sub)
}

// NewBidderParamsValidatorFS makes a BidderParamValidator from the *.json files at the root of fsys.
// This will error if a file does not match a known BidderName or does not hold a valid schema.
func NewBidderParamsValidatorFS(fsys fs.FS) (BidderParamValidator, error) {
	fileNames, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("Failed to list JSON schemas. %v", err)
	}

	schemaContents := make(map[BidderName]string, len(fileNames))
	schemas := make(map[BidderName]*gojsonschema.Schema, len(fileNames))
	for _, fileName := range fileNames {
		bidderName := strings.TrimSuffix(fileName, ".json")
		if _, isValid := GetBidderName(bidderName); !isValid {
			return nil, fmt.Errorf("File %s does not match a valid BidderName.", fileName)
		}

		fileBytes, err := fs.ReadFile(fsys, fileName)
		if err != nil {
			return nil, fmt.Errorf("Failed to read file %s: %v", fileName, err)
		}

		loadedSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(fileBytes))
		if err != nil {
			return nil, fmt.Errorf("Failed to load json schema at %s: %v", fileName, err)
		}

		schemas[BidderName(bidderName)] = loadedSchema
		schemaContents[BidderName(bidderName)] = string(fileBytes)
	}

	return &bidderParamValidator{
		schemaContents: schemaContents,
		parsedSchemas:  schemas,
	}, nil
}

type bidderParamValidator struct {
	schemaContents map[BidderName]string
	parsedSchemas  map[BidderName]*gojsonschema.Schema
}

func (validator *bidderParamValidator) Validate(name BidderName, ext json.RawMessage) error {
	schema, ok := validator.parsedSchemas[name]
	if !ok {
		return fmt.Errorf("no schema registered for bidder %s", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(ext))
	if err != nil {
		return err
	}
	if !result.Valid() {
		errBuilder := bytes.NewBuffer(make([]byte, 0, 300))
		for i, err := range result.Errors() {
			if i > 0 {
				errBuilder.WriteString("; ")
			}
			errBuilder.WriteString(err.String())
		}
		return errors.New(errBuilder.String())
	}
	return nil
}

func (validator *bidderParamValidator) Schema(name BidderName) string {
	return validator.schemaContents[name]
}
