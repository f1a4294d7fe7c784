package yahoossp

import (
	"testing"

	"github.com/buger/jsonparser"
	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"
)

func newFormat(w, h int64) format {
	return format{W: pointer.Int64(w), H: pointer.Int64(h)}
}

func TestTransformSizes(t *testing.T) {
	testCases := []struct {
		description string
		given       string
		expected    []format
	}{
		{
			description: "single-pair",
			given:       `[300, 250]`,
			expected:    []format{newFormat(300, 250)},
		},
		{
			description: "list-of-pairs",
			given:       `[[300, 250], [300, 600]]`,
			expected:    []format{newFormat(300, 250), newFormat(300, 600)},
		},
		{
			description: "out-of-range-width",
			given:       `[1e30, 2]`,
			expected:    []format{newFormat(1, 2)},
		},
		{
			description: "list-with-one-pair",
			given:       `[[728, 90]]`,
			expected:    []format{newFormat(728, 90)},
		},
		{
			description: "string-coordinates",
			given:       `["300", "250px"]`,
			expected:    []format{newFormat(300, 250)},
		},
		{
			description: "fractional-coordinates",
			given:       `[300.9, -250.5]`,
			expected:    []format{newFormat(300, -250)},
		},
		{
			description: "unparseable-coordinates",
			given:       `["abc", true]`,
			expected:    []format{{}},
		},
		{
			description: "mixed-list",
			given:       `[[300, 250], 5, [1]]`,
			expected:    []format{newFormat(300, 250), {}, {W: pointer.Int64(1)}},
		},
		{
			description: "flat-list-longer-than-pair",
			given:       `[300, 250, 600]`,
			expected:    []format{{}, {}, {}},
		},
		{
			description: "empty-list",
			given:       `[]`,
			expected:    []format{},
		},
		{
			description: "not-a-list",
			given:       `"300x250"`,
			expected:    []format{},
		},
		{
			description: "absent",
			given:       ``,
			expected:    []format{},
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, transformSizes([]byte(test.given)))
		})
	}
}

func TestParseInt(t *testing.T) {
	testCases := []struct {
		description string
		given       string
		expected    *int64
	}{
		{description: "integer", given: `300`, expected: pointer.Int64(300)},
		{description: "negative", given: `-5`, expected: pointer.Int64(-5)},
		{description: "float", given: `300.7`, expected: pointer.Int64(300)},
		{description: "string", given: `"300"`, expected: pointer.Int64(300)},
		{description: "string-with-suffix", given: `"300px"`, expected: pointer.Int64(300)},
		{description: "string-with-whitespace", given: `"  42 "`, expected: pointer.Int64(42)},
		{description: "string-signed", given: `"+7"`, expected: pointer.Int64(7)},
		{description: "string-hex", given: `"0x1F"`, expected: pointer.Int64(31)},
		{description: "string-empty", given: `""`, expected: nil},
		{description: "string-letters", given: `"abc"`, expected: nil},
		{description: "string-sign-only", given: `"-"`, expected: nil},
		{description: "exponent", given: `1e30`, expected: pointer.Int64(1)},
		{description: "exponent-fraction", given: `-2.5e25`, expected: pointer.Int64(-2)},
		{description: "tiny", given: `5e-7`, expected: pointer.Int64(5)},
		{description: "beyond-int64", given: `1e20`, expected: nil},
		{description: "array", given: `[640, 480]`, expected: pointer.Int64(640)},
		{description: "empty-array", given: `[]`, expected: nil},
		{description: "bool", given: `true`, expected: nil},
		{description: "null", given: `null`, expected: nil},
		{description: "object", given: `{"w": 1}`, expected: nil},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			value, dataType, _, err := jsonparser.Get([]byte(test.given))
			assert.NoError(t, err)
			assert.Equal(t, test.expected, parseInt(value, dataType))
		})
	}
}

func TestGetPlayerSize(t *testing.T) {
	assert.Equal(t, newFormat(640, 480), getPlayerSize([]byte(`[640, 480]`)))
	assert.Equal(t, format{W: pointer.Int64(640)}, getPlayerSize([]byte(`[[640, 480]]`)))
	assert.Equal(t, format{}, getPlayerSize(nil))
	assert.Equal(t, format{}, getPlayerSize([]byte(`"640x480"`)))
}
