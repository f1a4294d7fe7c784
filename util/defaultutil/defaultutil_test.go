package defaultutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	testCases := []struct {
		description string
		candidates  []int64
		expected    int64
	}{
		{description: "no-candidates", candidates: nil, expected: 0},
		{description: "first-set", candidates: []int64{3, 1}, expected: 3},
		{description: "zero-is-unset", candidates: []int64{0, 1}, expected: 1},
		{description: "all-zero", candidates: []int64{0, 0}, expected: 0},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, Coalesce(test.candidates...))
		})
	}

	assert.Equal(t, "USD", Coalesce("", "USD"))
	assert.Equal(t, "EUR", Coalesce("EUR", "USD"))
}

func TestCoalesceSlice(t *testing.T) {
	def := []string{"video/mp4", "application/javascript"}

	assert.Equal(t, def, CoalesceSlice(nil, def))
	assert.Equal(t, []string{"video/webm"}, CoalesceSlice([]string{"video/webm"}, def))
	assert.Equal(t, []string{}, CoalesceSlice([]string{}, def), "explicitly empty lists are kept")
	assert.Nil(t, CoalesceSlice[string]())
}

func TestCoalescePtr(t *testing.T) {
	one, two := 1, 2

	assert.Equal(t, &one, CoalescePtr(nil, &one, &two))
	assert.Nil(t, CoalescePtr[int](nil, nil))
}
