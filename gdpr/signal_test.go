package gdpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalParse(t *testing.T) {
	tests := []struct {
		name           string
		rawSignal      string
		expectedSignal Signal
		expectedError  bool
	}{
		{name: "valid_0", rawSignal: "0", expectedSignal: SignalNo},
		{name: "valid_1", rawSignal: "1", expectedSignal: SignalYes},
		{name: "empty", rawSignal: "", expectedSignal: SignalAmbiguous},
		{name: "invalid_number", rawSignal: "2", expectedSignal: SignalAmbiguous, expectedError: true},
		{name: "invalid_text", rawSignal: "yes", expectedSignal: SignalAmbiguous, expectedError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			signal, err := SignalParse(test.rawSignal)

			assert.Equal(t, test.expectedSignal, signal)
			if test.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "1", SignalFromApplies(true).String())
	assert.Equal(t, "0", SignalFromApplies(false).String())
	assert.Equal(t, "", SignalAmbiguous.String())
}
