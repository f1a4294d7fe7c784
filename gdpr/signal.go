package gdpr

import (
	"strconv"

	"github.com/prebid/yahoossp-bid-adapter/errortypes"
)

type Signal int

const (
	SignalAmbiguous Signal = -1
	SignalNo        Signal = 0
	SignalYes       Signal = 1
)

var gdprSignalError = &errortypes.BadInput{Message: "GDPR signal should be integer 0 or 1"}

// SignalParse returns a parsed GDPR signal or a parse error.
func SignalParse(rawSignal string) (Signal, error) {
	if rawSignal == "" {
		return SignalAmbiguous, nil
	}

	i, err := strconv.Atoi(rawSignal)

	if err != nil || (i != 0 && i != 1) {
		return SignalAmbiguous, gdprSignalError
	}

	return Signal(i), nil
}

// SignalFromApplies maps the gdprApplies flag of a consent object onto a Signal.
func SignalFromApplies(gdprApplies bool) Signal {
	if gdprApplies {
		return SignalYes
	}
	return SignalNo
}

// String returns the signal as it is written to URLs: "1", "0" or "" when ambiguous.
func (s Signal) String() string {
	if s == SignalAmbiguous {
		return ""
	}
	return strconv.Itoa(int(s))
}
