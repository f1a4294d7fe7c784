package errortypes

// BadInput marks an ad unit or auction that cannot be turned into an exchange request.
// It is fatal for the ad unit it names and is not written to the app log.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// Warning reports data that was dropped or ignored while building requests or reading the
// exchange response. Processing always continues past a Warning.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
