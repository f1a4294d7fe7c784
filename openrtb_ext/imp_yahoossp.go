package openrtb_ext

// ExtImpYahooSSP defines the contract for the Yahoo SSP bidder params of an ad unit.
type ExtImpYahooSSP struct {
	Dcn string `json:"dcn"`
	Pos string `json:"pos"`
}
