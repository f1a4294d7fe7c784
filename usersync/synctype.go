package usersync

// SyncType specifies the mechanism used to perform a user sync.
type SyncType string

const (
	// SyncTypeUnknown specifies the user sync type is invalid or not specified.
	SyncTypeUnknown SyncType = ""

	// SyncTypeIFrame specifies the user sync is to be performed within an HTML iframe
	// and to expect the server to return a valid HTML page with an embedded script.
	SyncTypeIFrame SyncType = "iframe"

	// SyncTypeRedirect specifies the user sync is to be performed within an HTML image
	// and to expect the server to return a 302 redirect.
	SyncTypeRedirect SyncType = "redirect"
)

// SyncTypeParse returns the SyncType of a bidder-info default, or SyncTypeUnknown.
func SyncTypeParse(v string) SyncType {
	switch SyncType(v) {
	case SyncTypeIFrame:
		return SyncTypeIFrame
	case SyncTypeRedirect:
		return SyncTypeRedirect
	}
	return SyncTypeUnknown
}
