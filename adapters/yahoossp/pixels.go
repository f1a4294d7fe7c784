package yahoossp

import (
	"regexp"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
)

var (
	// syncItemRegex matches an img or iframe tag name up to the first quoted src value after it.
	syncItemRegex = regexp.MustCompile(`(?i)(?:img|iframe)[\s\S]*?src\s*=\s*(?:"(.*?)"|'(.*?)')`)
	// syncTagNameRegex finds the tag name of a match: the first word followed by white space.
	syncTagNameRegex = regexp.MustCompile(`(\w*)\s`)
)

// GetUserSyncs reads the pixels markup of the first response.
func (a *adapter) GetUserSyncs(syncOptions adapters.SyncOptions, responses []*adapters.ResponseData) []adapters.UserSync {
	if len(responses) == 0 || responses[0] == nil || len(responses[0].Body) == 0 {
		return []adapters.UserSync{}
	}

	pixels, err := jsonparser.GetString(responses[0].Body, "ext", "pixels")
	if err != nil || pixels == "" {
		return []adapters.UserSync{}
	}

	return extractUserSyncURLs(syncOptions, pixels)
}

// extractUserSyncURLs returns the img and iframe sources of the markup in the order they appear,
// keeping only the kinds syncOptions allows.
func extractUserSyncURLs(syncOptions adapters.SyncOptions, pixels string) []adapters.UserSync {
	userSyncs := []adapters.UserSync{}

	for _, match := range syncItemRegex.FindAllStringSubmatch(pixels, -1) {
		tagName := syncTagNameRegex.FindStringSubmatch(match[0])
		if tagName == nil || tagName[1] == "" {
			continue
		}

		url := match[1]
		if url == "" {
			url = match[2]
		}
		if url == "" {
			continue
		}

		syncType := adapters.UserSyncIFrame
		if strings.EqualFold(tagName[1], "img") {
			syncType = adapters.UserSyncImage
		}

		if (syncType == adapters.UserSyncIFrame && !syncOptions.IFrameEnabled) ||
			(syncType == adapters.UserSyncImage && !syncOptions.PixelEnabled) {
			continue
		}

		userSyncs = append(userSyncs, adapters.UserSync{
			Type: syncType,
			URL:  url,
		})
	}

	return userSyncs
}
