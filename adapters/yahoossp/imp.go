package yahoossp

import (
	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/adcom1"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
	"github.com/prebid/yahoossp-bid-adapter/util/defaultutil"
)

var (
	defaultBannerMimes = []string{"text/html", "text/javascript", "application/javascript", "image/jpg"}
	defaultVideoMimes  = []string{"video/mp4", "application/javascript"}
	// VPAID 1.0 and 2.0
	defaultVideoAPI = []adcom1.APIFramework{1, 2}
	// VAST 2.0 and VAST 2.0 Wrapper
	defaultVideoProtocols = []adcom1.MediaCreativeSubtype{2, 5}
)

const defaultVideoLinearity = adcom1.LinearityLinear

// buildImp turns an ad unit into an impression. The banner and video objects are added when the
// ad unit declares them and the mode allows them; an ad unit may carry both.
func buildImp(bid *adapters.AdUnitBid, params openrtb_ext.ExtImpYahooSSP, mode openrtb_ext.MediaTypeMode, prebidVersion string) impression {
	imp := impression{
		ID:    bid.BidID,
		TagID: params.Pos,
		Ext: impExt{
			Pos:           params.Pos,
			DfpAdUnitCode: bid.AdUnitCode,
			HB:            1,
			AdapterVer:    adapterVersion,
			PrebidVer:     prebidVersion,
		},
	}

	if bannerType := bid.MediaTypes.Banner; bannerType != nil && mode.Allows(openrtb_ext.BidTypeBanner) {
		imp.Banner = &banner{
			Mimes:  defaultutil.CoalesceSlice(bannerType.Mimes, defaultBannerMimes),
			Format: transformSizes(bid.Sizes),
			Pos:    bannerType.Pos,
		}
	}

	if videoType := bid.MediaTypes.Video; videoType != nil && mode.Allows(openrtb_ext.BidTypeVideo) {
		playerSize := getPlayerSize(videoType.PlayerSize)
		imp.Video = &video{
			Mimes:          defaultutil.CoalesceSlice(videoType.Mimes, defaultVideoMimes),
			W:              playerSize.W,
			H:              playerSize.H,
			MaxBitrate:     videoType.MaxBitrate,
			MaxDuration:    videoType.MaxDuration,
			MinDuration:    videoType.MinDuration,
			API:            defaultutil.CoalesceSlice(videoType.API, defaultVideoAPI),
			Delivery:       videoType.Delivery,
			Pos:            videoType.Pos,
			PlaybackMethod: videoType.PlaybackMethod,
			Placement:      videoType.Placement,
			Rewarded:       videoType.Rewarded,
			Linearity:      defaultutil.Coalesce(videoType.Linearity, defaultVideoLinearity),
			Protocols:      defaultutil.CoalesceSlice(videoType.Protocols, defaultVideoProtocols),
		}
	}

	return imp
}

// getPlayerSize reads the player size as a single [w, h] pair.
func getPlayerSize(playerSize []byte) format {
	value, dataType, _, err := jsonparser.Get(playerSize)
	if err != nil {
		return format{}
	}
	return getSize(value, dataType)
}
