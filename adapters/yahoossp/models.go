package yahoossp

import (
	"github.com/prebid/openrtb/v20/adcom1"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/xorcare/pointer"
)

// openRTBRequest is the body posted to the exchange.
type openRTBRequest struct {
	ID     string           `json:"id"`
	Imp    []impression     `json:"imp"`
	Site   *openrtb2.Site   `json:"site"`
	Device *openrtb2.Device `json:"device"`
	Regs   *regs            `json:"regs"`
	Source *source          `json:"source"`
	User   *user            `json:"user"`
}

type impression struct {
	ID     string  `json:"id"`
	TagID  string  `json:"tagid"`
	Ext    impExt  `json:"ext"`
	Banner *banner `json:"banner,omitempty"`
	Video  *video  `json:"video,omitempty"`
}

type impExt struct {
	Pos           string `json:"pos"`
	DfpAdUnitCode string `json:"dfp_ad_unit_code"`
	HB            int8   `json:"hb"`
	AdapterVer    string `json:"adapterver"`
	PrebidVer     string `json:"prebidver"`
}

type banner struct {
	Mimes  []string                 `json:"mimes"`
	Format []format                 `json:"format"`
	Pos    adcom1.PlacementPosition `json:"pos,omitempty"`
}

// format is a size of the ad unit. A nil coordinate is one the publisher sent as something
// other than a number, and is written as null.
type format struct {
	W *int64 `json:"w"`
	H *int64 `json:"h"`
}

type video struct {
	Mimes          []string                      `json:"mimes"`
	W              *int64                        `json:"w"`
	H              *int64                        `json:"h"`
	MaxBitrate     int64                         `json:"maxbitrate,omitempty"`
	MaxDuration    int64                         `json:"maxduration,omitempty"`
	MinDuration    int64                         `json:"minduration,omitempty"`
	API            []adcom1.APIFramework         `json:"api"`
	Delivery       []adcom1.DeliveryMethod       `json:"delivery,omitempty"`
	Pos            adcom1.PlacementPosition      `json:"pos,omitempty"`
	PlaybackMethod []adcom1.PlaybackMethod       `json:"playbackmethod,omitempty"`
	Placement      adcom1.VideoPlacementSubtype  `json:"placement,omitempty"`
	Rewarded       int8                          `json:"rewarded,omitempty"`
	Linearity      adcom1.LinearityMode          `json:"linearity"`
	Protocols      []adcom1.MediaCreativeSubtype `json:"protocols"`
}

type regs struct {
	Ext regsExt `json:"ext"`
}

type regsExt struct {
	USPrivacy string `json:"us_privacy"`
	GDPR      int8   `json:"gdpr"`
}

type source struct {
	Ext sourceExt `json:"ext"`
	FD  int8      `json:"fd"`
}

type sourceExt struct {
	HB int8 `json:"hb"`
}

type user struct {
	Regs userRegs `json:"regs"`
	Ext  userExt  `json:"ext"`
}

type userRegs struct {
	GDPR userGDPR `json:"gdpr"`
}

type userGDPR struct {
	EUConsent string `json:"euconsent"`
}

type userExt struct {
	Eids []openrtb2.EID `json:"eids"`
}

// clone returns a copy of the request that shares no mutable state with r. The impression list
// of the copy is empty.
func (r *openRTBRequest) clone() *openRTBRequest {
	c := *r
	c.Imp = make([]impression, 0, 1)

	if r.Site != nil {
		site := *r.Site
		c.Site = &site
	}
	if r.Device != nil {
		device := *r.Device
		if r.Device.DNT != nil {
			device.DNT = pointer.Int8(*r.Device.DNT)
		}
		c.Device = &device
	}
	if r.Regs != nil {
		regs := *r.Regs
		c.Regs = &regs
	}
	if r.Source != nil {
		source := *r.Source
		c.Source = &source
	}
	if r.User != nil {
		user := *r.User
		user.Ext.Eids = cloneEids(r.User.Ext.Eids)
		c.User = &user
	}
	return &c
}

func cloneEids(eids []openrtb2.EID) []openrtb2.EID {
	if eids == nil {
		return nil
	}
	c := make([]openrtb2.EID, len(eids))
	for i, eid := range eids {
		c[i] = eid
		if eid.UIDs != nil {
			c[i].UIDs = append(make([]openrtb2.UID, 0, len(eid.UIDs)), eid.UIDs...)
		}
	}
	return c
}
