package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/prebid/yahoossp-bid-adapter/adapters"
	"github.com/prebid/yahoossp-bid-adapter/adapters/yahoossp"
	"github.com/prebid/yahoossp-bid-adapter/config"
	"github.com/prebid/yahoossp-bid-adapter/exchange"
	"github.com/prebid/yahoossp-bid-adapter/gdpr"
	metricsConf "github.com/prebid/yahoossp-bid-adapter/metrics/config"
	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
	"github.com/prebid/yahoossp-bid-adapter/usersync"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

func main() {
	auctionPath := flag.String("auction", "", "JSON file holding the ad units and auction context; the exchange requests built for it are written to stdout")
	cookieSyncFlag := flag.Bool("cookie_sync", false, "write the user sync of the bidder to stdout")
	gdprSignal := flag.String("gdpr", "", "gdpr signal of the cookie sync: 0, 1 or empty")
	gdprConsent := flag.String("gdpr_consent", "", "TCF consent string of the cookie sync")
	usPrivacy := flag.String("us_privacy", "", "US privacy string of the cookie sync")
	syncTypes := flag.String("sync_types", "", "comma separated sync types the device allows; defaults to the bidder's default type")
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	svc, err := setup(cfg)
	if err != nil {
		glog.Exitf("yahoossp adapter %s failed to start: %v", Rev, err)
	}

	if *cookieSyncFlag {
		req := cookieSyncRequest{GDPR: *gdprSignal, GDPRConsent: *gdprConsent, USPrivacy: *usPrivacy}
		if *syncTypes != "" {
			req.SyncTypes = strings.Split(*syncTypes, ",")
		}
		if err := cookieSync(svc.syncer, req, os.Stdout); err != nil {
			glog.Exitf("cookie sync failed: %v", err)
		}
	}

	if *auctionPath == "" {
		return
	}

	f, err := os.Open(*auctionPath)
	if err != nil {
		glog.Exitf("unable to open auction file: %v", err)
	}
	defer f.Close()

	if err := run(svc.bidder, f, os.Stdout); err != nil {
		glog.Exitf("auction failed: %v", err)
	}
}

const configFileName = "pbs"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v)
	v.SetConfigName(configFileName)
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return config.New(v)
}

type service struct {
	bidder adapters.Bidder
	syncer usersync.Syncer
}

// setup builds the bidder with its metrics and the cookie sync it serves.
func setup(cfg *config.Configuration) (*service, error) {
	bidderName := openrtb_ext.BidderYahooSSP
	infos, err := config.LoadBidderInfos(cfg.Adapters, []string{bidderName.String()})
	if err != nil {
		return nil, err
	}

	if _, ok := exchange.GetActiveBidders(infos)[bidderName.String()]; !ok {
		return nil, errors.New(exchange.GetDisabledBidderWarningMessages(infos)[bidderName.String()])
	}

	me := metricsConf.NewMetricsEngine(cfg, []openrtb_ext.BidderName{bidderName})
	bidders, errs := exchange.BuildAdapters(cfg, infos, me)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	adapterCfg, _ := cfg.Adapter(bidderName)
	syncer, err := yahoossp.NewSyncer(cfg, infos[bidderName.String()], adapterCfg)
	if err != nil {
		return nil, fmt.Errorf("user sync: %v", err)
	}
	glog.Infof("%s ready, cookie sync key %q", bidderName, syncer.Key())

	return &service{bidder: bidders[bidderName], syncer: syncer}, nil
}

type cookieSyncRequest struct {
	GDPR        string
	GDPRConsent string
	USPrivacy   string
	SyncTypes   []string
}

type cookieSyncResponse struct {
	Bidder      string            `json:"bidder"`
	URL         string            `json:"url"`
	Type        usersync.SyncType `json:"type"`
	SupportCORS bool              `json:"supportCORS,omitempty"`
}

// cookieSync writes the user sync the device should perform for the given privacy signals.
func cookieSync(syncer usersync.Syncer, req cookieSyncRequest, w io.Writer) error {
	signal, err := gdpr.SignalParse(req.GDPR)
	if err != nil {
		return err
	}

	syncTypes := make([]usersync.SyncType, 0, len(req.SyncTypes))
	for _, t := range req.SyncTypes {
		syncTypes = append(syncTypes, usersync.SyncTypeParse(strings.TrimSpace(t)))
	}
	if len(syncTypes) == 0 {
		syncTypes = append(syncTypes, syncer.DefaultSyncType())
	}
	if !syncer.SupportsType(syncTypes) {
		return fmt.Errorf("%s supports none of the sync types %v", syncer.Key(), req.SyncTypes)
	}

	sync, err := syncer.GetSync(syncTypes, usersync.Privacy{
		GDPR:        signal,
		GDPRConsent: req.GDPRConsent,
		USPrivacy:   req.USPrivacy,
	})
	if err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(cookieSyncResponse{
		Bidder:      syncer.Key(),
		URL:         sync.URL,
		Type:        sync.Type,
		SupportCORS: sync.SupportCORS,
	})
}

type auction struct {
	Bids          []adapters.AdUnitBid      `json:"bids"`
	BidderRequest *adapters.BidderRequest   `json:"bidderRequest"`
	RequestInfo   adapters.ExtraRequestInfo `json:"requestInfo"`
}

type outboundRequest struct {
	Method          string          `json:"method"`
	URI             string          `json:"uri"`
	Body            json.RawMessage `json:"body"`
	WithCredentials bool            `json:"withCredentials"`
	ImpIDs          []string        `json:"impIDs"`
}

// run builds the exchange requests of one auction and writes them to w.
func run(bidder adapters.Bidder, r io.Reader, w io.Writer) error {
	var a auction
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return fmt.Errorf("unable to read auction: %v", err)
	}

	requests, errs := bidder.MakeRequests(a.Bids, a.BidderRequest, &a.RequestInfo)
	for _, err := range errs {
		glog.Warningf("%v", err)
	}

	out := make([]outboundRequest, 0, len(requests))
	for _, request := range requests {
		out = append(out, outboundRequest{
			Method:          request.Method,
			URI:             request.Uri,
			Body:            request.Body,
			WithCredentials: request.WithCredentials,
			ImpIDs:          request.ImpIDs,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
