package metrics

import (
	"github.com/stretchr/testify/mock"

	"github.com/prebid/yahoossp-bid-adapter/openrtb_ext"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordAdapterRequests mock
func (me *MetricsEngineMock) RecordAdapterRequests(labels AdapterRequestLabels, requests int, droppedBids int) {
	me.Called(labels, requests, droppedBids)
}

// RecordAdapterBids mock
func (me *MetricsEngineMock) RecordAdapterBids(labels AdapterBidLabels, bids int, skippedSeatBids int) {
	me.Called(labels, bids, skippedSeatBids)
}

// RecordUserSyncs mock
func (me *MetricsEngineMock) RecordUserSyncs(adapter openrtb_ext.BidderName, syncType SyncType, count int) {
	me.Called(adapter, syncType, count)
}
