// Package testutil provides test utilities for stream observation.
package testutil

import (
	"fmt"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// RecordingObserver is a mock implementation of listtypes.Observer for testing.
type RecordingObserver struct {
	PageCalled   bool
	PrefixCalled bool
	PausedCalled bool
	ResumeCalled bool
	ErrorCalled  bool
	PageCount    int
	PauseCount   int
	ResumeCount  int
	Pages        []*listtypes.Page
	Requests     []listtypes.ListRequest
	Prefixes     []string
	LastError    error
	Events       []string // For ordering assertions
}

// PageReceived records a fetched page together with the request that produced it.
func (r *RecordingObserver) PageReceived(req listtypes.ListRequest, page *listtypes.Page) {
	r.PageCalled = true
	r.PageCount++
	r.Requests = append(r.Requests, req)
	r.Pages = append(r.Pages, page)
	r.Events = append(r.Events, fmt.Sprintf("page:%d", r.PageCount))
}

// PrefixDiscovered records a common prefix grouping.
func (r *RecordingObserver) PrefixDiscovered(prefix string) {
	r.PrefixCalled = true
	r.Prefixes = append(r.Prefixes, prefix)
	r.Events = append(r.Events, "prefix:"+prefix)
}

// Paused records a backpressure pause.
func (r *RecordingObserver) Paused() {
	r.PausedCalled = true
	r.PauseCount++
	r.Events = append(r.Events, "paused")
}

// Resumed records production starting or restarting.
func (r *RecordingObserver) Resumed() {
	r.ResumeCalled = true
	r.ResumeCount++
	r.Events = append(r.Events, "resumed")
}

// Error records a provider failure.
func (r *RecordingObserver) Error(err error) {
	r.ErrorCalled = true
	r.LastError = err
	r.Events = append(r.Events, "error")
}

// Reset clears the recorded state.
func (r *RecordingObserver) Reset() {
	r.PageCalled = false
	r.PrefixCalled = false
	r.PausedCalled = false
	r.ResumeCalled = false
	r.ErrorCalled = false
	r.PageCount = 0
	r.PauseCount = 0
	r.ResumeCount = 0
	r.Pages = nil
	r.Requests = nil
	r.Prefixes = nil
	r.LastError = nil
	r.Events = nil
}
