// Package testutil provides test sinks for consuming stream items.
package testutil

import (
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// CollectSink is a listtypes.Sink that accumulates pushed items in memory.
//
// When PauseAfter is positive, Push requests a pause after every
// PauseAfter-th item, which exercises the backpressure path: the stream
// must stop immediately and resume from the following item on the next
// pull.
type CollectSink struct {
	Items      []listtypes.Item
	Ended      bool
	EndCount   int
	Err        error
	ErrorCount int
	PauseAfter int
}

// Push appends the item and reports whether production should continue.
func (s *CollectSink) Push(item listtypes.Item) bool {
	s.Items = append(s.Items, item)
	if s.PauseAfter > 0 && len(s.Items)%s.PauseAfter == 0 {
		return false
	}
	return true
}

// End records normal termination.
func (s *CollectSink) End() {
	s.Ended = true
	s.EndCount++
}

// Error records a provider failure.
func (s *CollectSink) Error(err error) {
	s.Err = err
	s.ErrorCount++
}

// Keys returns the keys of all collected items in arrival order.
func (s *CollectSink) Keys() []string {
	keys := make([]string, len(s.Items))
	for i, item := range s.Items {
		keys[i] = item.Key
	}
	return keys
}
