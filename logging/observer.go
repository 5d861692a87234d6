package logging

import (
	"github.com/rs/zerolog"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Observer logs stream lifecycle events through a zerolog logger.
// Attach it to a stream with the WithObserver option. Page fetches,
// groupings, and pause/resume transitions log at debug level; stream
// failures log at error level.
type Observer struct {
	logger zerolog.Logger
}

// NewObserver creates an observer that logs stream events.
func NewObserver(logger zerolog.Logger) *Observer {
	return &Observer{
		logger: logger,
	}
}

// PageReceived logs one successful page fetch.
func (o *Observer) PageReceived(req listtypes.ListRequest, page *listtypes.Page) {
	o.logger.Debug().
		Str("bucket", req.Bucket).
		Str("prefix", req.Prefix).
		Bool("continued", req.ContinuationToken != "").
		Int("objects", len(page.Objects)).
		Int("common_prefixes", len(page.CommonPrefixes)).
		Bool("truncated", page.Truncated).
		Msg("page received")
}

// PrefixDiscovered logs one common-prefix grouping.
func (o *Observer) PrefixDiscovered(prefix string) {
	o.logger.Debug().
		Str("common_prefix", prefix).
		Msg("prefix discovered")
}

// Paused logs a backpressure pause.
func (o *Observer) Paused() {
	o.logger.Debug().Msg("stream paused")
}

// Resumed logs a production restart.
func (o *Observer) Resumed() {
	o.logger.Debug().Msg("stream resumed")
}

// Error logs the stream's terminal failure.
func (o *Observer) Error(err error) {
	o.logger.Error().
		Err(err).
		Msg("stream failed")
}

// Compile-time interface check.
var _ listtypes.Observer = (*Observer)(nil)
