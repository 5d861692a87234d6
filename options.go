// Package liststream provides functional options for configuring listing streams.
// These options follow the functional options pattern for clean, composable configuration.
package liststream

import (
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// WithPrefix restricts the stream to keys beginning with the given prefix.
// Default is empty, which lists the entire bucket.
func WithPrefix(prefix string) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		c.Prefix = prefix
	}
}

// WithFullMetadata selects what the stream emits: raw keys (false, the
// default) or full metadata records including size, modification time,
// ETag, and storage class.
func WithFullMetadata(full bool) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		c.FullMetadata = full
	}
}

// WithPageSize sets the page-size hint sent on every listing request.
// Default is 1000, the maximum accepted by the backing listing APIs.
func WithPageSize(size int32) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		if size > 0 {
			c.PageSize = size
		}
	}
}

// WithDelimiter groups keys sharing a common prefix up to the delimiter.
// Groupings surface through the prefix-discovered notification; grouped keys
// are not emitted individually.
func WithDelimiter(delimiter string) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		c.Delimiter = delimiter
	}
}

// WithStartAfter starts the listing after the given key. Applies to the
// first page only; continuation tokens take over from there.
func WithStartAfter(key string) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		c.StartAfter = key
	}
}

// WithRequestParams merges provider-specific parameters into every listing
// request. Repeated use merges maps; later values win per key. Pagination
// fields cannot be overridden through this mechanism.
func WithRequestParams(params map[string]string) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		if len(params) == 0 {
			return
		}
		if c.Extra == nil {
			c.Extra = make(map[string]string, len(params))
		}
		for k, v := range params {
			c.Extra[k] = v
		}
	}
}

// WithObserver registers a notification observer. May be repeated; observers
// are invoked synchronously in registration order.
func WithObserver(observer listtypes.Observer) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		if observer != nil {
			c.Observers = append(c.Observers, observer)
		}
	}
}

// WithBufferSize sets the Reader's buffered-item high-water mark: production
// pauses once this many items are waiting to be read. Default is 100.
func WithBufferSize(size int) listtypes.Option {
	return func(c *listtypes.StreamConfig) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}
