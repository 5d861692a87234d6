package liststream

import (
	"context"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Reader adapts a Stream to a synchronous iterator. It is the in-repo Sink:
// items are buffered on a channel sized to the stream's buffer configuration,
// and the underlying stream is pulled only when that buffer runs dry, so
// pages are fetched no faster than the caller consumes items.
//
// A Reader is not safe for concurrent use by multiple goroutines.
type Reader struct {
	stream *Stream
	items  chan listtypes.Item
	done   bool
	err    error
	closed bool
}

// NewReader creates a stream over the given bucket and returns its consuming
// side. The options are those accepted by New; WithBufferSize controls how
// many items may be buffered before production pauses.
func NewReader(
	lister listtypes.Lister,
	bucket string,
	opts ...listtypes.Option,
) (*Reader, error) {
	r := &Reader{}

	stream, err := New(lister, bucket, r, opts...)
	if err != nil {
		return nil, err
	}

	r.stream = stream
	r.items = make(chan listtypes.Item, stream.cfg.BufferSize)

	return r, nil
}

// Next returns the next item in listing order. When the buffer is empty it
// drives the underlying stream, which may fetch at most the pages needed to
// produce one more item.
//
// Returns:
//   - the next item
//   - ErrStreamEnded once the final page is exhausted
//   - ErrReaderClosed after Close
//   - the stream's terminal error after a provider failure
func (r *Reader) Next(ctx context.Context) (listtypes.Item, error) {
	for {
		if r.closed {
			return listtypes.Item{}, errors.ErrReaderClosed
		}

		select {
		case item := <-r.items:
			return item, nil
		default:
		}

		// Buffer drained: surface a terminal condition or produce more.
		if r.err != nil {
			return listtypes.Item{}, r.err
		}
		if r.done {
			return listtypes.Item{}, errors.ErrStreamEnded
		}
		if err := ctx.Err(); err != nil {
			return listtypes.Item{}, errors.NewBucketError("read", r.stream.bucket, err)
		}

		r.stream.Pull(ctx)
	}
}

// ReadAll drains the stream to termination and returns every remaining item.
// A provider failure returns the items read so far alongside the error.
func (r *Reader) ReadAll(ctx context.Context) ([]listtypes.Item, error) {
	var items []listtypes.Item

	for {
		item, err := r.Next(ctx)
		if err != nil {
			if errors.IsStreamEnded(err) {
				return items, nil
			}
			return items, err
		}
		items = append(items, item)
	}
}

// Close marks the reader closed: buffered items are discarded and later Next
// calls return ErrReaderClosed without pulling. Close never interrupts an
// in-flight fetch and is idempotent.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

// State returns the underlying stream's lifecycle state.
func (r *Reader) State() State {
	return r.stream.State()
}

// Err returns the underlying stream's terminal error, or nil.
func (r *Reader) Err() error {
	return r.stream.Err()
}

// Push buffers one item for Next and reports whether the buffer can accept
// another; a false return pauses production. Push is the stream's side of
// the pull protocol and is not meant to be called directly.
func (r *Reader) Push(item listtypes.Item) bool {
	r.items <- item
	return len(r.items) < cap(r.items)
}

// End records normal exhaustion of the stream.
func (r *Reader) End() {
	r.done = true
}

// Error records the stream's terminal failure.
func (r *Reader) Error(err error) {
	r.err = err
}

// Compile-time interface check.
var _ listtypes.Sink = (*Reader)(nil)
