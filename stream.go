package liststream

import (
	"context"
	"sync"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/internal/validation"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Stream exposes the contents of a bucket as a pull-based sequential stream
// of items, transparently paging through the listing provider. Pages are
// fetched lazily, only as fast as the sink drains them, starting from no
// continuation token and following the chain of tokens until exhaustion.
//
// A Stream drives exactly one Sink for its lifetime. Construction performs
// no I/O; the first Pull issues the first page request.
type Stream struct {
	lister listtypes.Lister
	bucket string
	sink   listtypes.Sink
	cfg    listtypes.StreamConfig

	// runMu serializes production loops. TryLock at the single entry point
	// is the re-entrancy guard: at most one loop runs per instance.
	runMu sync.Mutex

	// mu guards state and err for readers outside the production loop.
	mu    sync.RWMutex
	state State
	err   error

	// Cursor: the held page and the index of the next item to emit.
	// Owned by the production loop; replaced wholesale on each fetch.
	page  *listtypes.Page
	index int
}

// New creates a stream over the given bucket backed by the listing provider.
// Items are delivered to sink; options configure prefix, page size, metadata
// mode, extra request parameters, and observers.
//
// Returns:
//   - *Stream ready for its first Pull
//   - error if an input is invalid; no listing call is made
func New(
	lister listtypes.Lister,
	bucket string,
	sink listtypes.Sink,
	opts ...listtypes.Option,
) (*Stream, error) {
	if lister == nil {
		return nil, errors.NewBucketError("new", bucket, errors.ErrInvalidInput).
			WithMessage("lister cannot be nil")
	}
	if sink == nil {
		return nil, errors.NewBucketError("new", bucket, errors.ErrInvalidInput).
			WithMessage("sink cannot be nil")
	}
	if bucket == "" {
		return nil, errors.NewError("new", errors.ErrInvalidBucketName).
			WithMessage("bucket cannot be empty")
	}

	cfg := listtypes.DefaultStreamConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validation.ValidatePrefix(cfg.Prefix); err != nil {
		return nil, err
	}
	if cfg.PageSize < 0 {
		return nil, errors.NewBucketError("new", bucket, errors.ErrInvalidInput).
			WithMessage("page size cannot be negative")
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = listtypes.DefaultPageSize
	}
	if cfg.PageSize > listtypes.MaxPageSize {
		cfg.PageSize = listtypes.MaxPageSize
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = listtypes.DefaultBufferSize
	}

	return &Stream{
		lister: lister,
		bucket: bucket,
		sink:   sink,
		cfg:    cfg,
		state:  StateIdle,
	}, nil
}

// Pull is the consumer's drain signal. If the stream is already producing,
// or has ended or failed, Pull is a no-op. Otherwise it enters the
// production loop, which emits items until the sink reports a full buffer,
// the final page is exhausted, or a page fetch fails.
//
// The provider call is the only suspension point; a canceled ctx surfaces
// as a provider failure on the in-flight fetch.
func (s *Stream) Pull(ctx context.Context) {
	if !s.runMu.TryLock() {
		// A production loop is already active
		return
	}
	defer s.runMu.Unlock()

	if s.State() != StateIdle {
		return
	}

	s.setState(StateRunning)
	s.notifyResumed()
	s.produce(ctx)
}

// State returns the stream's current lifecycle state.
func (s *Stream) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the terminal error after the stream has failed, or nil.
func (s *Stream) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Bucket returns the bucket the stream lists.
func (s *Stream) Bucket() string {
	return s.bucket
}

// Prefix returns the key prefix the stream lists under.
func (s *Stream) Prefix() string {
	return s.cfg.Prefix
}

// produce runs the production loop: emit the item under the cursor, advance,
// fetch the next page when the held one is exhausted, and stop on
// backpressure, normal termination, or failure.
func (s *Stream) produce(ctx context.Context) {
	for {
		if s.page == nil || s.index >= len(s.page.Objects) {
			if s.page != nil && !s.page.Truncated {
				// Sole normal termination path
				s.setState(StateEnded)
				s.sink.End()
				return
			}

			if err := s.fetch(ctx); err != nil {
				s.fail(err)
				return
			}
			continue
		}

		obj := s.page.Objects[s.index]
		s.index++

		if obj.Key == "" {
			// Malformed provider entry, skipped without emission
			continue
		}

		if !s.sink.Push(s.item(obj)) {
			s.setState(StateIdle)
			s.notifyPaused()
			return
		}
	}
}

// fetch requests the next page and installs it as the held response.
func (s *Stream) fetch(ctx context.Context) error {
	req := s.buildRequest()

	page, err := s.lister.ListPage(ctx, req)
	if err != nil {
		return errors.NewBucketError("fetch", s.bucket, err).WithPrefix(s.cfg.Prefix)
	}
	if page == nil {
		return errors.NewBucketError("fetch", s.bucket, errors.ErrInvalidInput).
			WithMessage("provider returned nil page")
	}
	if page.Truncated && page.NextToken == "" {
		return errors.NewBucketError("fetch", s.bucket, errors.ErrMissingNextToken)
	}

	s.page = page
	s.index = 0

	s.notifyPageReceived(req, page)
	for _, prefix := range page.CommonPrefixes {
		s.notifyPrefixDiscovered(prefix)
	}

	return nil
}

// buildRequest merges, in increasing precedence: default options, caller
// extras, and the current pagination fields. The continuation token comes
// from the previously held page and is absent on the first call.
func (s *Stream) buildRequest() listtypes.ListRequest {
	req := listtypes.ListRequest{
		PageSize: listtypes.DefaultPageSize,
	}

	// Caller-supplied configuration
	if s.cfg.PageSize > 0 {
		req.PageSize = s.cfg.PageSize
	}
	req.Delimiter = s.cfg.Delimiter
	req.StartAfter = s.cfg.StartAfter
	if len(s.cfg.Extra) > 0 {
		req.Extra = make(map[string]string, len(s.cfg.Extra))
		for k, v := range s.cfg.Extra {
			req.Extra[k] = v
		}
	}

	// Pagination fields always win
	req.Bucket = s.bucket
	req.Prefix = s.cfg.Prefix
	if s.page != nil {
		req.ContinuationToken = s.page.NextToken
	}

	return req
}

// item shapes one listed object for emission per the metadata mode.
func (s *Stream) item(obj listtypes.Object) listtypes.Item {
	if !s.cfg.FullMetadata {
		return listtypes.Item{Key: obj.Key}
	}
	record := obj
	return listtypes.Item{Key: obj.Key, Object: &record}
}

// fail moves the stream to its Failed absorbing state and surfaces the error
// once: first to observers, then to the sink.
func (s *Stream) fail(err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.err = err
	s.mu.Unlock()

	s.notifyError(err)
	s.sink.Error(err)
}

func (s *Stream) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Stream) notifyPageReceived(req listtypes.ListRequest, page *listtypes.Page) {
	for _, o := range s.cfg.Observers {
		o.PageReceived(req, page)
	}
}

func (s *Stream) notifyPrefixDiscovered(prefix string) {
	for _, o := range s.cfg.Observers {
		o.PrefixDiscovered(prefix)
	}
}

func (s *Stream) notifyPaused() {
	for _, o := range s.cfg.Observers {
		o.Paused()
	}
}

func (s *Stream) notifyResumed() {
	for _, o := range s.cfg.Observers {
		o.Resumed()
	}
}

func (s *Stream) notifyError(err error) {
	for _, o := range s.cfg.Observers {
		o.Error(err)
	}
}
