// Package listtypes provides shared type definitions for the listing stream module.
package listtypes

import (
	"context"
	"time"
)

// StorageClass represents the storage tier reported for a listed object.
type StorageClass string

// Predefined storage classes
const (
	// StorageClassStandard is the default storage class
	StorageClassStandard StorageClass = "STANDARD"

	// StorageClassReducedRedundancy provides reduced redundancy storage
	StorageClassReducedRedundancy StorageClass = "REDUCED_REDUNDANCY"

	// StorageClassStandardIA provides infrequent access storage
	StorageClassStandardIA StorageClass = "STANDARD_IA"

	// StorageClassOneZoneIA provides one zone infrequent access storage
	StorageClassOneZoneIA StorageClass = "ONEZONE_IA"

	// StorageClassIntelligentTiering provides intelligent tiering storage
	StorageClassIntelligentTiering StorageClass = "INTELLIGENT_TIERING"

	// StorageClassGlacier provides Glacier archival storage
	StorageClassGlacier StorageClass = "GLACIER"

	// StorageClassDeepArchive provides Deep Archive storage
	StorageClassDeepArchive StorageClass = "DEEP_ARCHIVE"

	// StorageClassGlacierIR provides Glacier Instant Retrieval storage
	StorageClassGlacierIR StorageClass = "GLACIER_IR"
)

// Object represents a listed object with its basic metadata.
type Object struct {
	// Key is the object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the entity tag (content hash) for the object
	ETag string

	// StorageClass is the storage tier the object is held in
	StorageClass string
}

// Item is a single value emitted by the stream.
// Key is always set. Object is nil unless the stream was constructed in
// full-metadata mode, in which case it carries the complete listing record.
type Item struct {
	// Key is the object key
	Key string

	// Object is the full metadata record (full-metadata mode only)
	Object *Object
}

// ListRequest describes one page request against a listing provider.
// It is immutable per call; ContinuationToken is the only field that changes
// between consecutive calls, carried over from the previous Page.
type ListRequest struct {
	// Bucket is the bucket being listed
	Bucket string

	// Prefix restricts the listing to keys beginning with this value
	Prefix string

	// ContinuationToken resumes a truncated listing. Empty on the first call.
	ContinuationToken string

	// PageSize is the maximum number of entries requested per page
	PageSize int32

	// Delimiter groups keys sharing a common prefix up to the delimiter
	Delimiter string

	// StartAfter starts the listing after this key (first page only)
	StartAfter string

	// Extra carries provider-specific request parameters merged into every call
	Extra map[string]string
}

// Page is one response from a listing provider.
type Page struct {
	// Objects contains the listed objects in provider order
	Objects []Object

	// CommonPrefixes contains delimiter groupings, in response order
	CommonPrefixes []string

	// Truncated indicates more entries exist beyond this page
	Truncated bool

	// NextToken continues a truncated listing. Set iff Truncated.
	NextToken string

	// KeyCount is the number of keys plus groupings in this page
	KeyCount int
}

// Lister is the listing-provider capability: request in, page of results out.
// Implementations must return a non-empty NextToken exactly when Truncated is
// set, and must accept that token verbatim on the following request.
type Lister interface {
	ListPage(ctx context.Context, req ListRequest) (*Page, error)
}

// Sink is the consumer side of the pull protocol. The stream calls Push for
// each item, End exactly once on normal exhaustion, or Error exactly once on
// a provider failure.
type Sink interface {
	// Push hands one item to the consumer. A false return signals that the
	// consumer's buffer is full and production must pause.
	Push(item Item) bool

	// End signals normal end-of-sequence
	End()

	// Error signals a terminal failure
	Error(err error)
}

// Observer receives best-effort stream notifications. Observers are invoked
// synchronously and must not block; stream correctness never depends on any
// observer being registered.
type Observer interface {
	// PageReceived is called after each successful page fetch
	PageReceived(req ListRequest, page *Page)

	// PrefixDiscovered is called once per common-prefix grouping, in response order
	PrefixDiscovered(prefix string)

	// Paused is called when backpressure stops the production loop
	Paused()

	// Resumed is called when a pull (re)starts the production loop
	Resumed()

	// Error is called once when the stream fails
	Error(err error)
}

// Configuration types for functional options

// Default and limit values applied by DefaultStreamConfig.
const (
	// DefaultPageSize is the page-size hint sent when none is configured
	DefaultPageSize = 1000

	// MaxPageSize is the largest page size accepted by the backing listing APIs
	MaxPageSize = 1000

	// DefaultBufferSize is the Reader's buffered-item high-water mark
	DefaultBufferSize = 100
)

// StreamConfig holds configuration for a listing stream.
type StreamConfig struct {
	Prefix       string
	FullMetadata bool
	PageSize     int32
	Delimiter    string
	StartAfter   string
	Extra        map[string]string
	Observers    []Observer
	BufferSize   int
}

// DefaultStreamConfig returns the configuration applied before any options.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PageSize:   DefaultPageSize,
		BufferSize: DefaultBufferSize,
	}
}

// Option is a functional option for configuring a listing stream.
type Option func(*StreamConfig)
