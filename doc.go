// Package liststream exposes the contents of an object-storage bucket as a
// pull-based sequential stream of items, transparently paging through the
// provider's listing API. Given a bucket and optional key prefix it produces
// every object key (or full metadata record) under that prefix, fetching
// pages lazily and only as fast as the consumer drains them.
//
// The stream follows the chain of continuation tokens from the first
// untokened request until a non-truncated page, respecting consumer
// backpressure: production pauses when the sink reports a full buffer and
// resumes exactly where it left off on the next pull, with no item skipped
// or repeated.
//
// Key features:
//   - Lazy page fetching driven entirely by consumer demand
//   - Cooperative backpressure via the Sink push contract
//   - Raw-key or full-metadata emission, fixed at construction
//   - Best-effort notifications: page received, prefix discovered,
//     paused, resumed, error
//   - Pluggable listing providers: AWS S3, Google Cloud Storage, MinIO,
//     and local filesystems
//
// Example usage:
//
//	lister, err := s3.New(ctx)
//	if err != nil {
//	    return err
//	}
//
//	reader, err := liststream.NewReader(lister, "my-bucket",
//	    liststream.WithPrefix("photos/"))
//	if err != nil {
//	    return err
//	}
//
//	for {
//	    item, err := reader.Next(ctx)
//	    if errors.IsStreamEnded(err) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(item.Key)
//	}
package liststream
