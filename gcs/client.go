// Package gcs provides the Google Cloud Storage listing provider.
//
// The provider drives the objects-list API through the storage client's
// iterator, one pager page per listing request. Page tokens map directly
// onto the stream's continuation tokens.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Client is a listing provider backed by Google Cloud Storage.
type Client struct {
	client *storage.Client
}

// New creates a new GCS listing provider. Credentials come from Application
// Default Credentials unless overridden through client options.
//
// Example:
//
//	provider, err := gcs.New(ctx, option.WithCredentialsFile("key.json"))
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.NewError("configure", err)
	}

	return &Client{
		client: client,
	}, nil
}

// NewWithClient creates a provider around an existing storage client.
// The caller retains ownership; Close still closes the underlying client.
func NewWithClient(client *storage.Client) *Client {
	return &Client{
		client: client,
	}
}

// ListPage fetches one page of the bucket listing.
//
// GCS treats the start offset as inclusive where S3's start-after is
// exclusive; the boundary key is dropped from the result so both providers
// behave identically.
func (c *Client) ListPage(ctx context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
	if req.Bucket == "" {
		return nil, errors.NewError("list", errors.ErrInvalidBucketName).
			WithMessage("bucket cannot be empty")
	}

	pageSize := int(req.PageSize)
	if pageSize <= 0 || pageSize > listtypes.MaxPageSize {
		pageSize = listtypes.MaxPageSize
	}

	it := c.client.Bucket(req.Bucket).Objects(ctx, buildQuery(req))
	pager := iterator.NewPager(it, pageSize, req.ContinuationToken)

	var attrs []*storage.ObjectAttrs
	nextToken, err := pager.NextPage(&attrs)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	return convertAttrs(req, attrs, nextToken), nil
}

// Close closes the underlying storage client.
func (c *Client) Close() error {
	return c.client.Close()
}

// buildQuery maps a listing request onto an objects-list query.
func buildQuery(req listtypes.ListRequest) *storage.Query {
	query := &storage.Query{
		Prefix:    req.Prefix,
		Delimiter: req.Delimiter,
	}

	if req.ContinuationToken == "" && req.StartAfter != "" {
		query.StartOffset = req.StartAfter
	}

	if req.Extra["versions"] == "true" {
		query.Versions = true
	}
	if glob := req.Extra["match-glob"]; glob != "" {
		query.MatchGlob = glob
	}

	return query
}

// convertAttrs converts iterator results to the stream's page type.
// Entries carrying only a Prefix are delimiter groupings, not objects.
func convertAttrs(req listtypes.ListRequest, attrs []*storage.ObjectAttrs, nextToken string) *listtypes.Page {
	page := &listtypes.Page{
		Objects:        make([]listtypes.Object, 0, len(attrs)),
		CommonPrefixes: make([]string, 0),
		Truncated:      nextToken != "",
		NextToken:      nextToken,
	}

	for _, attr := range attrs {
		if attr == nil {
			continue
		}

		if attr.Prefix != "" {
			page.CommonPrefixes = append(page.CommonPrefixes, attr.Prefix)
			continue
		}

		if req.StartAfter != "" && attr.Name == req.StartAfter {
			// Inclusive start offset: drop the boundary key
			continue
		}

		page.Objects = append(page.Objects, listtypes.Object{
			Key:          attr.Name,
			Size:         attr.Size,
			LastModified: attr.Updated,
			ETag:         attr.Etag,
			StorageClass: attr.StorageClass,
		})
	}

	page.KeyCount = len(page.Objects) + len(page.CommonPrefixes)

	return page
}

// Compile-time interface check.
var _ listtypes.Lister = (*Client)(nil)
