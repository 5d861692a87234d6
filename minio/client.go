// Package minio provides the MinIO listing provider.
//
// The provider uses the core client's paged ListObjectsV2 call, which
// exposes continuation tokens directly instead of the high-level channel
// iterator. It works against MinIO and any other S3-compatible endpoint.
package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Config holds connection settings for a MinIO endpoint.
type Config struct {
	// Endpoint is the host:port of the MinIO server
	Endpoint string

	// AccessKey and SecretKey are the static credentials
	AccessKey string
	SecretKey string

	// Secure enables TLS
	Secure bool

	// Region is optional; MinIO defaults to us-east-1
	Region string
}

// Client is a listing provider backed by a MinIO endpoint.
type Client struct {
	core *minio.Core
}

// New creates a new MinIO listing provider.
//
// Example:
//
//	provider, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.NewError("configure", errors.ErrInvalidInput).
			WithMessage("endpoint cannot be empty")
	}

	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.NewError("configure", err)
	}

	return &Client{
		core: core,
	}, nil
}

// NewWithCore creates a provider around an existing core client.
// This is primarily used for testing or custom transport configuration.
func NewWithCore(core *minio.Core) *Client {
	return &Client{
		core: core,
	}
}

// ListPage fetches one page of the bucket listing.
//
// The core client's paged call does not accept a context; bound requests
// through the endpoint's transport configuration instead.
func (c *Client) ListPage(_ context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
	if req.Bucket == "" {
		return nil, errors.NewError("list", errors.ErrInvalidBucketName).
			WithMessage("bucket cannot be empty")
	}

	pageSize := int(req.PageSize)
	if pageSize <= 0 || pageSize > listtypes.MaxPageSize {
		pageSize = listtypes.MaxPageSize
	}

	// Start-after seeds the first page only; the token takes over after.
	startAfter := req.StartAfter
	if req.ContinuationToken != "" {
		startAfter = ""
	}

	result, err := c.core.ListObjectsV2(
		req.Bucket,
		req.Prefix,
		startAfter,
		req.ContinuationToken,
		req.Delimiter,
		pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	return convertResult(result), nil
}

// convertResult converts a bucket listing result to the stream's page type.
func convertResult(result minio.ListBucketV2Result) *listtypes.Page {
	page := &listtypes.Page{
		Objects:        make([]listtypes.Object, 0, len(result.Contents)),
		CommonPrefixes: make([]string, 0, len(result.CommonPrefixes)),
		Truncated:      result.IsTruncated,
		NextToken:      result.NextContinuationToken,
	}

	for _, obj := range result.Contents {
		page.Objects = append(page.Objects, listtypes.Object{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
			StorageClass: obj.StorageClass,
		})
	}

	for _, prefix := range result.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, prefix.Prefix)
	}

	page.KeyCount = len(page.Objects) + len(page.CommonPrefixes)

	return page
}

// Compile-time interface check.
var _ listtypes.Lister = (*Client)(nil)
