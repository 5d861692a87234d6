// Package s3 provides the Amazon S3 listing provider.
//
// The provider speaks ListObjectsV2: each page fetch maps one listing
// request onto a single API call and converts the response into the
// stream's page shape. Credentials come from the default AWS credential
// chain unless a custom configuration is supplied.
package s3

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/internal/validation"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// API defines the S3 operations the provider needs.
type API interface {
	ListObjectsV2(
		ctx context.Context,
		input *s3.ListObjectsV2Input,
		opts ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Client is a listing provider backed by Amazon S3, or any
// ListObjectsV2-compatible endpoint such as LocalStack.
type Client struct {
	api API
}

// New creates a new S3 listing provider with the provided options.
// It loads AWS credentials using the default credential chain and applies
// the specified configuration options.
//
// Example:
//
//	provider, err := s3.New(ctx,
//	    s3.WithRegion("us-west-2"),
//	    s3.WithMaxRetries(3),
//	)
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := Config{
		MaxRetries: 3, // Default retry count
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Start with the default AWS configuration or use the custom config
	var awsCfg aws.Config
	var err error

	if cfg.AWSConfig != nil {
		awsCfg = *cfg.AWSConfig
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewError("configure", err)
		}
	}

	// Apply region from options if specified, otherwise ensure a region is set
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1" // AWS default region
	}

	if cfg.MaxRetries > 0 {
		awsCfg.RetryMaxAttempts = cfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)

	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	// Path-style addressing is required by most S3-compatible endpoints
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if cfg.HTTPTimeout > 0 {
		httpClient := &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return &Client{
		api: s3.NewFromConfig(awsCfg, s3Opts...),
	}, nil
}

// NewWithAPI creates a provider with a custom S3 API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api API) *Client {
	return &Client{
		api: api,
	}
}

// ListPage fetches one page of the bucket listing.
//
// The bucket name is validated against S3 DNS rules before any API call.
// A continuation token, when present, supersedes the start-after key, which
// seeds the first page only.
func (c *Client) ListPage(ctx context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
	if err := validation.ValidateBucketName(req.Bucket); err != nil {
		return nil, err
	}

	output, err := c.api.ListObjectsV2(ctx, buildInput(req))
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	return convertOutput(output), nil
}

// buildInput maps a listing request onto a ListObjectsV2 call.
func buildInput(req listtypes.ListRequest) *s3.ListObjectsV2Input {
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > listtypes.MaxPageSize {
		pageSize = listtypes.MaxPageSize // Maximum allowed by S3
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(req.Bucket),
		Prefix:  aws.String(req.Prefix),
		MaxKeys: aws.Int32(pageSize),
	}

	if req.Delimiter != "" {
		input.Delimiter = aws.String(req.Delimiter)
	}

	if req.ContinuationToken != "" {
		input.ContinuationToken = aws.String(req.ContinuationToken)
	} else if req.StartAfter != "" {
		input.StartAfter = aws.String(req.StartAfter)
	}

	if req.Extra["fetch-owner"] == "true" {
		input.FetchOwner = aws.Bool(true)
	}
	if payer := req.Extra["request-payer"]; payer != "" {
		input.RequestPayer = types.RequestPayer(payer)
	}

	return input
}

// convertOutput converts a ListObjectsV2 response to the stream's page type.
func convertOutput(output *s3.ListObjectsV2Output) *listtypes.Page {
	page := &listtypes.Page{
		Objects:        make([]listtypes.Object, 0, len(output.Contents)),
		CommonPrefixes: make([]string, 0, len(output.CommonPrefixes)),
		Truncated:      aws.ToBool(output.IsTruncated),
		NextToken:      aws.ToString(output.NextContinuationToken),
		KeyCount:       int(aws.ToInt32(output.KeyCount)),
	}

	for _, obj := range output.Contents {
		page.Objects = append(page.Objects, listtypes.Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
			StorageClass: string(obj.StorageClass),
		})
	}

	for _, prefix := range output.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, aws.ToString(prefix.Prefix))
	}

	return page
}

// Compile-time interface check.
var _ listtypes.Lister = (*Client)(nil)
