// Package testutil provides test utilities and mocks for listing operations.
// This package is internal and should only be used for testing within the module.
package testutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// MockLister is a mock implementation of the listtypes.Lister interface.
// It records every request it receives and delegates to ListPageFunc when
// set. Without a ListPageFunc it behaves like an empty bucket.
type MockLister struct {
	ListPageFunc func(context.Context, listtypes.ListRequest) (*listtypes.Page, error)
	Requests     []listtypes.ListRequest
}

// ListPage mocks a single page fetch against the remote listing API.
func (m *MockLister) ListPage(ctx context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
	m.Requests = append(m.Requests, req)
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, req)
	}
	return &listtypes.Page{}, nil
}

// CallCount returns the number of ListPage invocations so far.
func (m *MockLister) CallCount() int {
	return len(m.Requests)
}

// Tokens returns the continuation token carried by each recorded request,
// in call order. The first fetch of a stream always carries an empty token.
func (m *MockLister) Tokens() []string {
	tokens := make([]string, len(m.Requests))
	for i, req := range m.Requests {
		tokens[i] = req.ContinuationToken
	}
	return tokens
}

// MockS3API is a mock implementation of the S3 provider's API interface.
// It allows customization of the ListObjectsV2 operation through a function
// field and records every input it receives.
type MockS3API struct {
	ListObjectsV2Func func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	Inputs            []*s3.ListObjectsV2Input
}

// ListObjectsV2 mocks the S3 ListObjectsV2 operation.
func (m *MockS3API) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	m.Inputs = append(m.Inputs, params)
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}
	return &s3.ListObjectsV2Output{}, nil
}
