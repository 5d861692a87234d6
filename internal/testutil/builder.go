// Package testutil provides a builder for scripting mock listers.
package testutil

import (
	"context"
	"fmt"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// MockBuilder provides a fluent interface for building MockLister instances.
type MockBuilder struct {
	lister *MockLister
}

// NewMockBuilder creates a new MockBuilder.
func NewMockBuilder() *MockBuilder {
	return &MockBuilder{
		lister: &MockLister{},
	}
}

// Build returns the configured MockLister.
func (b *MockBuilder) Build() *MockLister {
	return b.lister
}

// WithListPage configures the ListPage behavior directly.
func (b *MockBuilder) WithListPage(
	fn func(context.Context, listtypes.ListRequest) (*listtypes.Page, error),
) *MockBuilder {
	b.lister.ListPageFunc = fn
	return b
}

// WithPages configures the mock to serve the given pages in order, one per
// fetch. Fetching past the last scripted page is an error, which catches
// streams that keep requesting pages after a non-truncated response.
func (b *MockBuilder) WithPages(pages ...*listtypes.Page) *MockBuilder {
	call := 0
	b.lister.ListPageFunc = func(_ context.Context, _ listtypes.ListRequest) (*listtypes.Page, error) {
		if call >= len(pages) {
			return nil, fmt.Errorf("unexpected fetch %d: only %d pages scripted", call+1, len(pages))
		}
		page := pages[call]
		call++
		return page, nil
	}
	return b
}

// WithPagesThenError configures the mock to serve the given pages in order
// and fail the fetch that follows them.
func (b *MockBuilder) WithPagesThenError(err error, pages ...*listtypes.Page) *MockBuilder {
	call := 0
	b.lister.ListPageFunc = func(_ context.Context, _ listtypes.ListRequest) (*listtypes.Page, error) {
		if call >= len(pages) {
			return nil, err
		}
		page := pages[call]
		call++
		return page, nil
	}
	return b
}

// WithEmptyBucket configures the mock to return an empty, non-truncated
// listing regardless of the request.
func (b *MockBuilder) WithEmptyBucket() *MockBuilder {
	b.lister.ListPageFunc = func(_ context.Context, _ listtypes.ListRequest) (*listtypes.Page, error) {
		return &listtypes.Page{}, nil
	}
	return b
}

// WithError configures the mock to fail every fetch with the given error.
func (b *MockBuilder) WithError(err error) *MockBuilder {
	b.lister.ListPageFunc = func(_ context.Context, _ listtypes.ListRequest) (*listtypes.Page, error) {
		return nil, err
	}
	return b
}
