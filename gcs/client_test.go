// Package gcs provides unit tests for the GCS listing provider's request
// and response mapping. End-to-end coverage requires real credentials and
// lives with the integration tests.
package gcs

import (
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name       string
		req        listtypes.ListRequest
		checkQuery func(*testing.T, *storage.Query)
	}{
		{
			name: "prefix and delimiter",
			req: listtypes.ListRequest{
				Bucket:    "test-bucket",
				Prefix:    "photos/",
				Delimiter: "/",
			},
			checkQuery: func(t *testing.T, q *storage.Query) {
				assert.Equal(t, "photos/", q.Prefix)
				assert.Equal(t, "/", q.Delimiter)
				assert.Empty(t, q.StartOffset)
			},
		},
		{
			name: "start after seeds the first page",
			req: listtypes.ListRequest{
				Bucket:     "test-bucket",
				StartAfter: "photos/0.jpg",
			},
			checkQuery: func(t *testing.T, q *storage.Query) {
				assert.Equal(t, "photos/0.jpg", q.StartOffset)
			},
		},
		{
			name: "continuation token supersedes start after",
			req: listtypes.ListRequest{
				Bucket:            "test-bucket",
				ContinuationToken: "page-token",
				StartAfter:        "photos/0.jpg",
			},
			checkQuery: func(t *testing.T, q *storage.Query) {
				assert.Empty(t, q.StartOffset)
			},
		},
		{
			name: "extra request parameters",
			req: listtypes.ListRequest{
				Bucket: "test-bucket",
				Extra: map[string]string{
					"versions":   "true",
					"match-glob": "**/*.jpg",
				},
			},
			checkQuery: func(t *testing.T, q *storage.Query) {
				assert.True(t, q.Versions)
				assert.Equal(t, "**/*.jpg", q.MatchGlob)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkQuery(t, buildQuery(tt.req))
		})
	}
}

func TestConvertAttrs(t *testing.T) {
	t.Run("maps objects and groupings", func(t *testing.T) {
		updated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		attrs := []*storage.ObjectAttrs{
			{
				Name:         "photos/1.jpg",
				Size:         2048,
				Updated:      updated,
				Etag:         "CJX2kvr=",
				StorageClass: "STANDARD",
			},
			{Prefix: "photos/2023/"},
			{Prefix: "photos/2024/"},
		}

		page := convertAttrs(listtypes.ListRequest{}, attrs, "next-page-token")

		require.Len(t, page.Objects, 1)
		obj := page.Objects[0]
		assert.Equal(t, "photos/1.jpg", obj.Key)
		assert.Equal(t, int64(2048), obj.Size)
		assert.Equal(t, updated, obj.LastModified)
		assert.Equal(t, "CJX2kvr=", obj.ETag)
		assert.Equal(t, "STANDARD", obj.StorageClass)

		assert.Equal(t, []string{"photos/2023/", "photos/2024/"}, page.CommonPrefixes)
		assert.True(t, page.Truncated)
		assert.Equal(t, "next-page-token", page.NextToken)
		assert.Equal(t, 3, page.KeyCount)
	})

	t.Run("empty token means final page", func(t *testing.T) {
		page := convertAttrs(listtypes.ListRequest{}, nil, "")

		assert.False(t, page.Truncated)
		assert.Empty(t, page.NextToken)
		assert.Equal(t, 0, page.KeyCount)
	})

	t.Run("drops the inclusive start offset boundary key", func(t *testing.T) {
		attrs := []*storage.ObjectAttrs{
			{Name: "photos/0.jpg", Size: 100},
			{Name: "photos/1.jpg", Size: 200},
		}

		page := convertAttrs(listtypes.ListRequest{StartAfter: "photos/0.jpg"}, attrs, "")

		require.Len(t, page.Objects, 1)
		assert.Equal(t, "photos/1.jpg", page.Objects[0].Key)
		assert.Equal(t, 1, page.KeyCount)
	})

	t.Run("skips nil entries", func(t *testing.T) {
		attrs := []*storage.ObjectAttrs{
			nil,
			{Name: "a.txt", Size: 1},
		}

		page := convertAttrs(listtypes.ListRequest{}, attrs, "")

		require.Len(t, page.Objects, 1)
		assert.Equal(t, "a.txt", page.Objects[0].Key)
	})
}
