// Package minio provides the MinIO listing provider.
//
// End-to-end listing requires a running MinIO server and is covered by the
// integration tests; these tests exercise construction and result conversion.
package minio

import (
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
)

func TestNew(t *testing.T) {
	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := New(Config{
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		})

		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "endpoint cannot be empty")
	})

	t.Run("constructs a client without contacting the endpoint", func(t *testing.T) {
		client, err := New(Config{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Region:    "us-east-1",
		})

		require.NoError(t, err)
		require.NotNil(t, client)
		assert.NotNil(t, client.core)
	})

	t.Run("rejects a malformed endpoint", func(t *testing.T) {
		_, err := New(Config{
			Endpoint:  "http://host:port/extra",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		})

		require.Error(t, err)
	})
}

func TestConvertResult(t *testing.T) {
	modified := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("converts a full result", func(t *testing.T) {
		result := minio.ListBucketV2Result{
			Contents: []minio.ObjectInfo{
				{
					Key:          "photos/2023/beach.jpg",
					Size:         2048,
					LastModified: modified,
					ETag:         "abc123def456",
					StorageClass: "STANDARD",
				},
				{
					Key:          "photos/2023/sunset.jpg",
					Size:         4096,
					LastModified: modified.Add(time.Hour),
					ETag:         "789xyz000111",
					StorageClass: "REDUCED_REDUNDANCY",
				},
			},
			CommonPrefixes: []minio.CommonPrefix{
				{Prefix: "photos/2023/"},
				{Prefix: "photos/2024/"},
			},
			IsTruncated:           true,
			NextContinuationToken: "next-token",
		}

		page := convertResult(result)

		require.Len(t, page.Objects, 2)
		assert.Equal(t, "photos/2023/beach.jpg", page.Objects[0].Key)
		assert.Equal(t, int64(2048), page.Objects[0].Size)
		assert.Equal(t, modified, page.Objects[0].LastModified)
		assert.Equal(t, "abc123def456", page.Objects[0].ETag)
		assert.Equal(t, "STANDARD", page.Objects[0].StorageClass)
		assert.Equal(t, "REDUCED_REDUNDANCY", page.Objects[1].StorageClass)

		assert.Equal(t, []string{"photos/2023/", "photos/2024/"}, page.CommonPrefixes)
		assert.True(t, page.Truncated)
		assert.Equal(t, "next-token", page.NextToken)
		assert.Equal(t, 4, page.KeyCount)
	})

	t.Run("converts a final page", func(t *testing.T) {
		result := minio.ListBucketV2Result{
			Contents: []minio.ObjectInfo{
				{Key: "last.txt", Size: 10, LastModified: modified},
			},
			IsTruncated: false,
		}

		page := convertResult(result)

		require.Len(t, page.Objects, 1)
		assert.False(t, page.Truncated)
		assert.Empty(t, page.NextToken)
		assert.Equal(t, 1, page.KeyCount)
	})

	t.Run("converts an empty result", func(t *testing.T) {
		page := convertResult(minio.ListBucketV2Result{})

		assert.Empty(t, page.Objects)
		assert.Empty(t, page.CommonPrefixes)
		assert.False(t, page.Truncated)
		assert.Equal(t, 0, page.KeyCount)
	})
}
