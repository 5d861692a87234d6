package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

func TestMockLister(t *testing.T) {
	t.Run("implements Lister interface", func(t *testing.T) {
		var _ listtypes.Lister = &MockLister{}
	})

	t.Run("records requests", func(t *testing.T) {
		mock := &MockLister{}

		_, err := mock.ListPage(context.Background(), listtypes.ListRequest{
			Bucket: "test-bucket",
			Prefix: "photos/",
		})
		require.NoError(t, err)
		_, err = mock.ListPage(context.Background(), listtypes.ListRequest{
			Bucket:            "test-bucket",
			ContinuationToken: "token-1",
		})
		require.NoError(t, err)

		assert.Equal(t, 2, mock.CallCount())
		assert.Equal(t, "photos/", mock.Requests[0].Prefix)
		assert.Equal(t, []string{"", "token-1"}, mock.Tokens())
	})

	t.Run("returns empty page when no function set", func(t *testing.T) {
		mock := &MockLister{}

		page, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "test-bucket"})

		require.NoError(t, err)
		require.NotNil(t, page)
		assert.Empty(t, page.Objects)
		assert.False(t, page.Truncated)
	})

	t.Run("delegates to custom function", func(t *testing.T) {
		mock := &MockLister{
			ListPageFunc: func(_ context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
				assert.Equal(t, "test-bucket", req.Bucket)
				return KeyPage(false, "", "a.txt"), nil
			},
		}

		page, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "test-bucket"})

		require.NoError(t, err)
		require.Len(t, page.Objects, 1)
		assert.Equal(t, "a.txt", page.Objects[0].Key)
	})
}

func TestMockBuilder(t *testing.T) {
	t.Run("serves scripted pages in order", func(t *testing.T) {
		mock := NewMockBuilder().WithPages(
			KeyPage(true, "token-1", "a.txt"),
			KeyPage(false, "", "b.txt"),
		).Build()

		page1, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		require.NoError(t, err)
		assert.Equal(t, "a.txt", page1.Objects[0].Key)
		assert.True(t, page1.Truncated)

		page2, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		require.NoError(t, err)
		assert.Equal(t, "b.txt", page2.Objects[0].Key)
		assert.False(t, page2.Truncated)
	})

	t.Run("fails fetches past the script", func(t *testing.T) {
		mock := NewMockBuilder().WithPages(KeyPage(false, "", "a.txt")).Build()

		_, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		require.NoError(t, err)

		_, err = mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected fetch")
	})

	t.Run("serves pages then an error", func(t *testing.T) {
		bang := fmt.Errorf("listing exploded")
		mock := NewMockBuilder().WithPagesThenError(bang,
			KeyPage(true, "token-1", "a.txt"),
		).Build()

		_, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		require.NoError(t, err)

		_, err = mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})
		assert.Equal(t, bang, err)
	})

	t.Run("builds mock with empty bucket", func(t *testing.T) {
		mock := NewMockBuilder().WithEmptyBucket().Build()

		page, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})

		require.NoError(t, err)
		assert.Equal(t, 0, page.KeyCount)
		assert.False(t, page.Truncated)
	})

	t.Run("builds mock with error", func(t *testing.T) {
		mock := NewMockBuilder().WithError(assert.AnError).Build()

		_, err := mock.ListPage(context.Background(), listtypes.ListRequest{Bucket: "b"})

		assert.Equal(t, assert.AnError, err)
	})
}

func TestRecordingObserver(t *testing.T) {
	t.Run("records events in order", func(t *testing.T) {
		obs := &RecordingObserver{}

		obs.Resumed()
		obs.PageReceived(listtypes.ListRequest{Bucket: "b"}, KeyPage(false, "", "a.txt"))
		obs.PrefixDiscovered("photos/")
		obs.Paused()
		obs.Error(assert.AnError)

		assert.True(t, obs.ResumeCalled)
		assert.True(t, obs.PageCalled)
		assert.True(t, obs.PrefixCalled)
		assert.True(t, obs.PausedCalled)
		assert.True(t, obs.ErrorCalled)
		assert.Equal(t, 1, obs.PageCount)
		assert.Equal(t, []string{"photos/"}, obs.Prefixes)
		assert.Equal(t, assert.AnError, obs.LastError)
		assert.Equal(t, []string{"resumed", "page:1", "prefix:photos/", "paused", "error"}, obs.Events)
	})

	t.Run("resets state", func(t *testing.T) {
		obs := &RecordingObserver{}
		obs.Resumed()
		obs.PageReceived(listtypes.ListRequest{}, KeyPage(false, ""))
		obs.Error(assert.AnError)

		obs.Reset()

		assert.False(t, obs.ResumeCalled)
		assert.False(t, obs.PageCalled)
		assert.False(t, obs.ErrorCalled)
		assert.Equal(t, 0, obs.PageCount)
		assert.Nil(t, obs.Pages)
		assert.Nil(t, obs.LastError)
		assert.Nil(t, obs.Events)
	})
}

func TestCollectSink(t *testing.T) {
	t.Run("collects items in arrival order", func(t *testing.T) {
		sink := &CollectSink{}

		assert.True(t, sink.Push(listtypes.Item{Key: "a.txt"}))
		assert.True(t, sink.Push(listtypes.Item{Key: "b.txt"}))
		sink.End()

		assert.Equal(t, []string{"a.txt", "b.txt"}, sink.Keys())
		assert.True(t, sink.Ended)
		assert.Equal(t, 1, sink.EndCount)
	})

	t.Run("requests pause after every Nth item", func(t *testing.T) {
		sink := &CollectSink{PauseAfter: 2}

		assert.True(t, sink.Push(listtypes.Item{Key: "a.txt"}))
		assert.False(t, sink.Push(listtypes.Item{Key: "b.txt"}))
		assert.True(t, sink.Push(listtypes.Item{Key: "c.txt"}))
		assert.False(t, sink.Push(listtypes.Item{Key: "d.txt"}))
	})

	t.Run("records errors", func(t *testing.T) {
		sink := &CollectSink{}

		sink.Error(assert.AnError)

		assert.Equal(t, assert.AnError, sink.Err)
		assert.Equal(t, 1, sink.ErrorCount)
	})
}

func TestHelpers(t *testing.T) {
	t.Run("generates test key", func(t *testing.T) {
		key1 := GenerateTestKey("prefix")
		assert.Contains(t, key1, "prefix/")
		assert.Contains(t, key1, "test-object-")

		key2 := GenerateTestKey("")
		assert.Contains(t, key2, "test-object-")
		assert.NotEqual(t, key1, key2)
	})

	t.Run("generates test bucket name", func(t *testing.T) {
		name := GenerateTestBucketName("test")
		assert.Contains(t, name, "test-")
		assert.LessOrEqual(t, len(name), 63)
		assert.Regexp(t, "^[a-z0-9][a-z0-9.-]*[a-z0-9]$", name)
	})

	t.Run("calculates ETag", func(t *testing.T) {
		data := []byte("test data")
		etag := CalculateETag(data)
		assert.NotEmpty(t, etag)
		// Should be hex with quotes
		assert.True(t, strings.HasPrefix(etag, `"`))
		assert.True(t, strings.HasSuffix(etag, `"`))
	})

	t.Run("creates test object", func(t *testing.T) {
		now := time.Now()
		obj := CreateTestObject("test-key", 1024, now)

		assert.Equal(t, "test-key", obj.Key)
		assert.Equal(t, int64(1024), obj.Size)
		assert.Equal(t, now, obj.LastModified)
		assert.NotEmpty(t, obj.ETag)
		assert.Equal(t, "STANDARD", obj.StorageClass)
	})

	t.Run("creates page", func(t *testing.T) {
		objects := []listtypes.Object{
			CreateTestObject("key1", 100, time.Now()),
			CreateTestObject("key2", 200, time.Now()),
		}

		page := CreatePage(objects, true, "token-1")

		assert.Len(t, page.Objects, 2)
		assert.True(t, page.Truncated)
		assert.Equal(t, "token-1", page.NextToken)
		assert.Equal(t, 2, page.KeyCount)
	})

	t.Run("creates key page", func(t *testing.T) {
		page := KeyPage(false, "", "a.txt", "b.txt")

		require.Len(t, page.Objects, 2)
		assert.Equal(t, "a.txt", page.Objects[0].Key)
		assert.Equal(t, "b.txt", page.Objects[1].Key)
		assert.False(t, page.Truncated)
		assert.Empty(t, page.NextToken)
	})

	t.Run("creates list objects output", func(t *testing.T) {
		objects := []types.Object{
			CreateTestS3Object("key1", 100, time.Now()),
			CreateTestS3Object("key2", 200, time.Now()),
		}

		output := CreateListObjectsV2Output(objects, "prefix/", "/", false)

		assert.Equal(t, "test-bucket", *output.Name)
		assert.Equal(t, "prefix/", *output.Prefix)
		assert.Equal(t, "/", *output.Delimiter)
		assert.Equal(t, int32(2), *output.KeyCount)
		assert.False(t, *output.IsTruncated)
		assert.Nil(t, output.NextContinuationToken)
	})

	t.Run("creates list objects output with truncation", func(t *testing.T) {
		objects := []types.Object{
			CreateTestS3Object("key1", 100, time.Now()),
		}

		output := CreateListObjectsV2Output(objects, "", "", true)

		assert.True(t, *output.IsTruncated)
		assert.NotNil(t, output.NextContinuationToken)
	})
}

func TestTestDataGenerator(t *testing.T) {
	gen := NewTestDataGenerator(12345)

	t.Run("generates objects", func(t *testing.T) {
		objects := gen.GenerateObjects(10, "prefix/")
		assert.Len(t, objects, 10)

		for i, obj := range objects {
			assert.Contains(t, obj.Key, "prefix/")
			assert.Contains(t, obj.Key, "object-")
			assert.Greater(t, obj.Size, int64(999))
			assert.Less(t, obj.Size, int64(1000001))

			if i > 0 {
				// Objects should have increasing timestamps
				assert.True(t, obj.LastModified.After(objects[i-1].LastModified))
			}
		}
	})

	t.Run("generates keys", func(t *testing.T) {
		keys := gen.GenerateKeys(3, "logs/")
		assert.Equal(t, []string{
			"logs/object-0000.txt",
			"logs/object-0001.txt",
			"logs/object-0002.txt",
		}, keys)
	})

	t.Run("generates common prefixes", func(t *testing.T) {
		prefixes := gen.GenerateCommonPrefixes(5, "base/")
		assert.Len(t, prefixes, 5)

		for i, prefix := range prefixes {
			assert.Contains(t, prefix, "base/")
			assert.Contains(t, prefix, "dir")
			assert.True(t, strings.HasSuffix(prefix, "/"))
			assert.Contains(t, prefix, fmt.Sprintf("%02d", i))
		}
	})

	t.Run("generates token-chained pages", func(t *testing.T) {
		objects := gen.GenerateObjects(5, "")
		pages := gen.GeneratePages(objects, 2)

		require.Len(t, pages, 3)
		assert.Len(t, pages[0].Objects, 2)
		assert.Len(t, pages[1].Objects, 2)
		assert.Len(t, pages[2].Objects, 1)

		assert.True(t, pages[0].Truncated)
		assert.Equal(t, "token-0001", pages[0].NextToken)
		assert.True(t, pages[1].Truncated)
		assert.Equal(t, "token-0002", pages[1].NextToken)
		assert.False(t, pages[2].Truncated)
		assert.Empty(t, pages[2].NextToken)
	})

	t.Run("generates a single empty page for no objects", func(t *testing.T) {
		pages := gen.GeneratePages(nil, 2)

		require.Len(t, pages, 1)
		assert.Empty(t, pages[0].Objects)
		assert.False(t, pages[0].Truncated)
	})
}
