// Package localfs provides a filesystem-backed listing provider.
//
// Buckets map to top-level directories and object keys to slash-separated
// file paths beneath them, so <root>/<bucket>/<key> holds the object's
// bytes. The provider is useful for tests and for tooling that treats a
// local directory tree as a bucket.
//
// Listings are computed fresh on every page fetch by walking the bucket
// directory, so concurrent writers may shift page boundaries between
// calls. Continuation tokens are the last key covered by the previous
// page and resume strictly after it.
package localfs

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/stayradiated/s3-list-bucket-stream/errors"
	"github.com/stayradiated/s3-list-bucket-stream/internal/pool"
	"github.com/stayradiated/s3-list-bucket-stream/internal/validation"
	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// Client is a listing provider backed by a local filesystem tree.
type Client struct {
	fsys   fs.Filesystem
	hashes bool
}

// Option configures a Client.
type Option func(*Client)

// WithoutContentHashes disables per-object content hashing. Listed objects
// then carry an empty ETag, which skips reading every object's bytes and
// makes large listings considerably cheaper.
func WithoutContentHashes() Option {
	return func(c *Client) {
		c.hashes = false
	}
}

// New creates a filesystem provider rooted at the given OS directory.
// Each immediate subdirectory of root acts as a bucket.
func New(root string, opts ...Option) *Client {
	return NewWithFilesystem(billy.NewOSFS(root), opts...)
}

// NewWithFilesystem creates a provider on top of an existing filesystem.
// This is primarily used for testing with an in-memory filesystem.
func NewWithFilesystem(fsys fs.Filesystem, opts ...Option) *Client {
	client := &Client{
		fsys:   fsys,
		hashes: true,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ListPage fetches one page of the bucket listing.
func (c *Client) ListPage(ctx context.Context, req listtypes.ListRequest) (*listtypes.Page, error) {
	if err := validation.ValidateBucketName(req.Bucket); err != nil {
		return nil, err
	}

	exists, err := c.fsys.Exists(req.Bucket)
	if err != nil {
		return nil, fmt.Errorf("stat bucket %s: %w", req.Bucket, err)
	}
	if !exists {
		return nil, errors.NewBucketError("list", req.Bucket, errors.ErrBucketNotFound)
	}

	keys, err := c.collectKeys(ctx, req.Bucket, req.Prefix)
	if err != nil {
		return nil, err
	}

	pageSize := int(req.PageSize)
	if pageSize <= 0 || pageSize > int(listtypes.MaxPageSize) {
		pageSize = int(listtypes.MaxPageSize)
	}

	// Start-after seeds the first page; the token takes over once paging.
	start := req.ContinuationToken
	if start == "" {
		start = req.StartAfter
	}

	return c.assemblePage(req, keys, start, pageSize)
}

// collectKeys walks the bucket directory and returns the sorted object keys
// matching the requested prefix.
func (c *Client) collectKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	err := c.fsys.Walk(bucket, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(bucket, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}

		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk bucket %s: %w", bucket, err)
	}

	sort.Strings(keys)

	return keys, nil
}

// assemblePage builds one page from the sorted key list, starting strictly
// after the start key. With a delimiter, keys sharing a group prefix roll
// up into a single common-prefix entry and count as one page slot, the way
// the remote listing APIs bill rolled-up keys.
func (c *Client) assemblePage(
	req listtypes.ListRequest,
	keys []string,
	start string,
	pageSize int,
) (*listtypes.Page, error) {
	idx := sort.SearchStrings(keys, start)
	if idx < len(keys) && keys[idx] == start {
		idx++
	}

	page := &listtypes.Page{}

	i := idx
	for i < len(keys) && len(page.Objects)+len(page.CommonPrefixes) < pageSize {
		key := keys[i]

		if group, ok := groupFor(key, req.Prefix, req.Delimiter); ok {
			page.CommonPrefixes = append(page.CommonPrefixes, group)
			// Sorted order keeps the group's keys contiguous; skip them
			// so the group is not resurfaced on the next page.
			for i+1 < len(keys) && strings.HasPrefix(keys[i+1], group) {
				i++
			}
		} else {
			obj, err := c.statObject(req.Bucket, key)
			if err != nil {
				return nil, err
			}
			page.Objects = append(page.Objects, obj)
		}

		i++
	}

	if i < len(keys) {
		page.Truncated = true
		page.NextToken = keys[i-1]
	}

	page.KeyCount = len(page.Objects) + len(page.CommonPrefixes)

	return page, nil
}

// statObject reads an object's file metadata, hashing its content unless
// hashing is disabled.
func (c *Client) statObject(bucket, key string) (listtypes.Object, error) {
	p := path.Join(bucket, key)

	info, err := c.fsys.Stat(p)
	if err != nil {
		return listtypes.Object{}, fmt.Errorf("stat object %s: %w", key, err)
	}

	obj := listtypes.Object{
		Key:          key,
		Size:         info.Size(),
		LastModified: info.ModTime().UTC(),
		StorageClass: string(listtypes.StorageClassStandard),
	}

	if c.hashes {
		etag, err := c.hashObject(p)
		if err != nil {
			return listtypes.Object{}, fmt.Errorf("hash object %s: %w", key, err)
		}
		obj.ETag = etag
	}

	return obj, nil
}

// hashObject computes the quoted hex MD5 of a file's content, matching the
// ETag format the remote listing APIs report for single-part objects.
func (c *Client) hashObject(p string) (string, error) {
	file, err := c.fsys.Open(p)
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := pool.GetHashBuffer()
	defer pool.PutHashBuffer(buf)

	hash := md5.New()
	if _, err := io.CopyBuffer(hash, file, buf); err != nil {
		return "", err
	}

	return fmt.Sprintf(`"%x"`, hash.Sum(nil)), nil
}

// groupFor reports the common-prefix group a key rolls up into, if the
// delimiter appears in the key after the listing prefix.
func groupFor(key, prefix, delimiter string) (string, bool) {
	if delimiter == "" {
		return "", false
	}

	remainder := strings.TrimPrefix(key, prefix)
	i := strings.Index(remainder, delimiter)
	if i < 0 {
		return "", false
	}

	return prefix + remainder[:i+len(delimiter)], true
}

// Compile-time interface check.
var _ listtypes.Lister = (*Client)(nil)
