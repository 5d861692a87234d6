// Package testutil provides test helper functions.
package testutil

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// StringPtr returns a pointer to the given string.
// This is useful for AWS SDK inputs that require string pointers.
func StringPtr(s string) *string {
	return aws.String(s)
}

// Int64Ptr returns a pointer to the given int64.
// This is useful for AWS SDK inputs that require int64 pointers.
func Int64Ptr(i int64) *int64 {
	return aws.Int64(i)
}

// Int32Ptr returns a pointer to the given int32.
// This is useful for AWS SDK inputs that require int32 pointers.
func Int32Ptr(i int32) *int32 {
	return aws.Int32(i)
}

// BoolPtr returns a pointer to the given bool.
// This is useful for AWS SDK inputs that require bool pointers.
func BoolPtr(b bool) *bool {
	return aws.Bool(b)
}

// TimePtr returns a pointer to the given time.
// This is useful for AWS SDK outputs that return time pointers.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// GenerateTestKey generates a test object key with optional prefix.
// This helps ensure test isolation by using unique keys.
func GenerateTestKey(prefix string) string {
	timestamp := time.Now().UnixNano()
	random := rand.Int63n(100000)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%stest-object-%d-%d", prefix, timestamp, random)
}

// GenerateTestBucketName generates a valid test bucket name.
// Bucket names must be DNS-compliant and globally unique.
func GenerateTestBucketName(prefix string) string {
	timestamp := time.Now().Unix()
	random := rand.Int31n(10000)
	name := fmt.Sprintf("%s-%d-%d", prefix, timestamp, random)
	// Ensure DNS compliance
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// CalculateETag calculates the ETag for the given data.
// For non-multipart objects, this is the quoted hex MD5 of the content.
func CalculateETag(data []byte) string {
	h := md5.Sum(data)
	return fmt.Sprintf(`"%x"`, h)
}

// CreateTestObject creates a test object record.
// This is useful for scripting lister pages.
func CreateTestObject(key string, size int64, lastModified time.Time) listtypes.Object {
	return listtypes.Object{
		Key:          key,
		Size:         size,
		LastModified: lastModified,
		ETag:         fmt.Sprintf(`"%x"`, md5.Sum([]byte(key))),
		StorageClass: string(listtypes.StorageClassStandard),
	}
}

// CreatePage creates a test page holding the given objects.
// This is useful for scripting lister pages.
func CreatePage(objects []listtypes.Object, truncated bool, nextToken string) *listtypes.Page {
	return &listtypes.Page{
		Objects:   objects,
		Truncated: truncated,
		NextToken: nextToken,
		KeyCount:  len(objects),
	}
}

// KeyPage creates a test page holding objects with the given keys.
// Sizes and timestamps are synthesized per key.
func KeyPage(truncated bool, nextToken string, keys ...string) *listtypes.Page {
	objects := make([]listtypes.Object, len(keys))
	baseTime := time.Now().Add(-time.Hour)
	for i, key := range keys {
		objects[i] = CreateTestObject(key, int64(100*(i+1)), baseTime.Add(time.Duration(i)*time.Second))
	}
	return CreatePage(objects, truncated, nextToken)
}

// CreateTestS3Object creates a test AWS SDK object structure.
// This is useful for mocking ListObjectsV2 responses.
func CreateTestS3Object(key string, size int64, lastModified time.Time) types.Object {
	return types.Object{
		Key:          StringPtr(key),
		Size:         Int64Ptr(size),
		LastModified: TimePtr(lastModified),
		ETag:         StringPtr(fmt.Sprintf(`"%x"`, md5.Sum([]byte(key)))),
		StorageClass: types.ObjectStorageClassStandard,
	}
}

// CreateListObjectsV2Output creates a test ListObjectsV2Output structure.
// This is useful for mocking S3 list operations.
func CreateListObjectsV2Output(
	objects []types.Object, prefix, delimiter string, truncated bool,
) *s3.ListObjectsV2Output {
	output := &s3.ListObjectsV2Output{
		Contents:    objects,
		KeyCount:    Int32Ptr(int32(len(objects))),
		MaxKeys:     Int32Ptr(1000),
		Name:        StringPtr("test-bucket"),
		Prefix:      StringPtr(prefix),
		Delimiter:   StringPtr(delimiter),
		IsTruncated: BoolPtr(truncated),
	}
	if truncated && len(objects) > 0 {
		output.NextContinuationToken = StringPtr("next-token")
	}
	return output
}
