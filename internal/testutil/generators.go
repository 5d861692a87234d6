// Package testutil provides test data generators.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/stayradiated/s3-list-bucket-stream/listtypes"
)

// TestDataGenerator provides methods for generating test data.
type TestDataGenerator struct {
	rand *rand.Rand
}

// NewTestDataGenerator creates a new test data generator with a seeded random source.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateObjects generates a list of test object records with sequential
// keys and increasing modification times.
func (g *TestDataGenerator) GenerateObjects(count int, prefix string) []listtypes.Object {
	objects := make([]listtypes.Object, count)
	baseTime := time.Now().Add(-24 * time.Hour)

	for i := 0; i < count; i++ {
		key := fmt.Sprintf("%sobject-%04d.txt", prefix, i)
		size := int64(g.rand.Intn(1000000) + 1000) // 1KB to 1MB
		modified := baseTime.Add(time.Duration(i) * time.Minute)
		objects[i] = CreateTestObject(key, size, modified)
	}

	return objects
}

// GenerateKeys generates sequential object keys under the given prefix.
func (g *TestDataGenerator) GenerateKeys(count int, prefix string) []string {
	keys := make([]string, count)
	for i := 0; i < count; i++ {
		keys[i] = fmt.Sprintf("%sobject-%04d.txt", prefix, i)
	}
	return keys
}

// GenerateCommonPrefixes generates common prefixes for directory-like structures.
func (g *TestDataGenerator) GenerateCommonPrefixes(count int, base string) []string {
	prefixes := make([]string, count)

	for i := 0; i < count; i++ {
		prefixes[i] = fmt.Sprintf("%sdir%02d/", base, i)
	}

	return prefixes
}

// GeneratePages splits the given objects into a chain of pages of perPage
// objects each. Every page except the last is truncated and carries a
// continuation token; the last page is terminal.
func (g *TestDataGenerator) GeneratePages(objects []listtypes.Object, perPage int) []*listtypes.Page {
	if perPage <= 0 {
		perPage = listtypes.DefaultPageSize
	}

	var pages []*listtypes.Page
	for start := 0; start < len(objects); start += perPage {
		end := start + perPage
		if end > len(objects) {
			end = len(objects)
		}
		pages = append(pages, &listtypes.Page{
			Objects:  objects[start:end],
			KeyCount: end - start,
		})
	}
	if len(pages) == 0 {
		pages = append(pages, &listtypes.Page{})
	}

	for i := 0; i < len(pages)-1; i++ {
		pages[i].Truncated = true
		pages[i].NextToken = fmt.Sprintf("token-%04d", i+1)
	}

	return pages
}
