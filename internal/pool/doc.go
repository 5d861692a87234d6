// Package pool provides memory management optimizations.
// This includes buffer pooling to reduce allocations when hashing listed
// object contents.
//
// The pool package keeps content hashing cheap for filesystem-backed
// listings, where every object's ETag is computed from its bytes.
package pool
