// Package errors provides error types and handling for listing stream operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a stream operation error with context about the listing
// that failed. It wraps the underlying provider error with additional context
// for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "new", "fetch", "read")
	Op string

	// Bucket is the bucket being listed (if applicable)
	Bucket string

	// Prefix is the key prefix being listed (if applicable)
	Prefix string

	// Err is the underlying error from the listing provider or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Prefix != "" {
		return fmt.Sprintf("liststream.%s %s/%s: %v", e.Op, e.Bucket, e.Prefix, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("liststream.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Prefix != "" {
		return fmt.Sprintf("liststream.%s prefix %s: %v", e.Op, e.Prefix, e.Err)
	}
	return fmt.Sprintf("liststream.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithPrefix adds key-prefix context to an existing error.
func (e *Error) WithPrefix(prefix string) *Error {
	e.Prefix = prefix
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// Sentinel errors for common stream failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("liststream: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("liststream: invalid bucket name")

	// ErrInvalidPrefix indicates that the key prefix is invalid
	ErrInvalidPrefix = errors.New("liststream: invalid prefix")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("liststream: bucket not found")

	// ErrMissingNextToken indicates a truncated page arrived without a
	// continuation token, violating the listing provider contract
	ErrMissingNextToken = errors.New("liststream: truncated page missing continuation token")

	// ErrStreamEnded indicates the stream has emitted its final item
	ErrStreamEnded = errors.New("liststream: stream ended")

	// ErrReaderClosed indicates a read from a closed reader
	ErrReaderClosed = errors.New("liststream: reader closed")
)

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStreamEnded checks if an error indicates normal end-of-stream.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsStreamEnded(err error) bool {
	return errors.Is(err, ErrStreamEnded)
}

// IsReaderClosed checks if an error indicates a read from a closed reader.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsReaderClosed(err error) bool {
	return errors.Is(err, ErrReaderClosed)
}

// IsMissingNextToken checks if an error indicates a provider contract
// violation on pagination tokens.
func IsMissingNextToken(err error) bool {
	return errors.Is(err, ErrMissingNextToken)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}
