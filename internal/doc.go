// Package internal contains private implementation details for the listing
// stream module. These packages are not intended for external use and may
// change without notice.
//
// The internal packages are organized as follows:
//   - pool: Memory management optimizations
//   - testutil: Test utilities, mocks, and the LocalStack harness
//   - validation: Input validation logic
package internal
