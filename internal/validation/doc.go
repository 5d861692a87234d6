// Package validation provides centralized input validation logic.
// This includes bucket name validation and key-prefix validation.
//
// Inputs are validated before any listing call is issued so that malformed
// names fail fast instead of surfacing as provider errors mid-stream.
package validation
