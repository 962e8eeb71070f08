// Package common defines shared constants and sentinel errors used across
// the foodstore server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input errors. Detected before any storage is touched.
	ErrorValidation = errors.New("validation error")

	// Uniqueness errors. No write is performed.
	ErrorDuplicateEmail = errors.New("user already exists")

	// Storage errors. The previously committed collection is left intact.
	ErrorStorage           = errors.New("storage error")
	ErrorCorruptCollection = errors.New("corrupt collection")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")
)
