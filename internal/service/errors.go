package service

import "errors"

// Service errors that callers check with errors.Is.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store and domain errors are wrapped with %w so their sentinels stay visible
// 3. The API layer maps errors to HTTP status codes
var (
	// ErrEmptyCollection is returned by sorted listing when there are no users.
	// API layer should map this to HTTP 404 Not Found.
	ErrEmptyCollection = errors.New("user collection is empty")
)
