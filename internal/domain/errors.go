package domain

import "errors"

var (
	// ErrInvalidInput is returned when required user input is empty or malformed
	ErrInvalidInput = errors.New("invalid request parameters")

	// ErrUpstreamRequest is returned when an AI or catalog HTTP call fails
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrUpstreamParse is returned when the AI reply is not valid JSON
	ErrUpstreamParse = errors.New("upstream response malformed")

	// ErrUpstreamEmpty is returned when the AI reply has no content
	ErrUpstreamEmpty = errors.New("upstream response empty")

	// ErrValidationFailed is returned when blocking validation rules fail
	ErrValidationFailed = errors.New("product failed validation")

	// ErrImportRejected is returned when the catalog rejects the listing
	// after all code-driven fallbacks were exhausted
	ErrImportRejected = errors.New("catalog rejected import")

	// ErrNotConfigured is returned before any network attempt when catalog
	// credentials are missing
	ErrNotConfigured = errors.New("catalog credentials not configured")

	// ErrRegistryMiss is returned when a key is not in the duplicate registry
	ErrRegistryMiss = errors.New("registry miss")

	// ErrRegistryUnavailable is returned when the registry backend is unreachable
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
