package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id has no catalog row
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrFetchFailed is returned when a competitor page could not be retrieved
	ErrFetchFailed = errors.New("page fetch failed")

	// ErrEmptyPage is returned when a fetched page has no parseable markup
	ErrEmptyPage = errors.New("empty or unparseable page")
)
