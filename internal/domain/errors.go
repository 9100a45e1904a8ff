package domain

import "errors"

var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNoAPIKey   = errors.New("no serper api key configured")
)

var (
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrNoContent   = errors.New("no extractable content")
)
