package config

import "errors"

var (
	ErrInvalidPort      = errors.New("config: invalid port")
	ErrUnknownDriver    = errors.New("config: unknown database driver")
	ErrMissingDatabase  = errors.New("config: database settings incomplete")
	ErrIncompleteMinio  = errors.New("config: minio settings incomplete")
	ErrInvalidRateLimit = errors.New("config: rate limit must not be negative")
	ErrEmptyAPIKey      = errors.New("config: empty API key")
)
