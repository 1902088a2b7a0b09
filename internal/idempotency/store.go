// Package idempotency remembers the first response given to a client
// supplied Idempotency-Key so that retries replay it instead of acting twice.
package idempotency

import (
	"context"
	"time"
)

// Response is a finished HTTP response as it was sent. Fingerprint
// identifies the request body that produced it.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

// Store keeps one entry per key. An entry is either reserved (request in
// flight) or completed (Response available).
type Store interface {
	// Reserve claims key. It returns false when the key already exists.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Get returns the completed response for key, or nil when the key is
	// absent or still reserved.
	Get(ctx context.Context, key string) (*Response, error)

	Complete(ctx context.Context, key string, resp Response, ttl time.Duration) error

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}
