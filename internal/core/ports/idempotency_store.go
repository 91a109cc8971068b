package ports

import "context"

// IdempotencyStore maps a creator's Idempotency-Key to the blog it produced,
// so a retried create returns the original record.
type IdempotencyStore interface {
	// Reserve claims key for userID. When the key is already held, reserved
	// is false and blogID is the blog it produced, or empty while the first
	// request is still in flight.
	Reserve(ctx context.Context, userID, key string) (blogID string, reserved bool, err error)
	// Complete records the blog produced under a reserved key.
	Complete(ctx context.Context, userID, key, blogID string) error
	// Release drops a reservation whose create failed.
	Release(ctx context.Context, userID, key string) error
}
