package store

import (
	"context"
	"fmt"
)

// Store is the durable key/value port the state managers persist through.
// Values are JSON-serialized blobs under fixed string keys; there is no
// transactionality, no versioning, and no schema migration.
type Store interface {
	// Save serializes value and writes it under key.
	Save(ctx context.Context, key string, value any) error
	// Load reads and deserializes the blob under key into dest. It reports
	// found=false when the key is absent; deserialization failures are
	// returned as errors for the caller to treat as absent.
	Load(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

const keyPrefix = "insuvit"

func CartKey(owner string) string {
	return fmt.Sprintf("%s:cart:%s", keyPrefix, owner)
}

func WishlistKey(owner string) string {
	return fmt.Sprintf("%s:wishlist:%s", keyPrefix, owner)
}

func SessionKey(owner string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, owner)
}
