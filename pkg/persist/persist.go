// Package persist keeps container state durable: it loads a container's
// initial value from a store at startup and saves JSON snapshots as the
// value changes, debounced so write bursts produce one save.
//
//	keeper, err := persist.Keep(ctx, cart, store, "cart/"+userID)
//	if err != nil { ... }
//	defer keeper.Stop()
package persist

import "context"

// Store is a byte-oriented key/value snapshot store.
type Store interface {
	// Load returns the stored snapshot for key, and whether one exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save stores the snapshot for key, replacing any previous one.
	Save(ctx context.Context, key string, data []byte) error
}
