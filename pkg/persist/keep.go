package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/reval-dev/reval/pkg/reval"
)

// KeepConfig holds settings for a kept container.
type KeepConfig struct {
	// Interval is the debounce quiet period before a snapshot is saved.
	// Default: 1s.
	Interval time.Duration

	// Logger receives save failures. Default: slog.Default().
	Logger *slog.Logger

	// OnError additionally receives save failures when set.
	OnError func(error)
}

// KeepOption configures Keep.
type KeepOption func(*KeepConfig)

// WithInterval sets the debounce quiet period before saving.
func WithInterval(d time.Duration) KeepOption {
	return func(c *KeepConfig) {
		c.Interval = d
	}
}

// WithKeepLogger sets the logger for save failures.
func WithKeepLogger(logger *slog.Logger) KeepOption {
	return func(c *KeepConfig) {
		c.Logger = logger
	}
}

// WithOnError registers a callback for save failures.
func WithOnError(fn func(error)) KeepOption {
	return func(c *KeepConfig) {
		c.OnError = fn
	}
}

// Keeper manages the save pipeline for one kept container.
type Keeper struct {
	handle *reval.Handle
	flush  func(context.Context) error
}

// Keep makes a container durable under key. It first loads the stored JSON
// snapshot, if any, and writes it into the container (notifying observers
// like any write). It then watches the container through a debounce, saving
// a JSON snapshot once the value has been quiet for the configured interval;
// the current value is therefore snapshotted shortly after Keep starts.
//
// Load failures abort Keep. Save failures are logged and reported through
// the OnError option; saving continues on later changes.
func Keep[T any](ctx context.Context, c *reval.Container[T], store Store, key string, opts ...KeepOption) (*Keeper, error) {
	config := KeepConfig{
		Interval: time.Second,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	data, ok, err := store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("persist: decode %q: %w", key, err)
		}
		c.Set(v)
	}

	save := func(ctx context.Context, v T) error {
		snapshot, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("persist: encode %q: %w", key, err)
		}
		return store.Save(ctx, key, snapshot)
	}

	debounced := reval.Debounce(c, config.Interval)
	handle := debounced.Observe(func(v T, present bool) {
		if !present {
			return
		}
		if err := save(ctx, v); err != nil {
			config.Logger.Error("snapshot save failed", "key", key, "error", err)
			if config.OnError != nil {
				config.OnError(err)
			}
		}
	})

	return &Keeper{
		handle: handle,
		flush: func(ctx context.Context) error {
			v, present := c.Get()
			if !present {
				return nil
			}
			return save(ctx, v)
		},
	}, nil
}

// Flush saves the container's current value immediately, bypassing the
// debounce.
func (k *Keeper) Flush(ctx context.Context) error {
	return k.flush(ctx)
}

// Stop ends snapshot saving. The container itself is untouched; sever its
// remaining links with DisposeAll when tearing the whole chain down.
func (k *Keeper) Stop() {
	k.handle.Dispose()
}
