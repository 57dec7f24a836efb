package persist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/reval-dev/reval/pkg/reval"
)

type cart struct {
	Items []string `json:"items"`
}

func TestKeepLoadsInitialSnapshot(t *testing.T) {
	store := NewMemStore()
	stored, _ := json.Marshal(cart{Items: []string{"apple"}})
	if err := store.Save(context.Background(), "cart", stored); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	c := reval.New[cart]()
	keeper, err := Keep(context.Background(), c, store, "cart",
		WithInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	defer keeper.Stop()

	v, ok := c.Get()
	if !ok || len(v.Items) != 1 || v.Items[0] != "apple" {
		t.Errorf("expected loaded cart, got (%+v, %v)", v, ok)
	}
}

func TestKeepSavesAfterQuietPeriod(t *testing.T) {
	store := NewMemStore()
	c := reval.New[cart]()

	keeper, err := Keep(context.Background(), c, store, "cart",
		WithInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	defer keeper.Stop()

	c.Set(cart{Items: []string{"a"}})
	c.Set(cart{Items: []string{"a", "b"}})

	deadline := time.Now().Add(2 * time.Second)
	for {
		data, ok, err := store.Load(context.Background(), "cart")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if ok {
			var v cart
			if err := json.Unmarshal(data, &v); err != nil {
				t.Fatalf("stored snapshot is not JSON: %v", err)
			}
			if len(v.Items) == 2 {
				return // debounced save captured the last value
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot never saved")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestKeepStopEndsSaving(t *testing.T) {
	store := NewMemStore()
	c := reval.NewWith(cart{})

	keeper, err := Keep(context.Background(), c, store, "cart",
		WithInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}

	keeper.Stop()
	c.Set(cart{Items: []string{"late"}})
	time.Sleep(100 * time.Millisecond)

	data, ok, err := store.Load(context.Background(), "cart")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ok {
		var v cart
		_ = json.Unmarshal(data, &v)
		if len(v.Items) != 0 {
			t.Errorf("save after Stop leaked snapshot %+v", v)
		}
	}
}

func TestKeeperFlush(t *testing.T) {
	store := NewMemStore()
	c := reval.NewWith(cart{Items: []string{"now"}})

	keeper, err := Keep(context.Background(), c, store, "cart",
		WithInterval(time.Hour)) // debounce never fires in this test
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	defer keeper.Stop()

	if err := keeper.Flush(context.Background()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	data, ok, err := store.Load(context.Background(), "cart")
	if err != nil || !ok {
		t.Fatalf("expected flushed snapshot, got ok=%v err=%v", ok, err)
	}
	var v cart
	if err := json.Unmarshal(data, &v); err != nil || len(v.Items) != 1 {
		t.Errorf("unexpected snapshot %s", data)
	}
}

type failingStore struct {
	*MemStore
	fail bool
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte) error {
	if s.fail {
		return errors.New("save rejected")
	}
	return s.MemStore.Save(ctx, key, data)
}

func TestKeepReportsSaveErrors(t *testing.T) {
	store := &failingStore{MemStore: NewMemStore(), fail: true}
	c := reval.New[cart]()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	errs := make(chan error, 4)
	keeper, err := Keep(context.Background(), c, store, "cart",
		WithInterval(10*time.Millisecond),
		WithKeepLogger(quiet),
		WithOnError(func(err error) { errs <- err }))
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	defer keeper.Stop()

	c.Set(cart{Items: []string{"x"}})

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected a save error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("save error never reported")
	}
}

func TestKeepMissingSnapshotLeavesContainerAbsent(t *testing.T) {
	c := reval.New[cart]()

	keeper, err := Keep(context.Background(), c, NewMemStore(), "cart",
		WithInterval(time.Hour))
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	defer keeper.Stop()

	if _, ok := c.Get(); ok {
		t.Error("container should stay absent when no snapshot exists")
	}
}
