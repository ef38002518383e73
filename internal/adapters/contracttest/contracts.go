package contracttest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	statestoreport "github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

type CleanupFunc = func()

type StateStoreFactory func(t *testing.T) (statestoreport.Store, CleanupFunc)

// RunStateStore checks the behaviour every statestore.Store backend must share.
func RunStateStore(t *testing.T, newStore StateStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Keys are unique per run so shared backends (postgres, redis) do not collide.
	key := "ride-storage-" + uuid.NewString()
	other := "ride-storage-" + uuid.NewString()

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get missing: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	doc := []byte(`{"state":{"rides":[],"passengerRideRequests":[],"currentUser":null},"version":8}`)
	if err := store.Set(ctx, key, doc); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got) != string(doc) {
		t.Fatalf("Get=%q, want %q", got, doc)
	}

	// Overwrite semantics.
	doc2 := []byte(`{"state":{"rides":[],"passengerRideRequests":[],"currentUser":null},"version":9}`)
	if err := store.Set(ctx, key, doc2); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, key)
	if err != nil || !ok || string(got) != string(doc2) {
		t.Fatalf("expected overwritten value, got ok=%v err=%v value=%q", ok, err, got)
	}

	// Keys are isolated.
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get other: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	// Empty values are stored, not treated as missing.
	if err := store.Set(ctx, other, []byte{}); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if got, ok, err := store.Get(ctx, other); err != nil || !ok || len(got) != 0 {
		t.Fatalf("Get empty: ok=%v err=%v len=%d", ok, err, len(got))
	}

	if err := store.Set(ctx, "", doc); !errors.Is(err, statestoreport.ErrEmptyKey) {
		t.Fatalf("Set empty key err=%v, want ErrEmptyKey", err)
	}
	if _, _, err := store.Get(ctx, ""); !errors.Is(err, statestoreport.ErrEmptyKey) {
		t.Fatalf("Get empty key err=%v, want ErrEmptyKey", err)
	}
}
