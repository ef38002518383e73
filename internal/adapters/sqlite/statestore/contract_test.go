package statestore

import (
	"path/filepath"
	"testing"

	"github.com/campus-rideshare/ride-core/internal/adapters/contracttest"
	statestoreport "github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

func TestContract_SQLiteStateStore(t *testing.T) {
	contracttest.RunStateStore(t, func(t *testing.T) (statestoreport.Store, func()) {
		t.Helper()
		s, err := Open(filepath.Join(t.TempDir(), "state.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return s, func() { _ = s.Close() }
	})
}
