package rides

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/campus-rideshare/ride-core/internal/app/pricing"
	"github.com/campus-rideshare/ride-core/internal/domain"
	"github.com/campus-rideshare/ride-core/internal/observability"
	clockport "github.com/campus-rideshare/ride-core/internal/ports/out/clock"
	"github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

// Options configures a Store. The zero value is usable.
type Options struct {
	// StorageKey names the document in the backend. Defaults to DefaultStorageKey.
	StorageKey string
	// AutoAccept defaults to AutoAcceptDrivers(DefaultAutoAcceptDriver).
	AutoAccept AutoAcceptPolicy
	// Pricing quotes new ride requests. Defaults to pricing.DefaultCalculator.
	Pricing *pricing.Calculator
	// SeedLocation is the time zone demo departure times are laid out in.
	// Defaults to time.Local, the device's zone.
	SeedLocation *time.Location
	Logger       logrus.FieldLogger
}

// Store owns every ride, passenger request and the current user on this device.
//
// Each mutation computes a new State from the previous one, swaps it in, and
// then writes the whole document to the backend. A failed write is logged and
// does not undo the mutation. Mutations against unknown ids are no-ops and
// report false.
type Store struct {
	mu    sync.Mutex
	state State

	backend    statestore.Store
	clk        clockport.Clock
	key        string
	autoAccept AutoAcceptPolicy
	pricing    pricing.Calculator
	seedLoc    *time.Location
	log        logrus.FieldLogger

	newID func() string
}

// NewStore builds an empty store over backend. Call Init to load persisted state.
func NewStore(backend statestore.Store, clk clockport.Clock, opts Options) *Store {
	s := &Store{
		state:      emptyState(),
		backend:    backend,
		clk:        clk,
		key:        opts.StorageKey,
		autoAccept: opts.AutoAccept,
		pricing:    pricing.DefaultCalculator,
		seedLoc:    opts.SeedLocation,
		log:        opts.Logger,
		newID:      uuid.NewString,
	}
	if s.key == "" {
		s.key = DefaultStorageKey
	}
	if s.autoAccept == nil {
		s.autoAccept = AutoAcceptDrivers(DefaultAutoAcceptDriver)
	}
	if opts.Pricing != nil {
		s.pricing = *opts.Pricing
	}
	if s.seedLoc == nil {
		s.seedLoc = time.Local
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// SetNewIDForTest overrides id generation for deterministic tests.
// It should not be used in production code.
func (s *Store) SetNewIDForTest(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

// Init replaces the in-memory state with the persisted document. A missing
// document leaves the state empty. Malformed or stale documents are discarded
// and the empty state is written back. Only backend errors are returned.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load %q: %w", s.key, err)
	}
	if !ok {
		s.state = emptyState()
		return nil
	}

	st, version, outcome := decodeDocument(data)
	s.state = st
	entry := s.log.WithFields(logrus.Fields{"key": s.key, "storedVersion": version, "schemaVersion": SchemaVersion})
	switch outcome {
	case loadOK:
		entry.WithField("rides", len(st.Rides)).Debug("state loaded")
		return nil
	case loadMigrated:
		observability.StateResetsTotal.WithLabelValues("stale_version").Inc()
		entry.Warn("persisted state is older than the schema, discarding")
	case loadMalformed:
		observability.StateResetsTotal.WithLabelValues("malformed").Inc()
		entry.Warn("persisted state is malformed, discarding")
	}
	if err := s.saveLocked(ctx); err != nil {
		return fmt.Errorf("rewrite %q: %w", s.key, err)
	}
	return nil
}

// Save writes the full state document to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := encodeDocument(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.backend.Set(ctx, s.key, data)
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// IsAutoAcceptDriver reports whether requests to driverName are accepted on creation.
func (s *Store) IsAutoAcceptDriver(driverName string) bool {
	return s.autoAccept(driverName)
}

// commitLocked installs next when changed and persists it. Persist failures
// are logged and counted, never returned.
func (s *Store) commitLocked(ctx context.Context, op string, next State, changed bool) {
	if !changed {
		observability.MutationsTotal.WithLabelValues(op, "noop").Inc()
		s.log.WithField("op", op).Debug("mutation had no effect")
		return
	}
	observability.MutationsTotal.WithLabelValues(op, "applied").Inc()
	s.state = next
	if err := s.saveLocked(ctx); err != nil {
		observability.PersistFailuresTotal.Inc()
		s.log.WithError(err).WithFields(logrus.Fields{"op": op, "key": s.key}).Error("persist state")
	}
}

func (s *Store) currentUserID() (domain.UserID, bool) {
	if s.state.CurrentUser == nil {
		return "", false
	}
	return s.state.CurrentUser.ID, true
}
