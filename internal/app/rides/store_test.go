package rides_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	memclock "github.com/campus-rideshare/ride-core/internal/adapters/memory/clock"
	memstatestore "github.com/campus-rideshare/ride-core/internal/adapters/memory/statestore"
	"github.com/campus-rideshare/ride-core/internal/app/rides"
	"github.com/campus-rideshare/ride-core/internal/domain"
	"github.com/campus-rideshare/ride-core/internal/observability"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func newTestStore(t *testing.T) (*rides.Store, *memstatestore.Store, *memclock.ManualClock) {
	t.Helper()
	backend := memstatestore.NewStore()
	clk := memclock.NewManualClock(t0)
	s := rides.NewStore(backend, clk, rides.Options{})
	s.SetNewIDForTest(sequentialIDs())
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s, backend, clk
}

func draft(driver string, seats int) rides.RideDraft {
	return rides.RideDraft{
		DriverID:      domain.UserID("drv-" + driver),
		DriverName:    driver,
		Destination:   "Western University - North Campus",
		DepartureTime: t0.Add(24 * time.Hour),
		TotalSeats:    seats,
	}
}

func requestDraft(rider domain.UserID) rides.RideRequestDraft {
	return rides.RideRequestDraft{
		RiderID:           rider,
		RiderName:         "Rider " + string(rider),
		PickupLocation:    "Masonville Place",
		PickupCoordinates: domain.Coordinate{Latitude: 43.0254, Longitude: -81.2810},
		CalculatedPrice:   4,
		DistanceKm:        1.8,
	}
}

func storedDocument(t *testing.T, backend *memstatestore.Store) (int, map[string]json.RawMessage) {
	t.Helper()
	data, ok, err := backend.Get(context.Background(), rides.DefaultStorageKey)
	if err != nil || !ok {
		t.Fatalf("stored document: ok=%v err=%v", ok, err)
	}
	var doc struct {
		State   map[string]json.RawMessage `json:"state"`
		Version int                        `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode stored document: %v", err)
	}
	return doc.Version, doc.State
}

func mustRide(t *testing.T, s *rides.Store, id domain.RideID) domain.Ride {
	t.Helper()
	r, ok := s.Ride(id)
	if !ok {
		t.Fatalf("ride %s not found", id)
	}
	return r
}

func TestStore_AddRide_PrependsActiveRide(t *testing.T) {
	t.Parallel()

	s, backend, _ := newTestStore(t)
	first := s.AddRide(context.Background(), draft("Mike Chen", 3))
	second := s.AddRide(context.Background(), draft("Emily Rodriguez", 2))

	snap := s.Snapshot()
	if len(snap.Rides) != 2 || snap.Rides[0].ID != second || snap.Rides[1].ID != first {
		t.Fatalf("rides=%+v", snap.Rides)
	}
	r := snap.Rides[1]
	if r.Status != domain.RideStatusActive || r.AvailableSeats != 3 || r.TotalSeats != 3 {
		t.Fatalf("ride=%+v", r)
	}
	if !r.CreatedAt.Equal(t0) || len(r.Requests) != 0 || len(r.AcceptedPassengers) != 0 {
		t.Fatalf("ride=%+v", r)
	}

	version, state := storedDocument(t, backend)
	if version != rides.SchemaVersion {
		t.Fatalf("version=%d", version)
	}
	for _, k := range []string{"rides", "passengerRideRequests", "currentUser"} {
		if _, ok := state[k]; !ok {
			t.Fatalf("stored state missing %q", k)
		}
	}
}

func TestStore_RequestRide_PendingForRegularDriver(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 3))
	clk.Advance(time.Minute)

	reqID, ok := s.RequestRide(context.Background(), rideID, requestDraft("u1"))
	if !ok || reqID == "" {
		t.Fatalf("RequestRide ok=%v id=%q", ok, reqID)
	}
	r := mustRide(t, s, rideID)
	if len(r.Requests) != 1 || len(r.AcceptedPassengers) != 0 || r.AvailableSeats != 3 {
		t.Fatalf("ride=%+v", r)
	}
	req := r.Requests[0]
	if req.ID != reqID || req.Status != domain.RequestStatusPending || !req.RequestedAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("request=%+v", req)
	}
}

func TestStore_RequestRide_AutoAcceptsSentinelDriver(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft(rides.DefaultAutoAcceptDriver, 1))

	a, ok := s.RequestRide(context.Background(), rideID, requestDraft("u1"))
	if !ok {
		t.Fatalf("first request failed")
	}
	r := mustRide(t, s, rideID)
	if r.AvailableSeats != 0 || len(r.AcceptedPassengers) != 1 || r.AcceptedPassengers[0].ID != a {
		t.Fatalf("ride=%+v", r)
	}
	if r.Requests[0].Status != domain.RequestStatusAccepted || r.AcceptedPassengers[0].Status != domain.RequestStatusAccepted {
		t.Fatalf("statuses=%s/%s", r.Requests[0].Status, r.AcceptedPassengers[0].Status)
	}

	// A full ride still takes the auto-accepted rider; seats stay floored at 0.
	if _, ok := s.RequestRide(context.Background(), rideID, requestDraft("u2")); !ok {
		t.Fatalf("second request failed")
	}
	r = mustRide(t, s, rideID)
	if r.AvailableSeats != 0 || len(r.AcceptedPassengers) != 2 {
		t.Fatalf("ride=%+v", r)
	}
}

func TestStore_CancelRequest_OverbookedRideStaysFull(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft(rides.DefaultAutoAcceptDriver, 1))
	first, _ := s.RequestRide(context.Background(), rideID, requestDraft("u1"))
	s.RequestRide(context.Background(), rideID, requestDraft("u2"))

	if !s.CancelRequest(context.Background(), rideID, first) {
		t.Fatalf("CancelRequest failed")
	}
	r := mustRide(t, s, rideID)
	if len(r.AcceptedPassengers) != 1 || r.AvailableSeats != 0 {
		t.Fatalf("total=%d accepted=%d available=%d", r.TotalSeats, len(r.AcceptedPassengers), r.AvailableSeats)
	}
	for _, avail := range s.AvailableRides() {
		if avail.ID == rideID {
			t.Fatalf("full ride listed as available")
		}
	}

	rest := r.AcceptedPassengers[0].ID
	s.CancelRequest(context.Background(), rideID, rest)
	r = mustRide(t, s, rideID)
	if r.AvailableSeats != 1 || len(r.AcceptedPassengers) != 0 {
		t.Fatalf("after last cancel available=%d accepted=%d", r.AvailableSeats, len(r.AcceptedPassengers))
	}
}

func TestStore_RequestRide_CustomPolicy(t *testing.T) {
	t.Parallel()

	s := rides.NewStore(memstatestore.NewStore(), memclock.NewManualClock(t0), rides.Options{
		AutoAccept: rides.AutoAcceptDrivers("Mike Chen"),
	})
	sentinel := s.AddRide(context.Background(), draft(rides.DefaultAutoAcceptDriver, 2))
	mike := s.AddRide(context.Background(), draft("Mike Chen", 2))

	s.RequestRide(context.Background(), sentinel, requestDraft("u1"))
	s.RequestRide(context.Background(), mike, requestDraft("u1"))

	if r := mustRide(t, s, sentinel); len(r.AcceptedPassengers) != 0 {
		t.Fatalf("sentinel ride accepted=%d", len(r.AcceptedPassengers))
	}
	if r := mustRide(t, s, mike); len(r.AcceptedPassengers) != 1 || r.AvailableSeats != 1 {
		t.Fatalf("mike ride=%+v", r)
	}
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 2))
	before := s.Snapshot()

	if _, ok := s.RequestRide(context.Background(), "nope", requestDraft("u1")); ok {
		t.Fatalf("RequestRide on missing ride succeeded")
	}
	if s.AcceptRequest(context.Background(), rideID, "nope") {
		t.Fatalf("AcceptRequest on missing request succeeded")
	}
	if s.RejectRequest(context.Background(), "nope", "nope") {
		t.Fatalf("RejectRequest on missing ride succeeded")
	}
	if s.CancelRequest(context.Background(), rideID, "nope") {
		t.Fatalf("CancelRequest on missing request succeeded")
	}
	if s.CancelRide(context.Background(), "nope") {
		t.Fatalf("CancelRide on missing ride succeeded")
	}
	if s.CancelPassengerRideRequest(context.Background(), "nope") {
		t.Fatalf("CancelPassengerRideRequest on missing request succeeded")
	}

	after := s.Snapshot()
	if len(after.Rides) != len(before.Rides) || len(after.Rides[0].Requests) != 0 {
		t.Fatalf("state changed: %+v", after)
	}
}

func TestStore_AcceptRequest_IsIdempotent(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 3))
	reqID, _ := s.RequestRide(context.Background(), rideID, requestDraft("u1"))

	if !s.AcceptRequest(context.Background(), rideID, reqID) {
		t.Fatalf("AcceptRequest failed")
	}
	if s.AcceptRequest(context.Background(), rideID, reqID) {
		t.Fatalf("second AcceptRequest reported a change")
	}

	r := mustRide(t, s, rideID)
	if len(r.AcceptedPassengers) != 1 || r.AvailableSeats != 2 {
		t.Fatalf("ride=%+v", r)
	}
	if r.Requests[0].Status != domain.RequestStatusAccepted || r.AcceptedPassengers[0].ID != reqID {
		t.Fatalf("ride=%+v", r)
	}
	if r.AvailableSeats+len(r.AcceptedPassengers) != r.TotalSeats {
		t.Fatalf("seat invariant broken: %+v", r)
	}
}

func TestStore_RejectRequest_OnlyPending(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 3))
	pending, _ := s.RequestRide(context.Background(), rideID, requestDraft("u1"))
	accepted, _ := s.RequestRide(context.Background(), rideID, requestDraft("u2"))
	s.AcceptRequest(context.Background(), rideID, accepted)

	if !s.RejectRequest(context.Background(), rideID, pending) {
		t.Fatalf("RejectRequest on pending failed")
	}
	if s.RejectRequest(context.Background(), rideID, accepted) {
		t.Fatalf("RejectRequest on accepted reported a change")
	}

	r := mustRide(t, s, rideID)
	if r.Requests[0].Status != domain.RequestStatusRejected || r.Requests[1].Status != domain.RequestStatusAccepted {
		t.Fatalf("requests=%+v", r.Requests)
	}
	if r.AvailableSeats != 2 || len(r.AcceptedPassengers) != 1 {
		t.Fatalf("ride=%+v", r)
	}
	// Rejected requests stay visible and cannot be accepted afterwards.
	if s.AcceptRequest(context.Background(), rideID, pending) {
		t.Fatalf("AcceptRequest on rejected reported a change")
	}
}

func TestStore_CancelRequest_RestoresSeatOnlyWhenAccepted(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 2))
	a, _ := s.RequestRide(context.Background(), rideID, requestDraft("u1"))
	b, _ := s.RequestRide(context.Background(), rideID, requestDraft("u2"))
	s.AcceptRequest(context.Background(), rideID, a)

	if !s.CancelRequest(context.Background(), rideID, b) {
		t.Fatalf("CancelRequest pending failed")
	}
	r := mustRide(t, s, rideID)
	if r.AvailableSeats != 1 || len(r.Requests) != 1 {
		t.Fatalf("after pending cancel ride=%+v", r)
	}

	if !s.CancelRequest(context.Background(), rideID, a) {
		t.Fatalf("CancelRequest accepted failed")
	}
	r = mustRide(t, s, rideID)
	if r.AvailableSeats != 2 || len(r.Requests) != 0 || len(r.AcceptedPassengers) != 0 {
		t.Fatalf("after accepted cancel ride=%+v", r)
	}
	if s.CancelRequest(context.Background(), rideID, a) {
		t.Fatalf("second CancelRequest reported a change")
	}
}

func TestStore_CancelRide_FreezesRide(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 2))
	reqID, _ := s.RequestRide(context.Background(), rideID, requestDraft("u1"))

	if !s.CancelRide(context.Background(), rideID) {
		t.Fatalf("CancelRide failed")
	}
	if s.CancelRide(context.Background(), rideID) {
		t.Fatalf("second CancelRide reported a change")
	}
	r := mustRide(t, s, rideID)
	if r.Status != domain.RideStatusCancelled || r.AvailableSeats != 2 || len(r.Requests) != 1 {
		t.Fatalf("ride=%+v", r)
	}

	if _, ok := s.RequestRide(context.Background(), rideID, requestDraft("u2")); ok {
		t.Fatalf("RequestRide on cancelled ride succeeded")
	}
	if s.AcceptRequest(context.Background(), rideID, reqID) {
		t.Fatalf("AcceptRequest on cancelled ride succeeded")
	}
	if s.CancelRequest(context.Background(), rideID, reqID) {
		t.Fatalf("CancelRequest on cancelled ride succeeded")
	}
}

func TestStore_PassengerRideRequests(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	s.SetCurrentUser(context.Background(), domain.User{ID: "me", Name: "Me"})

	d := rides.PassengerRideRequestDraft{
		PassengerID:   "me",
		PassengerName: "Me",
		Destination:   "Western University - Weldon Library",
		DepartureTime: t0.Add(2 * time.Hour),
		Seats:         1,
	}
	mine := s.AddPassengerRideRequest(context.Background(), d)
	clk.Advance(time.Minute)
	d.PassengerID, d.PassengerName = "other", "Other"
	theirs := s.AddPassengerRideRequest(context.Background(), d)

	snap := s.Snapshot()
	if len(snap.PassengerRideRequests) != 2 || snap.PassengerRideRequests[0].ID != theirs {
		t.Fatalf("requests=%+v", snap.PassengerRideRequests)
	}
	p := snap.PassengerRideRequests[1]
	if p.Status != domain.PassengerRequestStatusActive || p.OfferCount != 0 || !p.CreatedAt.Equal(t0) {
		t.Fatalf("request=%+v", p)
	}

	if got := s.MyPassengerRideRequests(); len(got) != 1 || got[0].ID != mine {
		t.Fatalf("mine=%+v", got)
	}
	if got := s.ActivePassengerRideRequests(); len(got) != 1 || got[0].ID != theirs {
		t.Fatalf("active=%+v", got)
	}

	if !s.CancelPassengerRideRequest(context.Background(), theirs) {
		t.Fatalf("cancel failed")
	}
	if s.CancelPassengerRideRequest(context.Background(), theirs) {
		t.Fatalf("second cancel reported a change")
	}
	if got := s.ActivePassengerRideRequests(); len(got) != 0 {
		t.Fatalf("active after cancel=%+v", got)
	}
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	rideID := s.AddRide(context.Background(), draft("Mike Chen", 2))
	s.RequestRide(context.Background(), rideID, requestDraft("u1"))

	snap := s.Snapshot()
	snap.Rides[0].Requests[0].Status = domain.RequestStatusRejected
	snap.Rides[0].TotalSeats = 99
	got := s.AvailableRides()
	got[0].Requests = nil

	r := mustRide(t, s, rideID)
	if r.TotalSeats != 2 || len(r.Requests) != 1 || r.Requests[0].Status != domain.RequestStatusPending {
		t.Fatalf("store state leaked: %+v", r)
	}
}

type failingBackend struct {
	*memstatestore.Store
}

func (failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

// Not parallel: reads a process-wide counter.
func TestStore_PersistFailureKeepsMutation(t *testing.T) {
	s := rides.NewStore(failingBackend{memstatestore.NewStore()}, memclock.NewManualClock(t0), rides.Options{})
	before := testutil.ToFloat64(observability.PersistFailuresTotal)

	rideID := s.AddRide(context.Background(), draft("Mike Chen", 2))
	if _, ok := s.Ride(rideID); !ok {
		t.Fatalf("ride not kept after persist failure")
	}
	if got := testutil.ToFloat64(observability.PersistFailuresTotal) - before; got != 1 {
		t.Fatalf("persist failures=%v, want 1", got)
	}

	if err := s.Save(context.Background()); err == nil {
		t.Fatalf("Save: expected error")
	}
}
