package rides

import (
	"context"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

// AddRide posts a new active ride ahead of all existing ones.
func (s *Store) AddRide(ctx context.Context, d RideDraft) domain.RideID {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := domain.Ride{
		ID:                 domain.RideID(s.newID()),
		DriverID:           d.DriverID,
		DriverName:         d.DriverName,
		DriverAvatar:       cloneStringPtr(d.DriverAvatar),
		Destination:        d.Destination,
		DepartureTime:      d.DepartureTime,
		AvailableSeats:     d.TotalSeats,
		TotalSeats:         d.TotalSeats,
		Notes:              cloneStringPtr(d.Notes),
		Requests:           []domain.RideRequest{},
		AcceptedPassengers: []domain.RideRequest{},
		Status:             domain.RideStatusActive,
		CreatedAt:          s.clk.Now(),
	}
	if d.DestinationCoordinates != nil {
		c := *d.DestinationCoordinates
		r.DestinationCoordinates = &c
	}
	s.commitLocked(ctx, "add_ride", addRide(s.state, r), true)
	return r.ID
}

// RequestRide files a request against rideID and returns its id. Rides whose
// driver matches the auto-accept policy take the rider immediately; all
// others leave the request pending. ok is false when the ride does not exist
// or is cancelled.
func (s *Store) RequestRide(ctx context.Context, rideID domain.RideID, d RideRequestDraft) (domain.RequestID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := domain.RideRequest{
		ID:                domain.RequestID(s.newID()),
		RiderID:           d.RiderID,
		RiderName:         d.RiderName,
		PickupLocation:    d.PickupLocation,
		PickupCoordinates: d.PickupCoordinates,
		RequestedAt:       s.clk.Now(),
		Status:            domain.RequestStatusPending,
		CalculatedPrice:   d.CalculatedPrice,
		DistanceKm:        d.DistanceKm,
	}
	next, created, ok := requestRide(s.state, rideID, req, s.autoAccept)
	s.commitLocked(ctx, "request_ride", next, ok)
	if !ok {
		return "", false
	}
	return created.ID, true
}

// QuoteRequest builds a request draft for the current user at pickup, priced
// by distance from campus. ok is false when no profile exists yet.
func (s *Store) QuoteRequest(pickupLocation string, pickup domain.Coordinate) (RideRequestDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.state.CurrentUser
	if u == nil {
		return RideRequestDraft{}, false
	}
	q := s.pricing.Price(pickup)
	return RideRequestDraft{
		RiderID:           u.ID,
		RiderName:         u.Name,
		PickupLocation:    domain.NormalizeHumanName(pickupLocation),
		PickupCoordinates: pickup,
		CalculatedPrice:   q.Price,
		DistanceKm:        q.DistanceKm,
	}, true
}

// AcceptRequest accepts a pending request and takes one seat. Accepting a
// request that is not pending is a no-op.
func (s *Store) AcceptRequest(ctx context.Context, rideID domain.RideID, requestID domain.RequestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := acceptRequest(s.state, rideID, requestID)
	s.commitLocked(ctx, "accept_request", next, ok)
	return ok
}

// RejectRequest rejects a pending request. Seats are unaffected.
func (s *Store) RejectRequest(ctx context.Context, rideID domain.RideID, requestID domain.RequestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := rejectRequest(s.state, rideID, requestID)
	s.commitLocked(ctx, "reject_request", next, ok)
	return ok
}

// CancelRequest withdraws a request entirely, restoring the seat if it had been accepted.
func (s *Store) CancelRequest(ctx context.Context, rideID domain.RideID, requestID domain.RequestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := cancelRequest(s.state, rideID, requestID)
	s.commitLocked(ctx, "cancel_request", next, ok)
	return ok
}

// CancelRide marks the ride cancelled. Seats and requests are left as they were.
func (s *Store) CancelRide(ctx context.Context, rideID domain.RideID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := cancelRide(s.state, rideID)
	s.commitLocked(ctx, "cancel_ride", next, ok)
	return ok
}

// AddPassengerRideRequest posts an active passenger request ahead of all existing ones.
func (s *Store) AddPassengerRideRequest(ctx context.Context, d PassengerRideRequestDraft) domain.PassengerRequestID {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.PassengerRideRequest{
		ID:                     domain.PassengerRequestID(s.newID()),
		PassengerID:            d.PassengerID,
		PassengerName:          d.PassengerName,
		PickupLocation:         d.PickupLocation,
		PickupCoordinates:      d.PickupCoordinates,
		Destination:            d.Destination,
		DestinationCoordinates: d.DestinationCoordinates,
		DepartureTime:          d.DepartureTime,
		Seats:                  d.Seats,
		Notes:                  cloneStringPtr(d.Notes),
		Status:                 domain.PassengerRequestStatusActive,
		CreatedAt:              s.clk.Now(),
		OfferCount:             0,
	}
	s.commitLocked(ctx, "add_passenger_request", addPassengerRideRequest(s.state, p), true)
	return p.ID
}

// CancelPassengerRideRequest marks an active passenger request cancelled.
func (s *Store) CancelPassengerRideRequest(ctx context.Context, id domain.PassengerRequestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := cancelPassengerRideRequest(s.state, id)
	s.commitLocked(ctx, "cancel_passenger_request", next, ok)
	return ok
}

// SetCurrentUser replaces the current user wholesale.
func (s *Store) SetCurrentUser(ctx context.Context, u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitLocked(ctx, "set_current_user", setCurrentUser(s.state, u), true)
}
