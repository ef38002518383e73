package rides

import (
	"strings"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return domain.User{}, false
	}
	return cloneUser(*s.state.CurrentUser), true
}

func (s *Store) Ride(id domain.RideID) (domain.Ride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOfRide(s.state.Rides, id)
	if idx < 0 {
		return domain.Ride{}, false
	}
	return cloneRide(s.state.Rides[idx]), true
}

// AvailableRides lists active rides with a free seat that the current user is not driving.
func (s *Store) AvailableRides() []domain.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRides(s.availableLocked())
}

func (s *Store) availableLocked() []domain.Ride {
	me, hasUser := s.currentUserID()
	out := make([]domain.Ride, 0)
	for _, r := range s.state.Rides {
		if r.Status != domain.RideStatusActive || r.AvailableSeats <= 0 {
			continue
		}
		if hasUser && r.DriverID == me {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SearchAvailableRides narrows AvailableRides by a case-insensitive match on
// destination or driver name, and by exact destination when destination is non-empty.
func (s *Store) SearchAvailableRides(query, destination string) []domain.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]domain.Ride, 0)
	for _, r := range s.availableLocked() {
		matches := strings.Contains(strings.ToLower(r.Destination), q) ||
			strings.Contains(strings.ToLower(r.DriverName), q)
		if !matches {
			continue
		}
		if destination != "" && r.Destination != destination {
			continue
		}
		out = append(out, cloneRide(r))
	}
	return out
}

// AvailableDestinations lists the distinct destinations of AvailableRides in first-seen order.
func (s *Store) AvailableDestinations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range s.availableLocked() {
		if _, ok := seen[r.Destination]; ok {
			continue
		}
		seen[r.Destination] = struct{}{}
		out = append(out, r.Destination)
	}
	return out
}

// MyRides lists every ride the current user drives, cancelled ones included.
func (s *Store) MyRides() []domain.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRides(s.myRidesLocked(false))
}

// MyActiveRides lists the current user's rides that are still active.
func (s *Store) MyActiveRides() []domain.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRides(s.myRidesLocked(true))
}

func (s *Store) myRidesLocked(activeOnly bool) []domain.Ride {
	me, ok := s.currentUserID()
	out := make([]domain.Ride, 0)
	if !ok {
		return out
	}
	for _, r := range s.state.Rides {
		if r.DriverID != me {
			continue
		}
		if activeOnly && r.Status != domain.RideStatusActive {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MyRequests returns one entry per request id made by the current user.
// When a request appears among a ride's accepted passengers, that copy wins
// over the one in the ride's request list.
func (s *Store) MyRequests() []MyRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.currentUserID()
	out := make([]MyRequest, 0)
	if !ok {
		return out
	}
	pos := make(map[domain.RequestID]int)
	for _, r := range s.state.Rides {
		for _, req := range r.AcceptedPassengers {
			if req.RiderID != me {
				continue
			}
			entry := MyRequest{Ride: cloneRide(r), Request: req}
			if i, seen := pos[req.ID]; seen {
				out[i] = entry
				continue
			}
			pos[req.ID] = len(out)
			out = append(out, entry)
		}
		for _, req := range r.Requests {
			if req.RiderID != me {
				continue
			}
			if _, seen := pos[req.ID]; seen {
				continue
			}
			pos[req.ID] = len(out)
			out = append(out, MyRequest{Ride: cloneRide(r), Request: req})
		}
	}
	return out
}

func (s *Store) MyPassengerRideRequests() []domain.PassengerRideRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.currentUserID()
	out := make([]domain.PassengerRideRequest, 0)
	if !ok {
		return out
	}
	for _, p := range s.state.PassengerRideRequests {
		if p.PassengerID == me {
			out = append(out, clonePassengerRequest(p))
		}
	}
	return out
}

// ActivePassengerRideRequests lists other people's passenger requests that are still active.
func (s *Store) ActivePassengerRideRequests() []domain.PassengerRideRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, hasUser := s.currentUserID()
	out := make([]domain.PassengerRideRequest, 0)
	for _, p := range s.state.PassengerRideRequests {
		if p.Status != domain.PassengerRequestStatusActive {
			continue
		}
		if hasUser && p.PassengerID == me {
			continue
		}
		out = append(out, clonePassengerRequest(p))
	}
	return out
}
