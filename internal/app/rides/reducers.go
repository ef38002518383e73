package rides

import (
	"github.com/campus-rideshare/ride-core/internal/domain"
)

// Reducers take the previous state by value and return the next one plus
// whether anything changed. They never write through slices reachable from
// the previous state; touched slices are copied first.

func addRide(st State, r domain.Ride) State {
	st.Rides = append([]domain.Ride{r}, st.Rides...)
	return st
}

func requestRide(st State, rideID domain.RideID, req domain.RideRequest, autoAccept AutoAcceptPolicy) (State, domain.RideRequest, bool) {
	var created domain.RideRequest
	next, ok := updateRide(st, rideID, func(r domain.Ride) (domain.Ride, bool) {
		if r.IsCancelled() {
			return r, false
		}
		if autoAccept(r.DriverName) {
			req.Status = domain.RequestStatusAccepted
			r.Requests = appendRequest(r.Requests, req)
			r.AcceptedPassengers = appendRequest(r.AcceptedPassengers, req)
			r.AvailableSeats = r.RemainingSeats()
		} else {
			req.Status = domain.RequestStatusPending
			r.Requests = appendRequest(r.Requests, req)
		}
		created = req
		return r, true
	})
	return next, created, ok
}

// acceptRequest only moves a pending request, so accepting twice cannot
// duplicate the passenger.
func acceptRequest(st State, rideID domain.RideID, requestID domain.RequestID) (State, bool) {
	return updateRide(st, rideID, func(r domain.Ride) (domain.Ride, bool) {
		if r.IsCancelled() {
			return r, false
		}
		idx := indexOfRequest(r.Requests, requestID)
		if idx < 0 || r.Requests[idx].Status != domain.RequestStatusPending || r.HasAcceptedPassenger(requestID) {
			return r, false
		}
		updated := r.Requests[idx]
		updated.Status = domain.RequestStatusAccepted
		r.Requests = replaceRequest(r.Requests, idx, updated)
		r.AcceptedPassengers = appendRequest(r.AcceptedPassengers, updated)
		r.AvailableSeats = r.RemainingSeats()
		return r, true
	})
}

func rejectRequest(st State, rideID domain.RideID, requestID domain.RequestID) (State, bool) {
	return updateRide(st, rideID, func(r domain.Ride) (domain.Ride, bool) {
		if r.IsCancelled() {
			return r, false
		}
		idx := indexOfRequest(r.Requests, requestID)
		if idx < 0 || r.Requests[idx].Status != domain.RequestStatusPending {
			return r, false
		}
		updated := r.Requests[idx]
		updated.Status = domain.RequestStatusRejected
		r.Requests = replaceRequest(r.Requests, idx, updated)
		return r, true
	})
}

// cancelRequest drops the request from both sequences whatever its status.
// Cancelling an accepted request recomputes seats from the remaining
// passengers, so a ride overbooked by auto-accept stays full until it is not.
func cancelRequest(st State, rideID domain.RideID, requestID domain.RequestID) (State, bool) {
	return updateRide(st, rideID, func(r domain.Ride) (domain.Ride, bool) {
		if r.IsCancelled() {
			return r, false
		}
		wasAccepted := r.HasAcceptedPassenger(requestID)
		if !wasAccepted && indexOfRequest(r.Requests, requestID) < 0 {
			return r, false
		}
		r.Requests = removeRequest(r.Requests, requestID)
		r.AcceptedPassengers = removeRequest(r.AcceptedPassengers, requestID)
		if wasAccepted {
			r.AvailableSeats = r.RemainingSeats()
		}
		return r, true
	})
}

func cancelRide(st State, rideID domain.RideID) (State, bool) {
	return updateRide(st, rideID, func(r domain.Ride) (domain.Ride, bool) {
		if r.IsCancelled() {
			return r, false
		}
		r.Status = domain.RideStatusCancelled
		return r, true
	})
}

func addPassengerRideRequest(st State, p domain.PassengerRideRequest) State {
	st.PassengerRideRequests = append([]domain.PassengerRideRequest{p}, st.PassengerRideRequests...)
	return st
}

func cancelPassengerRideRequest(st State, id domain.PassengerRequestID) (State, bool) {
	for i, p := range st.PassengerRideRequests {
		if p.ID != id {
			continue
		}
		if p.Status == domain.PassengerRequestStatusCancelled {
			return st, false
		}
		p.Status = domain.PassengerRequestStatusCancelled
		next := make([]domain.PassengerRideRequest, len(st.PassengerRideRequests))
		copy(next, st.PassengerRideRequests)
		next[i] = p
		st.PassengerRideRequests = next
		return st, true
	}
	return st, false
}

func setCurrentUser(st State, u domain.User) State {
	cp := cloneUser(u)
	st.CurrentUser = &cp
	return st
}

func updateRide(st State, id domain.RideID, fn func(domain.Ride) (domain.Ride, bool)) (State, bool) {
	idx := indexOfRide(st.Rides, id)
	if idx < 0 {
		return st, false
	}
	updated, ok := fn(st.Rides[idx])
	if !ok {
		return st, false
	}
	next := make([]domain.Ride, len(st.Rides))
	copy(next, st.Rides)
	next[idx] = updated
	st.Rides = next
	return st, true
}

func indexOfRide(rs []domain.Ride, id domain.RideID) int {
	for i, r := range rs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func indexOfRequest(rs []domain.RideRequest, id domain.RequestID) int {
	for i, r := range rs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func appendRequest(rs []domain.RideRequest, req domain.RideRequest) []domain.RideRequest {
	out := make([]domain.RideRequest, len(rs), len(rs)+1)
	copy(out, rs)
	return append(out, req)
}

func replaceRequest(rs []domain.RideRequest, idx int, req domain.RideRequest) []domain.RideRequest {
	out := make([]domain.RideRequest, len(rs))
	copy(out, rs)
	out[idx] = req
	return out
}

func removeRequest(rs []domain.RideRequest, id domain.RequestID) []domain.RideRequest {
	out := make([]domain.RideRequest, 0, len(rs))
	for _, r := range rs {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
