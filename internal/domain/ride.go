package domain

import "time"

type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// RideRequest is a rider's bid for a seat on a specific ride.
type RideRequest struct {
	ID        RequestID
	RiderID   UserID
	RiderName string

	PickupLocation    string
	PickupCoordinates Coordinate

	RequestedAt time.Time
	Status      RequestStatus

	CalculatedPrice float64
	DistanceKm      float64
}

// Ride is a driver's offer of seats to a destination.
//
// AcceptedPassengers mirrors the accepted entries of Requests; both copies of an
// accepted request carry the same ID and status.
type Ride struct {
	ID           RideID
	DriverID     UserID
	DriverName   string
	DriverAvatar *string

	Destination            string
	DestinationCoordinates *Coordinate
	DepartureTime          time.Time

	AvailableSeats int
	TotalSeats     int
	Notes          *string

	Requests           []RideRequest
	AcceptedPassengers []RideRequest

	Status    RideStatus
	CreatedAt time.Time
}

// IsCancelled reports whether the ride reached its terminal state.
func (r Ride) IsCancelled() bool { return r.Status == RideStatusCancelled }

// HasAcceptedPassenger reports whether requestID is present among the accepted passengers.
func (r Ride) HasAcceptedPassenger(id RequestID) bool {
	for _, p := range r.AcceptedPassengers {
		if p.ID == id {
			return true
		}
	}
	return false
}

// RemainingSeats returns TotalSeats minus the accepted passengers, clamped to [0, TotalSeats].
func (r Ride) RemainingSeats() int {
	n := r.TotalSeats - len(r.AcceptedPassengers)
	if n < 0 {
		return 0
	}
	if n > r.TotalSeats {
		return r.TotalSeats
	}
	return n
}
