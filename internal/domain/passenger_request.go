package domain

import "time"

type PassengerRequestStatus string

const (
	PassengerRequestStatusActive    PassengerRequestStatus = "active"
	PassengerRequestStatusCompleted PassengerRequestStatus = "completed"
	PassengerRequestStatusCancelled PassengerRequestStatus = "cancelled"
)

// PassengerRideRequest is a standing "I need a ride" post that is not tied to a ride.
type PassengerRideRequest struct {
	ID            PassengerRequestID
	PassengerID   UserID
	PassengerName string

	PickupLocation         string
	PickupCoordinates      Coordinate
	Destination            string
	DestinationCoordinates Coordinate

	DepartureTime time.Time
	Seats         int
	Notes         *string

	Status    PassengerRequestStatus
	CreatedAt time.Time

	// OfferCount is carried for storage compatibility; no operation changes it.
	OfferCount int
}
