package rides

import (
	"time"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// State is the full content of the store: everything that gets persisted.
type State struct {
	Rides                 []domain.Ride
	PassengerRideRequests []domain.PassengerRideRequest
	CurrentUser           *domain.User
}

// RideDraft is what a driver fills in when posting a ride.
// AvailableSeats starts equal to TotalSeats.
type RideDraft struct {
	DriverID     domain.UserID
	DriverName   string
	DriverAvatar *string

	Destination            string
	DestinationCoordinates *domain.Coordinate
	DepartureTime          time.Time

	TotalSeats int
	Notes      *string
}

// RideRequestDraft is a rider's request before the store stamps it.
type RideRequestDraft struct {
	RiderID   domain.UserID
	RiderName string

	PickupLocation    string
	PickupCoordinates domain.Coordinate

	CalculatedPrice float64
	DistanceKm      float64
}

type PassengerRideRequestDraft struct {
	PassengerID   domain.UserID
	PassengerName string

	PickupLocation         string
	PickupCoordinates      domain.Coordinate
	Destination            string
	DestinationCoordinates domain.Coordinate

	DepartureTime time.Time
	Seats         int
	Notes         *string
}

// ProfileInput edits the current user. On first save, unspecified fields are left empty.
type ProfileInput struct {
	Name   Optional[string]
	School Optional[string]
	Phone  Optional[string] // null clears
}

// MyRequest pairs one of the current user's requests with the ride it targets.
type MyRequest struct {
	Ride    domain.Ride
	Request domain.RideRequest
}

type ProfileStats struct {
	RidesAsDriver    int
	RidesAsPassenger int
}
