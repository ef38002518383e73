package domain

// UserID identifies the operator of the current device.
// Rides and requests reference users by this opaque value.
type UserID string

// RideID is an internal identifier for a ride offer.
type RideID string

// RequestID is an internal identifier for a rider's request against a ride.
type RequestID string

// PassengerRequestID is an internal identifier for a standing passenger ride request.
type PassengerRequestID string
