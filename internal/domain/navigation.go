package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNavigation is returned when navigation parameters are incomplete.
var ErrInvalidNavigation = errors.New("invalid navigation parameters")

type Screen string

const (
	ScreenRides        Screen = "rides"
	ScreenLiveTracking Screen = "live_tracking"
)

// LiveTrackingParams is everything the live tracking screen needs to render.
type LiveTrackingParams struct {
	PickupLocation    string
	PickupCoordinates Coordinate
	DriverName        string
	Destination       string
	CalculatedPrice   float64
	RideID            RideID
	RequestID         RequestID
}

// NewLiveTrackingParams validates p and returns it unchanged on success.
func NewLiveTrackingParams(p LiveTrackingParams) (LiveTrackingParams, error) {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(p.PickupLocation) == "" {
		missing = append(missing, "pickupLocation")
	}
	if strings.TrimSpace(p.DriverName) == "" {
		missing = append(missing, "driverName")
	}
	if p.RideID == "" {
		missing = append(missing, "rideId")
	}
	if p.RequestID == "" {
		missing = append(missing, "requestId")
	}
	if len(missing) > 0 {
		return LiveTrackingParams{}, fmt.Errorf("%w: missing %s", ErrInvalidNavigation, strings.Join(missing, ", "))
	}
	if p.CalculatedPrice < 0 {
		return LiveTrackingParams{}, fmt.Errorf("%w: negative price %.2f", ErrInvalidNavigation, p.CalculatedPrice)
	}
	return p, nil
}

// NavigationTarget is a destination screen. LiveTracking is set only when
// Screen is ScreenLiveTracking.
type NavigationTarget struct {
	Screen       Screen
	LiveTracking *LiveTrackingParams
}

func RidesTarget() NavigationTarget {
	return NavigationTarget{Screen: ScreenRides}
}

func LiveTrackingTarget(p LiveTrackingParams) (NavigationTarget, error) {
	valid, err := NewLiveTrackingParams(p)
	if err != nil {
		return NavigationTarget{}, err
	}
	return NavigationTarget{Screen: ScreenLiveTracking, LiveTracking: &valid}, nil
}
