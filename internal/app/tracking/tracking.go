package tracking

import (
	"context"
	"time"

	"github.com/campus-rideshare/ride-core/internal/app/mapview"
	"github.com/campus-rideshare/ride-core/internal/domain"
	clockport "github.com/campus-rideshare/ride-core/internal/ports/out/clock"
)

// DriverLocation is where the driver is shown while a ride is being tracked
// (Oxford St and Wharncliffe Rd).
var DriverLocation = domain.Coordinate{Latitude: 42.992135, Longitude: -81.264951}

// InitialETA is the countdown a new session starts from.
const InitialETA = 5 * time.Minute

const regionSpan = 0.05

// ETA returns whole minutes left, dropping by one for every full minute since
// startedAt and never going below zero.
func ETA(startedAt, now time.Time) int {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	left := int(InitialETA/time.Minute) - int(elapsed/time.Minute)
	if left < 0 {
		return 0
	}
	return left
}

// RequestCanceller withdraws a ride request.
type RequestCanceller interface {
	CancelRequest(ctx context.Context, rideID domain.RideID, requestID domain.RequestID) bool
}

// Session follows one accepted request from the rider's side.
type Session struct {
	params    domain.LiveTrackingParams
	startedAt time.Time
	clk       clockport.Clock
	rides     RequestCanceller
}

// NewSession validates params and starts the ETA countdown at the current time.
func NewSession(params domain.LiveTrackingParams, clk clockport.Clock, rides RequestCanceller) (*Session, error) {
	p, err := domain.NewLiveTrackingParams(params)
	if err != nil {
		return nil, err
	}
	return &Session{params: p, startedAt: clk.Now(), clk: clk, rides: rides}, nil
}

func (s *Session) Params() domain.LiveTrackingParams { return s.params }

// ETA is the remaining minutes until pickup.
func (s *Session) ETA() int { return ETA(s.startedAt, s.clk.Now()) }

// Region frames the driver and the pickup point.
func (s *Session) Region() mapview.Region {
	pickup := s.params.PickupCoordinates
	return mapview.Region{
		Center: domain.Coordinate{
			Latitude:  (DriverLocation.Latitude + pickup.Latitude) / 2,
			Longitude: (DriverLocation.Longitude + pickup.Longitude) / 2,
		},
		LatitudeDelta:  regionSpan,
		LongitudeDelta: regionSpan,
	}
}

// Markers returns the driver pin followed by the pickup pin.
func (s *Session) Markers() []mapview.Marker {
	return []mapview.Marker{
		{
			ID:         "driver",
			Kind:       mapview.MarkerDriver,
			RideID:     s.params.RideID,
			Title:      s.params.DriverName,
			Coordinate: DriverLocation,
		},
		{
			ID:         "pickup:" + string(s.params.RequestID),
			Kind:       mapview.MarkerPickup,
			RideID:     s.params.RideID,
			Title:      s.params.PickupLocation,
			Coordinate: s.params.PickupCoordinates,
		},
	}
}

// Cancel withdraws the tracked request. It reports whether the store changed.
func (s *Session) Cancel(ctx context.Context) bool {
	return s.rides.CancelRequest(ctx, s.params.RideID, s.params.RequestID)
}
