package rides

import (
	"github.com/campus-rideshare/ride-core/internal/domain"
)

// NavigationAfterRequest decides where the rider goes once RequestRide returns.
// An accepted request on an auto-accept driver's ride opens live tracking;
// everything else lands on the rides tab.
func (s *Store) NavigationAfterRequest(rideID domain.RideID, requestID domain.RequestID) domain.NavigationTarget {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfRide(s.state.Rides, rideID)
	if idx < 0 {
		return domain.RidesTarget()
	}
	r := s.state.Rides[idx]
	if !s.autoAccept(r.DriverName) {
		return domain.RidesTarget()
	}
	i := indexOfRequest(r.AcceptedPassengers, requestID)
	if i < 0 {
		return domain.RidesTarget()
	}
	req := r.AcceptedPassengers[i]

	target, err := domain.LiveTrackingTarget(domain.LiveTrackingParams{
		PickupLocation:    req.PickupLocation,
		PickupCoordinates: req.PickupCoordinates,
		DriverName:        r.DriverName,
		Destination:       r.Destination,
		CalculatedPrice:   req.CalculatedPrice,
		RideID:            r.ID,
		RequestID:         req.ID,
	})
	if err != nil {
		s.log.WithError(err).WithField("rideId", rideID).Warn("cannot open live tracking")
		return domain.RidesTarget()
	}
	return target
}
