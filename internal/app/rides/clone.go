package rides

import "github.com/campus-rideshare/ride-core/internal/domain"

// cloneState deep-copies st so callers can never reach the store's slices.
func cloneState(st State) State {
	cp := State{
		Rides:                 make([]domain.Ride, 0, len(st.Rides)),
		PassengerRideRequests: make([]domain.PassengerRideRequest, 0, len(st.PassengerRideRequests)),
	}
	for _, r := range st.Rides {
		cp.Rides = append(cp.Rides, cloneRide(r))
	}
	for _, p := range st.PassengerRideRequests {
		cp.PassengerRideRequests = append(cp.PassengerRideRequests, clonePassengerRequest(p))
	}
	if st.CurrentUser != nil {
		u := cloneUser(*st.CurrentUser)
		cp.CurrentUser = &u
	}
	return cp
}

func cloneRide(r domain.Ride) domain.Ride {
	cp := r
	cp.DriverAvatar = cloneStringPtr(r.DriverAvatar)
	cp.Notes = cloneStringPtr(r.Notes)
	if r.DestinationCoordinates != nil {
		c := *r.DestinationCoordinates
		cp.DestinationCoordinates = &c
	}
	cp.Requests = append([]domain.RideRequest{}, r.Requests...)
	cp.AcceptedPassengers = append([]domain.RideRequest{}, r.AcceptedPassengers...)
	return cp
}

func clonePassengerRequest(p domain.PassengerRideRequest) domain.PassengerRideRequest {
	cp := p
	cp.Notes = cloneStringPtr(p.Notes)
	return cp
}

func cloneUser(u domain.User) domain.User {
	cp := u
	cp.Phone = cloneStringPtr(u.Phone)
	cp.Avatar = cloneStringPtr(u.Avatar)
	if u.Rating != nil {
		v := *u.Rating
		cp.Rating = &v
	}
	return cp
}

func cloneRides(rs []domain.Ride) []domain.Ride {
	out := make([]domain.Ride, 0, len(rs))
	for _, r := range rs {
		out = append(out, cloneRide(r))
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
