package rides

import (
	"context"
	"strings"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

// SaveProfile creates the current user on first use and edits it afterwards.
// Names are whitespace-normalised; counters start at zero and are never
// touched here.
func (s *Store) SaveProfile(ctx context.Context, in ProfileInput) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u domain.User
	if s.state.CurrentUser != nil {
		u = cloneUser(*s.state.CurrentUser)
	} else {
		u = domain.User{ID: domain.UserID(s.newID())}
	}

	if in.Name.IsSpecified() && !in.Name.IsNull() {
		u.Name = domain.NormalizeHumanName(in.Name.Value())
	}
	if in.School.IsSpecified() && !in.School.IsNull() {
		u.School = strings.TrimSpace(in.School.Value())
	}
	if in.Phone.IsSpecified() {
		if in.Phone.IsNull() {
			u.Phone = nil
		} else {
			v := strings.TrimSpace(in.Phone.Value())
			u.Phone = &v
		}
	}

	s.commitLocked(ctx, "save_profile", setCurrentUser(s.state, u), true)
	return cloneUser(u)
}

// ProfileStats counts rides the current user drives and rides they were accepted on.
func (s *Store) ProfileStats() ProfileStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.currentUserID()
	if !ok {
		return ProfileStats{}
	}
	var st ProfileStats
	for _, r := range s.state.Rides {
		if r.DriverID == me {
			st.RidesAsDriver++
		}
		for _, p := range r.AcceptedPassengers {
			if p.RiderID == me {
				st.RidesAsPassenger++
				break
			}
		}
	}
	return st
}
