package rides

import (
	"context"
	"time"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

const DemoUserID domain.UserID = "currentUser123"

func demoUser() domain.User {
	phone := "519-123-4567"
	return domain.User{
		ID:     DemoUserID,
		Name:   "Demo User",
		Email:  "demo@western.ca",
		School: "Western University",
		Phone:  &phone,
	}
}

// demoRides returns the sample campus rides. Departure times are wall-clock
// times in now's location, relative to its calendar day.
func demoRides(now time.Time) []domain.Ride {
	at := func(days, hour, minute int) time.Time {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location())
	}
	note := func(s string) *string { return &s }
	ride := func(id, driverID, driver, dest string, c domain.Coordinate, dep time.Time, seats int, notes *string) domain.Ride {
		return domain.Ride{
			ID:                     domain.RideID(id),
			DriverID:               domain.UserID(driverID),
			DriverName:             driver,
			Destination:            dest,
			DestinationCoordinates: &c,
			DepartureTime:          dep,
			AvailableSeats:         seats,
			TotalSeats:             seats,
			Notes:                  notes,
			Requests:               []domain.RideRequest{},
			AcceptedPassengers:     []domain.RideRequest{},
			Status:                 domain.RideStatusActive,
			CreatedAt:              now,
		}
	}

	tomorrow := at(1, 8, 0)
	return []domain.Ride{
		ride("mock1", "driver1", DefaultAutoAcceptDriver, "Western University - North Campus",
			domain.Coordinate{Latitude: 43.0096, Longitude: -81.2737}, tomorrow, 3,
			note("Leaving right at 8am, please be on time!")),
		ride("mock2", "driver2", "Mike Chen", "Western University - University College",
			domain.Coordinate{Latitude: 43.0089, Longitude: -81.2739}, at(0, 15, 30), 4,
			note("Going to UC for afternoon class")),
		ride("mock3", "driver3", "Emily Rodriguez", "Western University - Ivey Business School",
			domain.Coordinate{Latitude: 43.0074, Longitude: -81.2744}, at(5, 7, 45), 2,
			nil),
		ride("mock4", "driver4", "Alex Thompson", "Western University - Weldon Library",
			domain.Coordinate{Latitude: 43.0098, Longitude: -81.2752}, tomorrow, 4,
			note("Study session at the library. Happy to pick up anyone!")),
	}
}

// SeedDemoData installs the demo user when there is none and the demo rides
// when there are no rides. It reports whether anything was written.
func (s *Store) SeedDemoData(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	changed := false
	if next.CurrentUser == nil {
		next = setCurrentUser(next, demoUser())
		changed = true
	}
	if len(next.Rides) == 0 {
		next.Rides = demoRides(s.clk.Now().In(s.seedLoc))
		changed = true
	}
	s.commitLocked(ctx, "seed_demo_data", next, changed)
	return changed
}
