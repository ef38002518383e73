package mapview

import (
	"github.com/campus-rideshare/ride-core/internal/domain"
)

type MarkerKind string

const (
	MarkerDestination MarkerKind = "destination"
	MarkerPickup      MarkerKind = "pickup"
	MarkerDriver      MarkerKind = "driver"
)

// Marker is one pin on a map screen.
type Marker struct {
	ID         string
	Kind       MarkerKind
	RideID     domain.RideID
	Title      string
	Coordinate domain.Coordinate
	Selected   bool
}

// Region is a visible map area: a centre and its span in degrees.
type Region struct {
	Center         domain.Coordinate
	LatitudeDelta  float64
	LongitudeDelta float64
}

// DefaultRegion frames London, Ontario.
var DefaultRegion = Region{
	Center:         domain.Coordinate{Latitude: 42.9849, Longitude: -81.2453},
	LatitudeDelta:  0.15,
	LongitudeDelta: 0.15,
}

// Markers places a destination pin for every active ride that has
// coordinates. The selected ride additionally shows a pickup pin per accepted
// passenger, placed right after its destination pin.
func Markers(rides []domain.Ride, selected domain.RideID) []Marker {
	out := make([]Marker, 0, len(rides))
	for _, r := range rides {
		if r.Status != domain.RideStatusActive || r.DestinationCoordinates == nil {
			continue
		}
		isSelected := selected != "" && r.ID == selected
		out = append(out, Marker{
			ID:         "ride:" + string(r.ID),
			Kind:       MarkerDestination,
			RideID:     r.ID,
			Title:      r.Destination,
			Coordinate: *r.DestinationCoordinates,
			Selected:   isSelected,
		})
		if !isSelected {
			continue
		}
		for _, p := range r.AcceptedPassengers {
			out = append(out, Marker{
				ID:         "pickup:" + string(p.ID),
				Kind:       MarkerPickup,
				RideID:     r.ID,
				Title:      p.RiderName,
				Coordinate: p.PickupCoordinates,
			})
		}
	}
	return out
}
