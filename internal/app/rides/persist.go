package rides

import (
	"encoding/json"
	"time"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

const (
	// SchemaVersion tags every document the store writes. Any change to the
	// persisted layout bumps it; older documents are wiped on load.
	SchemaVersion = 8

	DefaultStorageKey = "ride-storage"
)

// document is the envelope written under the storage key.
type document struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// migration rewrites a stored state written at an older version into the
// current layout.
type migration func(raw json.RawMessage) (json.RawMessage, error)

// migrations maps stored versions (inclusive ranges) to the transform that
// brings them to SchemaVersion.
var migrations = []struct {
	from, to int
	migrate  migration
}{
	// v8 added passengerRideRequests; nothing older is carried forward.
	{from: 0, to: SchemaVersion - 1, migrate: wipeState},
}

func wipeState(json.RawMessage) (json.RawMessage, error) {
	return json.Marshal(persistedState{
		Rides:                 []persistedRide{},
		PassengerRideRequests: []persistedPassengerRequest{},
		CurrentUser:           nil,
	})
}

func keepState(raw json.RawMessage) (json.RawMessage, error) { return raw, nil }

// migrationFor returns the transform for a stored version. The current and
// newer versions decode as-is; versions outside every range are wiped.
func migrationFor(version int) migration {
	if version >= SchemaVersion {
		return keepState
	}
	for _, m := range migrations {
		if version >= m.from && version <= m.to {
			return m.migrate
		}
	}
	return wipeState
}

type loadOutcome string

const (
	loadOK        loadOutcome = "ok"
	loadMigrated  loadOutcome = "migrated"
	loadMalformed loadOutcome = "malformed"
)

// decodeDocument turns stored bytes into State. It never fails: malformed
// input yields empty state and loadMalformed.
func decodeDocument(data []byte) (State, int, loadOutcome) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return emptyState(), 0, loadMalformed
	}

	outcome := loadOK
	raw := doc.State
	if doc.Version < SchemaVersion {
		outcome = loadMigrated
	}
	raw, err := migrationFor(doc.Version)(raw)
	if err != nil {
		return emptyState(), doc.Version, loadMalformed
	}
	if len(raw) == 0 || string(raw) == "null" {
		return emptyState(), doc.Version, outcome
	}

	var ps persistedState
	if err := json.Unmarshal(raw, &ps); err != nil {
		return emptyState(), doc.Version, loadMalformed
	}
	return ps.toState(), doc.Version, outcome
}

func encodeDocument(st State) ([]byte, error) {
	raw, err := json.Marshal(fromState(st))
	if err != nil {
		return nil, err
	}
	return json.Marshal(document{State: raw, Version: SchemaVersion})
}

func emptyState() State {
	return State{
		Rides:                 []domain.Ride{},
		PassengerRideRequests: []domain.PassengerRideRequest{},
	}
}

// Persistence shapes. They mirror the document layout of earlier app builds
// (camelCase keys, ISO-8601 times) and are not used outside this file.

type persistedState struct {
	Rides                 []persistedRide             `json:"rides"`
	PassengerRideRequests []persistedPassengerRequest `json:"passengerRideRequests"`
	CurrentUser           *persistedUser              `json:"currentUser"`
}

type persistedCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type persistedRequest struct {
	ID                string              `json:"id"`
	RiderID           string              `json:"riderId"`
	RiderName         string              `json:"riderName"`
	PickupLocation    string              `json:"pickupLocation"`
	PickupCoordinates persistedCoordinate `json:"pickupCoordinates"`
	RequestedAt       time.Time           `json:"requestedAt"`
	Status            string              `json:"status"`
	CalculatedPrice   float64             `json:"calculatedPrice"`
	DistanceKm        float64             `json:"distanceKm"`
}

type persistedRide struct {
	ID                     string               `json:"id"`
	DriverName             string               `json:"driverName"`
	DriverID               string               `json:"driverId"`
	DriverAvatar           *string              `json:"driverAvatar,omitempty"`
	Destination            string               `json:"destination"`
	DestinationCoordinates *persistedCoordinate `json:"destinationCoordinates,omitempty"`
	DepartureTime          time.Time            `json:"departureTime"`
	AvailableSeats         int                  `json:"availableSeats"`
	TotalSeats             int                  `json:"totalSeats"`
	Notes                  *string              `json:"notes,omitempty"`
	Requests               []persistedRequest   `json:"requests"`
	AcceptedPassengers     []persistedRequest   `json:"acceptedPassengers"`
	Status                 string               `json:"status"`
	CreatedAt              time.Time            `json:"createdAt"`
}

type persistedPassengerRequest struct {
	ID                     string              `json:"id"`
	PassengerID            string              `json:"passengerId"`
	PassengerName          string              `json:"passengerName"`
	PickupLocation         string              `json:"pickupLocation"`
	PickupCoordinates      persistedCoordinate `json:"pickupCoordinates"`
	Destination            string              `json:"destination"`
	DestinationCoordinates persistedCoordinate `json:"destinationCoordinates"`
	DepartureTime          time.Time           `json:"departureTime"`
	Seats                  int                 `json:"seats"`
	Notes                  *string             `json:"notes,omitempty"`
	Status                 string              `json:"status"`
	CreatedAt              time.Time           `json:"createdAt"`
	OfferCount             int                 `json:"offerCount"`
}

type persistedUser struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone,omitempty"`
	School       string   `json:"school"`
	Avatar       *string  `json:"avatar,omitempty"`
	RidesOffered int      `json:"ridesOffered"`
	RidesTaken   int      `json:"ridesTaken"`
	Rating       *float64 `json:"rating,omitempty"`
}

func fromState(st State) persistedState {
	ps := persistedState{
		Rides:                 make([]persistedRide, 0, len(st.Rides)),
		PassengerRideRequests: make([]persistedPassengerRequest, 0, len(st.PassengerRideRequests)),
	}
	for _, r := range st.Rides {
		pr := persistedRide{
			ID:                 string(r.ID),
			DriverName:         r.DriverName,
			DriverID:           string(r.DriverID),
			DriverAvatar:       r.DriverAvatar,
			Destination:        r.Destination,
			DepartureTime:      r.DepartureTime,
			AvailableSeats:     r.AvailableSeats,
			TotalSeats:         r.TotalSeats,
			Notes:              r.Notes,
			Requests:           fromRequests(r.Requests),
			AcceptedPassengers: fromRequests(r.AcceptedPassengers),
			Status:             string(r.Status),
			CreatedAt:          r.CreatedAt,
		}
		if r.DestinationCoordinates != nil {
			c := fromCoordinate(*r.DestinationCoordinates)
			pr.DestinationCoordinates = &c
		}
		ps.Rides = append(ps.Rides, pr)
	}
	for _, p := range st.PassengerRideRequests {
		ps.PassengerRideRequests = append(ps.PassengerRideRequests, persistedPassengerRequest{
			ID:                     string(p.ID),
			PassengerID:            string(p.PassengerID),
			PassengerName:          p.PassengerName,
			PickupLocation:         p.PickupLocation,
			PickupCoordinates:      fromCoordinate(p.PickupCoordinates),
			Destination:            p.Destination,
			DestinationCoordinates: fromCoordinate(p.DestinationCoordinates),
			DepartureTime:          p.DepartureTime,
			Seats:                  p.Seats,
			Notes:                  p.Notes,
			Status:                 string(p.Status),
			CreatedAt:              p.CreatedAt,
			OfferCount:             p.OfferCount,
		})
	}
	if u := st.CurrentUser; u != nil {
		ps.CurrentUser = &persistedUser{
			ID:           string(u.ID),
			Name:         u.Name,
			Email:        u.Email,
			Phone:        u.Phone,
			School:       u.School,
			Avatar:       u.Avatar,
			RidesOffered: u.RidesOffered,
			RidesTaken:   u.RidesTaken,
			Rating:       u.Rating,
		}
	}
	return ps
}

func (ps persistedState) toState() State {
	st := emptyState()
	for _, pr := range ps.Rides {
		r := domain.Ride{
			ID:                 domain.RideID(pr.ID),
			DriverID:           domain.UserID(pr.DriverID),
			DriverName:         pr.DriverName,
			DriverAvatar:       pr.DriverAvatar,
			Destination:        pr.Destination,
			DepartureTime:      pr.DepartureTime,
			AvailableSeats:     pr.AvailableSeats,
			TotalSeats:         pr.TotalSeats,
			Notes:              pr.Notes,
			Requests:           toRequests(pr.Requests),
			AcceptedPassengers: toRequests(pr.AcceptedPassengers),
			Status:             domain.RideStatus(pr.Status),
			CreatedAt:          pr.CreatedAt,
		}
		if pr.DestinationCoordinates != nil {
			c := toCoordinate(*pr.DestinationCoordinates)
			r.DestinationCoordinates = &c
		}
		st.Rides = append(st.Rides, r)
	}
	for _, pp := range ps.PassengerRideRequests {
		st.PassengerRideRequests = append(st.PassengerRideRequests, domain.PassengerRideRequest{
			ID:                     domain.PassengerRequestID(pp.ID),
			PassengerID:            domain.UserID(pp.PassengerID),
			PassengerName:          pp.PassengerName,
			PickupLocation:         pp.PickupLocation,
			PickupCoordinates:      toCoordinate(pp.PickupCoordinates),
			Destination:            pp.Destination,
			DestinationCoordinates: toCoordinate(pp.DestinationCoordinates),
			DepartureTime:          pp.DepartureTime,
			Seats:                  pp.Seats,
			Notes:                  pp.Notes,
			Status:                 domain.PassengerRequestStatus(pp.Status),
			CreatedAt:              pp.CreatedAt,
			OfferCount:             pp.OfferCount,
		})
	}
	if pu := ps.CurrentUser; pu != nil {
		st.CurrentUser = &domain.User{
			ID:           domain.UserID(pu.ID),
			Name:         pu.Name,
			Email:        pu.Email,
			School:       pu.School,
			Phone:        pu.Phone,
			Avatar:       pu.Avatar,
			RidesOffered: pu.RidesOffered,
			RidesTaken:   pu.RidesTaken,
			Rating:       pu.Rating,
		}
	}
	return st
}

func fromRequests(rs []domain.RideRequest) []persistedRequest {
	out := make([]persistedRequest, 0, len(rs))
	for _, r := range rs {
		out = append(out, persistedRequest{
			ID:                string(r.ID),
			RiderID:           string(r.RiderID),
			RiderName:         r.RiderName,
			PickupLocation:    r.PickupLocation,
			PickupCoordinates: fromCoordinate(r.PickupCoordinates),
			RequestedAt:       r.RequestedAt,
			Status:            string(r.Status),
			CalculatedPrice:   r.CalculatedPrice,
			DistanceKm:        r.DistanceKm,
		})
	}
	return out
}

func toRequests(ps []persistedRequest) []domain.RideRequest {
	out := make([]domain.RideRequest, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.RideRequest{
			ID:                domain.RequestID(p.ID),
			RiderID:           domain.UserID(p.RiderID),
			RiderName:         p.RiderName,
			PickupLocation:    p.PickupLocation,
			PickupCoordinates: toCoordinate(p.PickupCoordinates),
			RequestedAt:       p.RequestedAt,
			Status:            domain.RequestStatus(p.Status),
			CalculatedPrice:   p.CalculatedPrice,
			DistanceKm:        p.DistanceKm,
		})
	}
	return out
}

func fromCoordinate(c domain.Coordinate) persistedCoordinate {
	return persistedCoordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

func toCoordinate(c persistedCoordinate) domain.Coordinate {
	return domain.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}
