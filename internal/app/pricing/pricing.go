package pricing

import (
	"math"

	"github.com/campus-rideshare/ride-core/internal/domain"
)

const earthRadiusKm = 6371.0

// Campus is the fixed reference point fares are measured from (Western University, London ON).
var Campus = domain.Coordinate{Latitude: 43.0096, Longitude: -81.2737}

// Quote is a fare and the distance it was derived from, both rounded to cents.
type Quote struct {
	Price      float64
	DistanceKm float64
}

// Calculator derives fares from the great-circle distance to Origin.
type Calculator struct {
	Origin  domain.Coordinate
	PerKm   float64
	MinFare float64
}

// DefaultCalculator charges $2/km from campus with a $4 minimum.
var DefaultCalculator = Calculator{Origin: Campus, PerKm: 2, MinFare: 4}

// Price quotes a pickup using DefaultCalculator.
func Price(pickup domain.Coordinate) Quote {
	return DefaultCalculator.Price(pickup)
}

func (c Calculator) Price(pickup domain.Coordinate) Quote {
	d := Distance(c.Origin, pickup)
	return Quote{
		Price:      math.Max(c.MinFare, round2(d*c.PerKm)),
		DistanceKm: round2(d),
	}
}

// Distance returns the haversine distance in kilometers between a and b.
// Out-of-range input is not guarded and may produce NaN.
func Distance(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// round2 rounds half away from zero at the cent.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
