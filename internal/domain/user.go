package domain

// User is the profile of the person operating this device.
type User struct {
	ID     UserID
	Name   string
	Email  string
	School string

	Phone  *string
	Avatar *string

	RidesOffered int
	RidesTaken   int
	Rating       *float64
}
