package domain

type Seat struct {
	ID         string
	FlightID   string
	SeatNumber string
	CabinClass string
	Occupied   bool
}
