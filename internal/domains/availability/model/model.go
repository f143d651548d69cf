package model

const EntityName = "availability"

type RoomAvailability struct {
	Total     int
	Available int
	Booked    int
}

// Availability maps a room type code to its inventory position for one date range.
type Availability map[string]RoomAvailability
