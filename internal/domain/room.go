package domain

// Room is a sub-asset (hotel room, vehicle) as returned by
// GET /assets/{n}/rooms/. Status is the "paid" flag; Occupancy of 0 means
// unoccupied. The dashboard never mutates these fields locally — state
// changes arrive through refetch after a control command.
type Room struct {
	ID         int    `json:"id"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
	Price      string `json:"price"`
	Status     bool   `json:"status"`
	Occupancy  int    `json:"occupancy"`
	Hotel      string `json:"hotel"`
}

// Occupied reports whether the room currently has occupants.
func (r Room) Occupied() bool {
	return r.Occupancy > 0
}
