package models

// Location is a single waypoint of a ride. Position orders waypoints starting at 0.
type Location struct {
	ID       int64   `json:"id"`
	RideID   int64   `json:"ride_id"`
	Position int     `json:"position"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}
