package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RideStatusPending    = "pending"
	RideStatusAssigned   = "assigned"
	RideStatusInProgress = "in_progress"
	RideStatusCompleted  = "completed"
	RideStatusCancelled  = "cancelled"
)

type Ride struct {
	ID             int64           `json:"id"`
	ClientID       int64           `json:"client_id"`
	DriverID       *int64          `json:"driver_id"`
	OperatorID     *int64          `json:"operator_id"`
	RideClassID    int64           `json:"ride_class_id"`
	Status         string          `json:"status"`
	Price          decimal.Decimal `json:"price"`
	DistanceMeters int             `json:"distance_meters"`
	ScheduledAt    *time.Time      `json:"scheduled_at"`
	Comment        *string         `json:"comment"`
	Waypoints      []Location      `json:"waypoints"`
	ExtraOptions   []ExtraOption   `json:"extra_options"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ExtraOptionIDs returns the ids of the attached extra options in order.
func (r *Ride) ExtraOptionIDs() []int64 {
	ids := make([]int64, 0, len(r.ExtraOptions))
	for _, o := range r.ExtraOptions {
		ids = append(ids, o.ID)
	}
	return ids
}

type RideFilter struct {
	Status      string
	ClientID    *int64
	DriverID    *int64
	RideClassID *int64
	From        *time.Time
	To          *time.Time
}

// Quote is the priced result of routing a set of waypoints for a ride class.
type Quote struct {
	RideClassID    int64           `json:"ride_class_id"`
	DistanceMeters int             `json:"distance_meters"`
	Coefficient    decimal.Decimal `json:"coefficient"`
	Price          decimal.Decimal `json:"price"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
