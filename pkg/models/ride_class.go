package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RideClass is a pricing tier. Its coefficient multiplies the routed distance in kilometres.
type RideClass struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
