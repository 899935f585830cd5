package api

import (
	"time"

	"github.com/shopspring/decimal"

	"ridedispatch/pkg/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type createUserRequest struct {
	Username     string  `json:"username" binding:"required,max=64"`
	FullName     string  `json:"full_name" binding:"required"`
	Role         string  `json:"role" binding:"omitempty,oneof=admin operator"`
	Password     string  `json:"password" binding:"required,min=8"`
	AvatarFileID *string `json:"avatar_file_id" binding:"omitempty,uuid"`
}

type updateUserRequest struct {
	Username     string  `json:"username" binding:"required,max=64"`
	FullName     string  `json:"full_name" binding:"required"`
	Role         string  `json:"role" binding:"required,oneof=admin operator"`
	AvatarFileID *string `json:"avatar_file_id" binding:"omitempty,uuid"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type clientRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone" binding:"required,max=32"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Comment   *string `json:"comment"`
}

func (r clientRequest) model(id int64) *models.Client {
	return &models.Client{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Comment:   r.Comment,
	}
}

type driverRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required,max=32"`
	CarModel     string  `json:"car_model" binding:"required"`
	CarColor     string  `json:"car_color"`
	LicensePlate string  `json:"license_plate" binding:"required,max=16"`
	TelegramID   *int64  `json:"telegram_id"`
	PhotoFileID  *string `json:"photo_file_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

func (r driverRequest) model(id int64) *models.Driver {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Driver{
		ID:           id,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		CarModel:     r.CarModel,
		CarColor:     r.CarColor,
		LicensePlate: r.LicensePlate,
		TelegramID:   r.TelegramID,
		PhotoFileID:  r.PhotoFileID,
		IsActive:     active,
	}
}

type rideClassRequest struct {
	Name        string          `json:"name" binding:"required"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Description *string         `json:"description"`
}

func (r rideClassRequest) model(id int64) *models.RideClass {
	return &models.RideClass{ID: id, Name: r.Name, Coefficient: r.Coefficient, Description: r.Description}
}

type extraOptionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (r extraOptionRequest) model(id int64) *models.ExtraOption {
	return &models.ExtraOption{ID: id, Name: r.Name, Description: r.Description}
}

type pointRequest struct {
	Lat float64 `json:"lat" binding:"latitude"`
	Lng float64 `json:"lng" binding:"longitude"`
}

type waypointRequest struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat" binding:"latitude"`
	Lng     float64 `json:"lng" binding:"longitude"`
}

type rideRequest struct {
	ClientID       int64             `json:"client_id" binding:"required"`
	DriverID       *int64            `json:"driver_id"`
	RideClassID    int64             `json:"ride_class_id" binding:"required"`
	Status         string            `json:"status" binding:"omitempty,oneof=pending assigned in_progress completed cancelled"`
	Price          decimal.Decimal   `json:"price"`
	DistanceMeters int               `json:"distance_meters" binding:"min=0"`
	ScheduledAt    *time.Time        `json:"scheduled_at"`
	Comment        *string           `json:"comment"`
	Waypoints      []waypointRequest `json:"waypoints" binding:"required,min=2,dive"`
	ExtraOptionIDs []int64           `json:"extra_option_ids"`
}

func (r rideRequest) model(id int64) *models.Ride {
	ride := &models.Ride{
		ID:             id,
		ClientID:       r.ClientID,
		DriverID:       r.DriverID,
		RideClassID:    r.RideClassID,
		Status:         r.Status,
		Price:          r.Price,
		DistanceMeters: r.DistanceMeters,
		ScheduledAt:    r.ScheduledAt,
		Comment:        r.Comment,
	}
	for i, wp := range r.Waypoints {
		ride.Waypoints = append(ride.Waypoints, models.Location{Position: i, Address: wp.Address, Lat: wp.Lat, Lng: wp.Lng})
	}
	for _, optID := range r.ExtraOptionIDs {
		ride.ExtraOptions = append(ride.ExtraOptions, models.ExtraOption{ID: optID})
	}
	return ride
}

type quoteRequest struct {
	RideClassID int64          `json:"ride_class_id" binding:"required"`
	Waypoints   []pointRequest `json:"waypoints" binding:"required,min=2,dive"`
}

func (r quoteRequest) points() []models.LatLng {
	out := make([]models.LatLng, 0, len(r.Waypoints))
	for _, p := range r.Waypoints {
		out = append(out, models.LatLng{Lat: p.Lat, Lng: p.Lng})
	}
	return out
}
