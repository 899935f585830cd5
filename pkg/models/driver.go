package models

import "time"

type Driver struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	CarModel     string    `json:"car_model"`
	CarColor     string    `json:"car_color"`
	LicensePlate string    `json:"license_plate"`
	TelegramID   *int64    `json:"telegram_id"`
	PhotoFileID  *string   `json:"photo_file_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}
