package models

import "time"

// OrderStatus represents all possible states of a vehicle order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusDelivered OrderStatus = "delivered"
)

// Valid reports whether s is a member of the status enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	DiscordID       string      `json:"discord_id" gorm:"not null;index"`
	User            *User       `json:"user,omitempty" gorm:"foreignKey:DiscordID;references:DiscordID"`
	CustomerName    string      `json:"customer_name"`
	VehicleID       int         `json:"vehicle_id" gorm:"not null"`
	VehicleName     string      `json:"vehicle_name" gorm:"not null"`
	Price           float64     `json:"price"`
	PrimaryColor    string      `json:"primary_color"`
	SecondaryColor  string      `json:"secondary_color"`
	PearlColor      string      `json:"pearl_color"`
	SpecialRequests string      `json:"special_requests"`
	PaymentMethod   string      `json:"payment_method"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	ApprovedBy      string      `json:"approved_by"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
