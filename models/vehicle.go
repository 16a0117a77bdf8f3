package models

import "time"

type Vehicle struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Class        string    `json:"class"`
	Category     string    `json:"category"`
	Seats        int       `json:"seats"`
	TopSpeed     string    `json:"topSpeed"`
	Acceleration string    `json:"acceleration"`
	Description  string    `json:"description"`
	Stock        int       `json:"stock"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultVehicles is served when the datastore is unreachable so the
// showroom never goes dark. Keep it in sync with the seed data.
var DefaultVehicles = []Vehicle{
	{
		ID:           1,
		Name:         "Karin Sultan",
		Price:        250000,
		Class:        "Sports",
		Category:     "sedan",
		Seats:        4,
		TopSpeed:     "210 km/h",
		Acceleration: "5.2s",
		Description:  "Classic Japanese sports sedan",
		Stock:        5,
		IsActive:     true,
	},
	{
		ID:           2,
		Name:         "Bravado Buffalo",
		Price:        350000,
		Class:        "Muscle",
		Category:     "muscle",
		Seats:        4,
		TopSpeed:     "230 km/h",
		Acceleration: "4.8s",
		Description:  "Modern American muscle car",
		Stock:        3,
		IsActive:     true,
	},
	{
		ID:           3,
		Name:         "Pfister Comet",
		Price:        450000,
		Class:        "Sports",
		Category:     "sports",
		Seats:        2,
		TopSpeed:     "240 km/h",
		Acceleration: "4.2s",
		Description:  "German sports car",
		Stock:        2,
		IsActive:     true,
	},
}
