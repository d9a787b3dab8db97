package models

import (
	"time"

	"gorm.io/datatypes"
)

// Package is a bookable tour. Its duration is the number of tour plan days.
type Package struct {
	ID          uint                         `json:"id" gorm:"primaryKey"`
	Title       string                       `json:"title" gorm:"not null"`
	Description string                       `json:"description"`
	TourType    string                       `json:"tour_type" gorm:"index"`
	Location    string                       `json:"location"`
	Price       float64                      `json:"price" gorm:"not null"`
	Images      []string                     `json:"images" gorm:"serializer:json"`
	TourPlan    datatypes.JSONSlice[TourDay] `json:"tour_plan"`
	CreatedBy   string                       `json:"created_by"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

type TourDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p *Package) DurationDays() int {
	if len(p.TourPlan) == 0 {
		return 1
	}
	return len(p.TourPlan)
}

type CreatePackageRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	TourType    string    `json:"tour_type"`
	Location    string    `json:"location"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Images      []string  `json:"images"`
	TourPlan    []TourDay `json:"tour_plan" validate:"required,min=1,dive"`
}
