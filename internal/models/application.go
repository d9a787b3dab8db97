package models

import "time"

const ApplicationStatusPending = "pending"

// Application is a tourist's request to become a tour guide. Approval promotes the user and
// removes the record; rejection only removes it.
type Application struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"not null"`
	Phone      string    `json:"phone"`
	Region     string    `json:"region" gorm:"index"`
	District   string    `json:"district"`
	Experience string    `json:"experience"`
	Languages  []string  `json:"languages" gorm:"serializer:json"`
	Age        int       `json:"age"`
	Photo      string    `json:"photo"`
	CVLink     string    `json:"cv_link"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateApplicationRequest struct {
	Email      string   `json:"email" validate:"omitempty,email"`
	Name       string   `json:"name" validate:"required"`
	Phone      string   `json:"phone"`
	Region     string   `json:"region"`
	District   string   `json:"district"`
	Experience string   `json:"experience"`
	Languages  []string `json:"languages"`
	Age        int      `json:"age" validate:"omitempty,min=18,max=100"`
	Photo      string   `json:"photo"`
	CVLink     string   `json:"cv_link" validate:"omitempty,url"`
	Reason     string   `json:"reason"`
}

type Candidate struct {
	ID         uint     `json:"id"`
	Email      string   `json:"email" validate:"required,email"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Region     string   `json:"region"`
	District   string   `json:"district"`
	Experience string   `json:"experience"`
	Languages  []string `json:"languages"`
	Age        int      `json:"age"`
	Photo      string   `json:"photo"`
}

type ApproveApplicationRequest struct {
	Role      string    `json:"role" validate:"required"`
	Candidate Candidate `json:"candidate" validate:"required"`
}
