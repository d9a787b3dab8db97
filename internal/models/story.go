package models

import "time"

type Story struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	AuthorEmail string    `json:"author_email" gorm:"not null;index"`
	AuthorName  string    `json:"author_name"`
	AuthorPhoto string    `json:"author_photo"`
	AuthorRole  Role      `json:"author_role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateStoryRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=10000"`
	Images      []string `json:"images" validate:"dive,url"`
}

type UpdateStoryRequest struct {
	Title        *string  `json:"title" validate:"omitempty,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=10000"`
	AddImages    []string `json:"add_images" validate:"dive,url"`
	RemoveImages []string `json:"remove_images"`
}
