package models

import (
	"time"
)

type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Photo     string     `json:"photo"`
	Role      Role       `json:"role" gorm:"not null;default:'tourist'"`
	GuideInfo *GuideInfo `json:"guide_info,omitempty" gorm:"serializer:json"`
	LastLogIn time.Time  `json:"last_log_in"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GuideInfo is the public profile a tourist gets once promoted to tour guide.
type GuideInfo struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Region      string    `json:"region"`
	District    string    `json:"district"`
	Experience  string    `json:"experience"`
	Languages   []string  `json:"languages"`
	Age         int       `json:"age"`
	Photo       string    `json:"photo"`
	Bio         string    `json:"bio"`
	TourGuideAt time.Time `json:"tour_guide_at"`
}

type LoginUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

type LoginUserResult struct {
	Created bool  `json:"created"`
	Updated bool  `json:"updated"`
	User    *User `json:"user"`
}

type UpdateGuideInfoRequest struct {
	Phone      *string  `json:"phone"`
	Region     *string  `json:"region"`
	District   *string  `json:"district"`
	Experience *string  `json:"experience"`
	Languages  []string `json:"languages"`
	Age        *int     `json:"age" validate:"omitempty,min=18,max=100"`
	Photo      *string  `json:"photo"`
	Bio        *string  `json:"bio" validate:"omitempty,max=2000"`
}
