package domain

import "time"

type Testimonial struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name"`
	Role         string    `json:"role,omitempty"`
	Content      string    `json:"content" gorm:"type:text"`
	Rating       int       `json:"rating"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
