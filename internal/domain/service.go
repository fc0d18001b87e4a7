package domain

import (
	"time"
)

// Service is an item of the price table that can be booked.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	BufferMinutes   int       `json:"buffer_minutes"`
	Active          bool      `json:"active"`
	SortOrder       int       `json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateServiceDTO struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	BufferMinutes   *int    `json:"buffer_minutes" binding:"omitempty,min=0"`
	Active          *bool   `json:"active"`
	SortOrder       int     `json:"sort_order"`
}

type UpdateServiceDTO struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1"`
	BufferMinutes   *int     `json:"buffer_minutes" binding:"omitempty,min=0"`
	Active          *bool    `json:"active"`
	SortOrder       *int     `json:"sort_order"`
}
