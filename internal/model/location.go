package model

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID          uuid.UUID `json:"id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateLocationRequest struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// UpdateLocationRequest holds a partial update; nil fields keep their stored value.
type UpdateLocationRequest struct {
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}
