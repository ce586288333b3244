package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"exp"`
}

