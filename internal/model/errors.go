package model

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrLocationNotFound = errors.New("location not found")
	ErrMediaNotFound    = errors.New("media not found")

	ErrInvalidInput = errors.New("invalid input")
)
