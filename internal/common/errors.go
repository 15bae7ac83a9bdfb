package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// inventory-specific errors
	ErrorBoxFull        = errors.New("box is full")
	ErrorUnknownSpecies = errors.New("unknown species")
	ErrorInvalidInput   = errors.New("invalid input")

	// auth-specific errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrorInvalidLogin      = errors.New("invalid login/password")
)
