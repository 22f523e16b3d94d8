package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrInvalidToken       = errors.New("invalid token")       // 401
	ErrForbidden          = errors.New("forbidden")           // 403
)
