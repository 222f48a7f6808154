package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not the author")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
