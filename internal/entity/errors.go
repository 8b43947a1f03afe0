package entity

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrLeadNotFound       = errors.New("lead not found")
)
