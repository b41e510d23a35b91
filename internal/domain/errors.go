package domain

import "errors"

var (
	ErrStoreNotInitialized = errors.New("profile store not initialized")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrProfileNotFound     = errors.New("profile not found")
)
