package domain

import "errors"

// Repository sentinels. Usecases translate these into apperror kinds.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInactive  = errors.New("resource is inactive")
)
