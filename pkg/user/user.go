// Package user tracks the identities seen by the API and their roles.
package user

import (
	"errors"

	"sparc/entities"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidRole = errors.New("role must be user or admin")
)

func ValidRole(r string) bool {
	return r == entities.RoleUser || r == entities.RoleAdmin
}
