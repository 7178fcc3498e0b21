package repository

import (
	"context"
	"time"

	"sparc/entities"
)

type Repo interface {
	// Touch creates the user on first sight and records the visit. promote
	// raises the role to admin; it never lowers it.
	Touch(ctx context.Context, uid string, promote bool, at time.Time) (*entities.User, error)
	Get(ctx context.Context, uid string) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	SetRole(ctx context.Context, uid, role string) error
}
