package service

import (
	"context"

	"sparc/entities"
	"sparc/pkg/admin"
)

type Service interface {
	GetActivityStats(ctx context.Context) (*admin.Stats, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	// SetRole changes uid's role on behalf of actor.
	SetRole(ctx context.Context, actor, uid, role string) (*entities.User, error)
}
