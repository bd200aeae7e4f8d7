package storage

import (
	"context"

	"domainshop/pkg/domain"
)

// UserStorage persists users. Email is unique across users.
type UserStorage interface {
	// InsertUser stores user and returns the stored row including its generated
	// ID and CreatedAt. A duplicate email yields serrors.ErrConflict.
	InsertUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByEmail returns nil when no user has email.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UserByID returns nil when no user has id.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}
