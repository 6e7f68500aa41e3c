// Package service holds the business rules between the HTTP handlers and the
// MySQL repositories.  Services return *apperror.AppError for every outcome
// the client should see; anything else is an internal failure.
package service

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// UserStore is the subset of *repository.UserRepo the services use.
type UserStore interface {
	Create(ctx context.Context, u *model.User, resolve repository.RoleResolver) error
	AdminExists(ctx context.Context) (bool, error)
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	GetActiveByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}

// MovieStore is the subset of *repository.MovieRepo the services use.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetActiveByID(ctx context.Context, id string) (*model.Movie, error)
	Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error)
	SoftDelete(ctx context.Context, id string) (*model.Movie, error)
	Search(ctx context.Context, q model.MovieQuery) ([]model.Movie, int64, error)
	Stats(ctx context.Context) (model.MovieStats, error)
}

// ActivityLogStore is the subset of *repository.ActivityLogRepo the services use.
type ActivityLogStore interface {
	List(ctx context.Context, page, limit int) ([]model.ActivityLog, int64, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) bool
}

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(id utils.Identity) (string, error)
}

var (
	_ UserStore        = (*repository.UserRepo)(nil)
	_ MovieStore       = (*repository.MovieRepo)(nil)
	_ ActivityLogStore = (*repository.ActivityLogRepo)(nil)
	_ PasswordHasher   = (*utils.PasswordHasher)(nil)
	_ TokenSigner      = (*utils.TokenSigner)(nil)
)
