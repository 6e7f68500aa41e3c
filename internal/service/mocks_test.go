package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// MockUserStore resolves the role the way the repository does: the expected
// call returns whether an admin exists, and the resolver decides from there.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *model.User, resolve repository.RoleResolver) error {
	args := m.Called(ctx, u.Email)
	if err := args.Error(1); err != nil {
		return err
	}
	role, err := resolve(args.Bool(0))
	if err != nil {
		return err
	}
	u.ID, u.Role, u.CreatedAt = model.NewID(), role, model.Now()
	u.UpdatedAt = u.CreatedAt
	return nil
}

func (m *MockUserStore) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetActiveByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error) {
	args := m.Called(ctx, id, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type MockMovieStore struct {
	mock.Mock
}

func (m *MockMovieStore) Create(ctx context.Context, mv *model.Movie) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovieStore) GetActiveByID(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieStore) Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieStore) SoftDelete(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieStore) Search(ctx context.Context, q model.MovieQuery) ([]model.Movie, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieStore) Stats(ctx context.Context) (model.MovieStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.MovieStats), args.Error(1)
}

type MockActivityLogStore struct {
	mock.Mock
}

func (m *MockActivityLogStore) List(ctx context.Context, page, limit int) ([]model.ActivityLog, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ActivityLog), args.Get(1).(int64), args.Error(2)
}

// cheap argon2 parameters keep the tests fast
func testHasher() *utils.PasswordHasher { return utils.NewPasswordHasher(64, 1, 1) }
