package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Register(ctx context.Context, in service.RegisterInput, caller *utils.Identity) (*service.AuthResult, error) {
	args := m.Called(ctx, in, caller)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

type MockProfiles struct{ mock.Mock }

func (m *MockProfiles) Profile(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockProfiles) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error) {
	args := m.Called(ctx, id, name, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockProfiles) ChangePassword(ctx context.Context, id, current, next string) error {
	return m.Called(ctx, id, current, next).Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Search(ctx context.Context, q model.MovieQuery) model.MoviePage {
	return m.Called(ctx, q).Get(0).(model.MoviePage)
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	mv, _ := args.Get(0).(*model.Movie)
	return mv, args.Error(1)
}

func (m *MockCatalog) Create(ctx context.Context, mv *model.Movie) (*model.Movie, error) {
	args := m.Called(ctx, mv)
	out, _ := args.Get(0).(*model.Movie)
	return out, args.Error(1)
}

func (m *MockCatalog) Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error) {
	args := m.Called(ctx, id, p)
	out, _ := args.Get(0).(*model.Movie)
	return out, args.Error(1)
}

func (m *MockCatalog) SoftDelete(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Movie)
	return out, args.Error(1)
}

func (m *MockCatalog) Stats(ctx context.Context) model.MovieStats {
	return m.Called(ctx).Get(0).(model.MovieStats)
}

type MockActivityLogs struct{ mock.Mock }

func (m *MockActivityLogs) List(ctx context.Context, page, limit int) model.ActivityLogPage {
	return m.Called(ctx, page, limit).Get(0).(model.ActivityLogPage)
}
