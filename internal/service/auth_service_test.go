package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

func newAuth(t *testing.T) (*AuthService, *MockUserStore, *utils.TokenSigner) {
	t.Helper()
	store := new(MockUserStore)
	signer := utils.NewTokenSigner("test-secret", time.Hour)
	return NewAuthService(store, testHasher(), signer, nil), store, signer
}

func assertCode(t *testing.T, err error, code apperror.Code, msg string) {
	t.Helper()
	ae, ok := apperror.As(err)
	require.True(t, ok, "want *apperror.AppError, got %v", err)
	assert.Equal(t, code, ae.Code)
	assert.Equal(t, msg, ae.Message)
}

func TestEffectiveRole(t *testing.T) {
	admin := &utils.Identity{UserID: "a", Role: model.RoleAdmin}
	user := &utils.Identity{UserID: "u", Role: model.RoleUser}

	cases := []struct {
		name        string
		requested   string
		caller      *utils.Identity
		adminExists bool
		want        string
		wantErr     error
	}{
		{"first user becomes admin", model.RoleUser, nil, false, model.RoleAdmin, nil},
		{"first admin request", model.RoleAdmin, nil, false, model.RoleAdmin, nil},
		{"plain user", model.RoleUser, nil, true, model.RoleUser, nil},
		{"empty role defaults to user", "", user, true, model.RoleUser, nil},
		{"anonymous admin request", model.RoleAdmin, nil, true, "", repository.ErrForbidden},
		{"user asks for admin", model.RoleAdmin, user, true, "", repository.ErrForbidden},
		{"admin creates admin", model.RoleAdmin, admin, true, model.RoleAdmin, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := EffectiveRole(tc.requested, tc.caller)(tc.adminExists)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Bootstrap", func(t *testing.T) {
		svc, store, signer := newAuth(t)
		store.On("Create", ctx, "first@example.com").Return(false, nil).Once()

		res, err := svc.Register(ctx, RegisterInput{Name: "First", Email: "first@example.com", Password: "Secret@123", Role: model.RoleUser}, nil)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, res.User.Role)

		claims, ok := signer.Verify(res.Token)
		require.True(t, ok)
		assert.Equal(t, res.User.ID, claims.UserID)
		assert.Equal(t, model.RoleAdmin, claims.Role)
		store.AssertExpectations(t)
	})

	t.Run("RegularUser", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("Create", ctx, "bob@example.com").Return(true, nil).Once()

		res, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "Secret@123", Role: model.RoleUser}, nil)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, res.User.Role)
		assert.Equal(t, "bob@example.com", res.User.Email)
	})

	t.Run("AdminRequiresAdminCaller", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("Create", ctx, "eve@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, RegisterInput{Email: "eve@example.com", Password: "Secret@123", Role: model.RoleAdmin},
			&utils.Identity{UserID: "u1", Role: model.RoleUser})
		assertCode(t, err, apperror.CodeForbidden, MsgAdminOnly)
	})

	t.Run("AdminByAdmin", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("Create", ctx, "ops@example.com").Return(true, nil).Once()

		res, err := svc.Register(ctx, RegisterInput{Email: "ops@example.com", Password: "Secret@123", Role: model.RoleAdmin},
			&utils.Identity{UserID: "a1", Role: model.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, res.User.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("Create", ctx, "dup@example.com").Return(true, repository.ErrEmailExists).Once()

		_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "Secret@123", Role: model.RoleUser}, nil)
		assertCode(t, err, apperror.CodeConflict, MsgEmailExists)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("Create", ctx, "x@example.com").Return(false, errors.New("connection reset")).Once()

		_, err := svc.Register(ctx, RegisterInput{Email: "x@example.com", Password: "Secret@123"}, nil)
		assertCode(t, err, apperror.CodeInternal, MsgRegistrationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := testHasher().Hash("Secret@123")
	require.NoError(t, err)
	user := &model.User{ID: model.NewID(), Name: "Dana", Email: "dana@example.com", PasswordHash: hash, Role: model.RoleUser}

	t.Run("Success", func(t *testing.T) {
		svc, store, signer := newAuth(t)
		store.On("GetActiveByEmail", ctx, "dana@example.com").Return(user, nil).Once()

		res, err := svc.Login(ctx, "dana@example.com", "Secret@123")
		require.NoError(t, err)
		assert.Equal(t, user.AuthView(), res.User)
		_, ok := signer.Verify(res.Token)
		assert.True(t, ok)
	})

	t.Run("UnknownEmailAndWrongPasswordLookAlike", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("GetActiveByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()
		store.On("GetActiveByEmail", ctx, "dana@example.com").Return(user, nil).Once()

		_, errMissing := svc.Login(ctx, "ghost@example.com", "Secret@123")
		_, errWrong := svc.Login(ctx, "dana@example.com", "Wrong@123")
		assertCode(t, errMissing, apperror.CodeUnauthorized, MsgInvalidCredentials)
		assertCode(t, errWrong, apperror.CodeUnauthorized, MsgInvalidCredentials)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		svc, store, _ := newAuth(t)
		store.On("GetActiveByEmail", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

		_, err := svc.Login(ctx, "dana@example.com", "Secret@123")
		assertCode(t, err, apperror.CodeInternal, MsgLoginFailed)
	})

	t.Run("SigningFailure", func(t *testing.T) {
		store := new(MockUserStore)
		svc := NewAuthService(store, testHasher(), utils.NewTokenSigner("", time.Hour), nil)
		store.On("GetActiveByEmail", ctx, "dana@example.com").Return(user, nil).Once()

		_, err := svc.Login(ctx, "dana@example.com", "Secret@123")
		assertCode(t, err, apperror.CodeInternal, MsgLoginFailed)
	})
}

func TestAdminExists(t *testing.T) {
	svc, store, _ := newAuth(t)
	store.On("AdminExists", mock.Anything).Return(true, nil).Once()

	ok, err := svc.AdminExists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
