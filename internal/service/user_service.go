package service

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

const (
	MsgUserNotFound         = "User not found"
	MsgProfileUpdateFailed  = "Profile update failed"
	MsgWrongCurrentPassword = "Current password is incorrect"
	MsgPasswordUpdateFailed = "Password update failed"
	msgProfileFetchFailed   = "Profile fetch failed"
)

// UserService manages the signed-in user's own account.
type UserService struct {
	users  UserStore
	hasher PasswordHasher
}

func NewUserService(users UserStore, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Profile returns the active account with id.
func (s *UserService) Profile(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, MsgUserNotFound)
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, msgProfileFetchFailed)
	}
	return u, nil
}

// UpdateProfile changes name and/or email.  nil leaves a field unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error) {
	u, err := s.users.UpdateProfile(ctx, id, name, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.New(apperror.CodeNotFound, MsgUserNotFound)
		case errors.Is(err, repository.ErrEmailExists):
			return nil, apperror.New(apperror.CodeConflict, MsgEmailExists)
		default:
			return nil, apperror.Wrap(err, apperror.CodeInternal, MsgProfileUpdateFailed)
		}
	}
	return u, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.CodeInvalid, MsgUserNotFound)
		}
		return apperror.Wrap(err, apperror.CodeInternal, MsgPasswordUpdateFailed)
	}
	if !s.hasher.Verify(u.PasswordHash, current) {
		return apperror.New(apperror.CodeInvalid, MsgWrongCurrentPassword)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, MsgPasswordUpdateFailed)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.CodeInvalid, MsgUserNotFound)
		}
		return apperror.Wrap(err, apperror.CodeInternal, MsgPasswordUpdateFailed)
	}
	return nil
}
