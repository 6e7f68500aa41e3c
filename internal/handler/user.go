package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// Profiles is the part of service.UserService the handlers use.
type Profiles interface {
	Profile(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
}

// UserHandler serves /api/users/me.
type UserHandler struct {
	users Profiles
}

func NewUserHandler(users Profiles) *UserHandler { return &UserHandler{users: users} }

func callerID(c echo.Context) (string, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return "", apperror.New(apperror.CodeUnauthorized, middleware.MsgUnauthorized)
	}
	return id.UserID, nil
}

func (h *UserHandler) Me(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	u, err := h.users.Profile(ctx, uid)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User profile fetched successfully", echo.Map{"user": u})
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req validation.UpdateProfileRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	u, err := h.users.UpdateProfile(ctx, uid, req.Name, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": u})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req validation.ChangePasswordRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.users.ChangePassword(ctx, uid, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password updated successfully", nil)
}
