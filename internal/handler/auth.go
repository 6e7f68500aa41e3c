package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/utils"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

// Authenticator is the part of service.AuthService the handlers use.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput, caller *utils.Identity) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	auth    Authenticator
	cookies CookieConfig
}

func NewAuthHandler(auth Authenticator, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Register creates an account and signs it in.  Both registration routes
// share it; the role rules live in the service.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.RegisterRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.auth.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.RoleValue(),
	}, middleware.Caller(c))
	if err != nil {
		return err
	}
	h.cookies.set(c, res.Token)
	return respond(c, http.StatusCreated, "Registered successfully", echo.Map{"user": res.User})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.LoginRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.set(c, res.Token)
	return respond(c, http.StatusOK, "Login successful", echo.Map{"user": res.User})
}

// Logout only clears the cookie; tokens are not revoked server side.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.clear(c)
	return respond(c, http.StatusOK, "Logout successful", nil)
}
