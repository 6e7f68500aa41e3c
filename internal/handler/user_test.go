package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func userServer(users *MockProfiles) *echo.Echo {
	e := newEcho()
	h := NewUserHandler(users)
	g := e.Group("/me", middleware.Authenticate(testSigner))
	g.GET("", h.Me)
	g.PUT("", h.UpdateMe)
	g.PUT("/change-password", h.ChangePassword)
	return e
}

func TestMe(t *testing.T) {
	users := &MockProfiles{}
	s := userServer(users)
	users.On("Profile", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: "user", PasswordHash: "$argon2id$secret"}, nil).Once()

	rec, env := do(t, s, http.MethodGet, "/me", "", sessionCookie(t, model.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User profile fetched successfully", env.Message)
	assert.Contains(t, string(env.Response), `"Email-Address":"ada@example.com"`)
	assert.NotContains(t, string(env.Response), "argon2id")

	rec, _ = do(t, s, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestUpdateMe(t *testing.T) {
	users := &MockProfiles{}
	s := userServer(users)
	cookie := sessionCookie(t, model.RoleUser)

	users.On("UpdateProfile", mock.Anything, userID, (*string)(nil), mock.MatchedBy(func(e *string) bool {
		return e != nil && *e == "new@example.com"
	})).Return(&model.User{ID: userID, Email: "new@example.com"}, nil).Once()

	rec, env := do(t, s, http.MethodPut, "/me", `{"email":" NEW@example.com "}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile updated successfully", env.Message)

	rec, env = do(t, s, http.MethodPut, "/me", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Response), `"general"`)

	users.On("UpdateProfile", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, apperror.New(apperror.CodeConflict, service.MsgEmailExists)).Once()
	rec, env = do(t, s, http.MethodPut, "/me", `{"email":"taken@example.com"}`, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.MsgEmailExists, env.Message)
	users.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	users := &MockProfiles{}
	s := userServer(users)
	cookie := sessionCookie(t, model.RoleUser)

	users.On("ChangePassword", mock.Anything, userID, "Old1!pass", "N3w!Passw").Return(nil).Once()
	rec, env := do(t, s, http.MethodPut, "/me/change-password",
		`{"currentPassword":"Old1!pass","newPassword":"N3w!Passw","confirmNewPassword":"N3w!Passw"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password updated successfully", env.Message)
	assert.JSONEq(t, `{}`, string(env.Response))

	users.On("ChangePassword", mock.Anything, userID, "bad", "N3w!Passw").
		Return(apperror.New(apperror.CodeInvalid, service.MsgWrongCurrentPassword)).Once()
	rec, env = do(t, s, http.MethodPut, "/me/change-password",
		`{"currentPassword":"bad","newPassword":"N3w!Passw","confirmNewPassword":"N3w!Passw"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgWrongCurrentPassword, env.Message)

	rec, _ = do(t, s, http.MethodPut, "/me/change-password",
		`{"currentPassword":"x","newPassword":"N3w!Passw","confirmNewPassword":"Mismatch1!"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertExpectations(t)
}
