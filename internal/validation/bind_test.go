package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/apperror"
)

func jsonContext(body string) echo.Context {
	e := echo.New()
	e.Validator = MustNew()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindJSONValid(t *testing.T) {
	var req LoginRequest
	err := BindJSON(jsonContext(`{"email":"A@B.io","password":"pw"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", req.Email)
}

func TestBindJSONMalformed(t *testing.T) {
	var req LoginRequest
	err := BindJSON(jsonContext(`{"email":`), &req)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalid, ae.Code)
	assert.Equal(t, InvalidJSON, ae.Message)
	assert.Empty(t, ae.Fields)
}

func TestBindJSONGenresNotArray(t *testing.T) {
	var req CreateMovieRequest
	err := BindJSON(jsonContext(`{"title":"Dune","language":"English","genres":"Action"}`), &req)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ValidationFailed, ae.Message)
	assert.Equal(t, "Genres must be an array", ae.Fields["genres"])
}

func TestBindJSONValidationRuns(t *testing.T) {
	var req CreateMovieRequest
	err := BindJSON(jsonContext(`{}`), &req)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "title is required", ae.Fields["title"])
	assert.Equal(t, "Language is required", ae.Fields["language"])
}
