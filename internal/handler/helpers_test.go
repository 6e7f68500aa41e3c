package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/utils"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

var testSigner = utils.NewTokenSigner("handler-test-secret", time.Hour)

const (
	userID      = "65f1a2b3c4d5e6f708192a3b"
	testMovieID = "65f1a2b3c4d5e6f708192a40"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.MustNew()
	e.HTTPErrorHandler = HTTPErrorHandler(nil)
	return e
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Response   json.RawMessage `json:"response"`
}

func sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	tok, err := testSigner.Sign(utils.Identity{UserID: userID, Email: "ada@example.com", Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.TokenCookie, Value: tok}
}

func do(t *testing.T, e *echo.Echo, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
		require.Equal(t, rec.Code, env.StatusCode)
	}
	return rec, env
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
