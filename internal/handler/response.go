// Package handler contains the HTTP handlers.  Every response, success or
// failure, uses the same envelope; errors are returned to Echo and rendered
// by HTTPErrorHandler.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/apperror"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Messages produced by the HTTP layer itself.
const (
	MsgRouteNotFound = "Route not found"
	MsgInvalidID     = "Invalid ID parameter"
	MsgMovieNotFound = "Movie not found"
	MsgInternal      = "Internal Server Error"
)

// Envelope is the body of every response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Response   any    `json:"response"`
}

func respond(c echo.Context, code int, message string, body any) error {
	if body == nil {
		body = echo.Map{}
	}
	status := StatusSuccess
	if code >= http.StatusBadRequest {
		status = StatusFailed
	}
	return c.JSON(code, Envelope{StatusCode: code, Status: status, Message: message, Response: body})
}

var codeStatus = map[apperror.Code]int{
	apperror.CodeInvalid:          http.StatusBadRequest,
	apperror.CodeUnauthorized:     http.StatusUnauthorized,
	apperror.CodeForbidden:        http.StatusForbidden,
	apperror.CodeNotFound:         http.StatusNotFound,
	apperror.CodeConflict:         http.StatusConflict,
	apperror.CodeTooManyRequests:  http.StatusTooManyRequests,
	apperror.CodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	apperror.CodeInternal:         http.StatusBadRequest,
}

// HTTPErrorHandler renders any error returned by a handler or middleware
// as an envelope.  Internal failures are logged and reported as 400 with
// the error's client-facing message.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, message, body := resolve(err)
		if ae, ok := apperror.As(err); ok && ae.Code == apperror.CodeInternal {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		} else if !isKnown(err) {
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = respond(c, code, message, body)
		}
		if werr != nil {
			log.Warn("writing error response failed", zap.Error(werr))
		}
	}
}

func isKnown(err error) bool {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return true
	}
	_, ok := apperror.As(err)
	return ok
}

func resolve(err error) (int, string, any) {
	if ae, ok := apperror.As(err); ok {
		code, found := codeStatus[ae.Code]
		if !found {
			code = http.StatusBadRequest
		}
		if ae.Fields != nil {
			return code, ae.Message, echo.Map{"errors": ae.Fields}
		}
		return code, ae.Message, nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, MsgRouteNotFound, nil
		}
		msg, ok := he.Message.(string)
		if !ok || msg == "" {
			msg = http.StatusText(he.Code)
		}
		return he.Code, msg, nil
	}
	return http.StatusBadRequest, MsgInternal, nil
}
