package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// ActivityLogs is the part of service.ActivityLogService the handler uses.
type ActivityLogs interface {
	List(ctx context.Context, page, limit int) model.ActivityLogPage
}

// ActivityLogHandler serves the admin audit listing.
type ActivityLogHandler struct {
	logs ActivityLogs
}

func NewActivityLogHandler(logs ActivityLogs) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs}
}

func (h *ActivityLogHandler) List(c echo.Context) error {
	page, limit := validation.ParsePaging(c.QueryParams())

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	return respond(c, http.StatusOK, "Logs fetched successfully", h.logs.List(ctx, page, limit))
}
