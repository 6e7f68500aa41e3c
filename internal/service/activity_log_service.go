package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// ActivityLogService reads the audit trail.
type ActivityLogService struct {
	logs ActivityLogStore
	log  *zap.Logger
}

func NewActivityLogService(logs ActivityLogStore, log *zap.Logger) *ActivityLogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityLogService{logs: logs, log: log}
}

// List returns one page of logs, newest first.  Failures yield an empty
// first page.
func (s *ActivityLogService) List(ctx context.Context, page, limit int) model.ActivityLogPage {
	if page < 1 {
		page = validation.DefaultPage
	}
	if limit < 1 {
		limit = validation.DefaultLimit
	}
	logs, total, err := s.logs.List(ctx, page, limit)
	if err != nil {
		s.log.Error("activity log listing failed", zap.Error(err))
		return model.ActivityLogPage{
			Logs:  []model.ActivityLog{},
			Page:  validation.DefaultPage,
			Limit: validation.DefaultLimit,
		}
	}
	return model.ActivityLogPage{Logs: logs, Total: total, Page: page, Limit: limit}
}
