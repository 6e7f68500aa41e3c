// Package queue carries activity log entries over RabbitMQ.  The API server
// publishes one ActivityRecordedEvent per audited request and a consumer
// persists them, so a slow database never sits on the request path.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// DefaultActivityQueue is used when no queue name is configured.
const DefaultActivityQueue = "activity.recorded"

// ActivityRecordedEvent is the wire form of model.ActivityLog.  RecordedAt
// is RFC 3339 in UTC; the display format of model.Timestamp is not
// reversible.
type ActivityRecordedEvent struct {
	LogID        string          `json:"log_id"`
	ActivityType string          `json:"activity_type"`
	Method       string          `json:"method"`
	URL          string          `json:"url"`
	StatusCode   int             `json:"status_code"`
	IP           string          `json:"ip,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	UserID       string          `json:"user_id,omitempty"`
	UserEmail    string          `json:"user_email,omitempty"`
	Role         string          `json:"role,omitempty"`
	RequestBody  json.RawMessage `json:"request_body,omitempty"`
	Query        json.RawMessage `json:"query,omitempty"`
	Params       json.RawMessage `json:"params,omitempty"`
	ResponseBody json.RawMessage `json:"response_body,omitempty"`
	DurationMs   int64           `json:"duration_ms"`
	RecordedAt   string          `json:"recorded_at"`
}

// EventFromLog converts a log entry for publishing.  A zero CreatedAt is
// sent empty and filled in by the store on arrival.
func EventFromLog(l *model.ActivityLog) ActivityRecordedEvent {
	ev := ActivityRecordedEvent{
		LogID:        l.ID,
		ActivityType: l.ActivityType,
		Method:       l.Method,
		URL:          l.URL,
		StatusCode:   l.StatusCode,
		IP:           l.IP,
		UserAgent:    l.UserAgent,
		UserID:       l.UserID,
		UserEmail:    l.UserEmail,
		Role:         l.Role,
		RequestBody:  l.RequestBody,
		Query:        l.Query,
		Params:       l.Params,
		ResponseBody: l.ResponseBody,
		DurationMs:   l.DurationMs,
	}
	if !l.CreatedAt.IsZero() {
		ev.RecordedAt = l.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return ev
}

// Log converts the event back into a storable entry.
func (ev ActivityRecordedEvent) Log() (*model.ActivityLog, error) {
	l := &model.ActivityLog{
		ID:           ev.LogID,
		ActivityType: ev.ActivityType,
		Method:       ev.Method,
		URL:          ev.URL,
		StatusCode:   ev.StatusCode,
		IP:           ev.IP,
		UserAgent:    ev.UserAgent,
		UserID:       ev.UserID,
		UserEmail:    ev.UserEmail,
		Role:         ev.Role,
		RequestBody:  ev.RequestBody,
		Query:        ev.Query,
		Params:       ev.Params,
		ResponseBody: ev.ResponseBody,
		DurationMs:   ev.DurationMs,
	}
	if ev.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, ev.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("recorded_at: %w", err)
		}
		l.CreatedAt = model.Timestamp{Time: t.UTC()}
	}
	return l, nil
}
