package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ActivityLogRepo stores audited requests in activity_logs.
type ActivityLogRepo struct {
	db *sql.DB
}

func NewActivityLogRepo(db *sql.DB) *ActivityLogRepo { return &ActivityLogRepo{db: db} }

const activityColumns = "id, activity_type, method, url, status_code, ip, user_agent, user_id, user_email, role, " +
	"request_body, query_params, route_params, response_body, duration_ms, created_at"

func rawArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// Create inserts l.  An empty id or creation time is filled in; a row whose
// id already exists yields ErrDuplicate so redelivered entries can be
// acknowledged without being stored twice.
func (r *ActivityLogRepo) Create(ctx context.Context, l *model.ActivityLog) error {
	if l.ID == "" {
		l.ID = model.NewID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = model.Now()
	}
	if l.ActivityType == "" {
		l.ActivityType = model.ActivityTypeRequest
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_logs ("+activityColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.ID, l.ActivityType, l.Method, l.URL, l.StatusCode, l.IP, l.UserAgent, l.UserID, l.UserEmail, l.Role,
		rawArg(l.RequestBody), rawArg(l.Query), rawArg(l.Params), rawArg(l.ResponseBody),
		l.DurationMs, l.CreatedAt)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// List returns one page of logs, newest first, and the total count.
func (r *ActivityLogRepo) List(ctx context.Context, page, limit int) ([]model.ActivityLog, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity_logs").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+activityColumns+" FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, model.PageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.ActivityLog, 0, model.PageCap(limit))
	for rows.Next() {
		var (
			l                            model.ActivityLog
			reqBody, query, params, resp []byte
		)
		if err := rows.Scan(&l.ID, &l.ActivityType, &l.Method, &l.URL, &l.StatusCode, &l.IP, &l.UserAgent,
			&l.UserID, &l.UserEmail, &l.Role, &reqBody, &query, &params, &resp, &l.DurationMs, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		l.RequestBody = rawOrNull(reqBody)
		l.Query = rawOrNull(query)
		l.Params = rawOrNull(params)
		l.ResponseBody = rawOrNull(resp)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func rawOrNull(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(append([]byte(nil), b...))
}
