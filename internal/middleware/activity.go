package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ActivityRecorder accepts entries without blocking.  *activity.Recorder
// implements it.
type ActivityRecorder interface {
	Record(l *model.ActivityLog)
}

// captureWriter copies up to limit bytes of the response body while
// forwarding everything to the client.
type captureWriter struct {
	http.ResponseWriter
	buf   bytes.Buffer
	limit int64
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if remain := cw.limit - int64(cw.buf.Len()); remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *captureWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Activity records every exchange after the response has been written.
// Errors returned by the chain are rendered here so the entry carries the
// final status and body.  Bodies are kept up to limit bytes each; a
// truncated body is stored as a string.
func Activity(rec ActivityRecorder, limit int64) echo.MiddlewareFunc {
	if limit <= 0 {
		limit = 64 << 10
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			at := model.Now()
			req := c.Request()

			reqBody, err := readBody(req)
			cw := &captureWriter{ResponseWriter: c.Response().Writer, limit: limit}
			c.Response().Writer = cw

			if err == nil {
				err = next(c)
			}
			if err != nil {
				c.Error(err)
			}

			entry := &model.ActivityLog{
				ID:           model.NewID(),
				ActivityType: model.ActivityTypeRequest,
				Method:       req.Method,
				URL:          req.RequestURI,
				StatusCode:   c.Response().Status,
				IP:           c.RealIP(),
				UserAgent:    req.UserAgent(),
				RequestBody:  requestJSON(reqBody, limit),
				Query:        queryJSON(req.URL.Query()),
				Params:       paramsJSON(c),
				ResponseBody: bodyJSON(cw.buf.Bytes()),
				DurationMs:   time.Since(start).Milliseconds(),
				CreatedAt:    at,
			}
			if entry.URL == "" {
				entry.URL = req.URL.RequestURI()
			}
			if id, ok := IdentityFrom(c); ok {
				entry.UserID, entry.UserEmail, entry.Role = id.UserID, id.Email, id.Role
			}
			rec.Record(entry)
			return nil
		}
	}
}

// readBody drains the request body and replaces it with an in-memory copy.
func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(raw))
	return raw, err
}

// requestJSON stores an empty body as {}.
func requestJSON(raw []byte, limit int64) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage(`{}`)
	}
	if int64(len(raw)) > limit {
		raw = raw[:limit]
	}
	return bodyJSON(raw)
}

// bodyJSON keeps valid JSON as is and wraps anything else as a JSON string.
func bodyJSON(raw []byte) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return append(json.RawMessage(nil), raw...)
	}
	b, _ := json.Marshal(string(raw))
	return b
}

// queryJSON flattens single-valued parameters to plain strings.
func queryJSON(q url.Values) json.RawMessage {
	m := make(map[string]interface{}, len(q))
	for k, vs := range q {
		if len(vs) == 1 {
			m[k] = vs[0]
		} else {
			m[k] = vs
		}
	}
	b, _ := json.Marshal(m)
	return b
}

func paramsJSON(c echo.Context) json.RawMessage {
	names, values := c.ParamNames(), c.ParamValues()
	m := make(map[string]string, len(names))
	for i, n := range names {
		if i < len(values) {
			m[n] = values[i]
		}
	}
	b, _ := json.Marshal(m)
	return b
}
