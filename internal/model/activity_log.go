package model

import "encoding/json"

// ActivityTypeRequest is the only activity type recorded today.
const ActivityTypeRequest = "REQUEST"

// ActivityLog is one audited HTTP exchange, stored in `activity_logs`.
// Captured bodies are opaque JSON kept as received.
type ActivityLog struct {
	ID           string          `json:"Log-Id"`
	ActivityType string          `json:"Activity-Type"`
	Method       string          `json:"Method"`
	URL          string          `json:"Url"`
	StatusCode   int             `json:"Status-Code"`
	IP           string          `json:"Ip"`
	UserAgent    string          `json:"User-Agent"`
	UserID       string          `json:"User-Id"`
	UserEmail    string          `json:"User-Email"`
	Role         string          `json:"Role"`
	RequestBody  json.RawMessage `json:"Request-Body"`
	Query        json.RawMessage `json:"Query"`
	Params       json.RawMessage `json:"Params"`
	ResponseBody json.RawMessage `json:"Response-Body"`
	DurationMs   int64           `json:"Duration-Ms"`
	CreatedAt    Timestamp       `json:"Created-At"`
}

// ActivityLogPage is one page of the admin log listing.
type ActivityLogPage struct {
	Logs  []ActivityLog `json:"logs"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
