package types

import "time"

// LogEntry is a sanitized request/response pair queued for the async logger.
// UserID is nil for unauthenticated requests.
type LogEntry struct {
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	LatencyMs       int64
	UserID          *uint
	CreatedAt       time.Time
}
