package types

import "time"

// LogEntry is one request/response pair captured for the async request
// logger. All fields are deep copies; nothing here may alias fasthttp
// buffers.
type LogEntry struct {
	ID              uint
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}
