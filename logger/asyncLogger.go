package logger

import (
	"log"

	log_model "patient-followup/models/log"
	"patient-followup/types"

	"gorm.io/gorm"
)

// AsyncLogger persists HTTP request logs off the request path. Entries flow
// through a buffered channel into a single writer goroutine; a full buffer
// drops the entry rather than stalling a handler.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel and writes each entry to the logs table.
// Run it in its own goroutine; it exits when the channel is closed.
func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous request logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert request log entry: %v", err)
		}
	}
}

// Log enqueues one entry without blocking the caller.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
		log.Printf("Request log buffer full, dropping entry for %s %s", entry.Method, entry.URL)
	}
}
