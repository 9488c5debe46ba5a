package logger

import (
	"sync"

	log_model "admission-portal/models/log"
	"admission-portal/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request log entries from a buffered channel so that
// handlers never wait on the database.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(db *gorm.DB, buffer int) *AsyncLogger {
	if buffer <= 0 {
		buffer = 100
	}
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, buffer),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)
	Info("Starting asynchronous request logger")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			UserID:          logEntry.UserID,
			LatencyMs:       logEntry.LatencyMs,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert request log entry", err)
		}
	}
}

// Log enqueues an entry. A full buffer drops the entry instead of blocking.
func (logger *AsyncLogger) Log(entry types.LogEntry) bool {
	select {
	case logger.channel <- entry:
		return true
	default:
		Warning("Request log buffer full, dropping entry for " + entry.Method + " " + entry.URL)
		return false
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (logger *AsyncLogger) Close() {
	logger.once.Do(func() {
		close(logger.channel)
	})
	<-logger.done
}
