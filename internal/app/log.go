package app

import (
	"fmt"
	"time"
)

// LogLevel classifies an in-app log entry.
type LogLevel string

const (
	LogInfo    LogLevel = "INFO"
	LogSuccess LogLevel = "SUCCESS"
	LogWarning LogLevel = "WARNING"
	LogError   LogLevel = "ERROR"
)

// Log is one entry of the in-app log pane, also published over the logs
// pipe.
type Log struct {
	Level   LogLevel
	Message string
	Time    time.Time
}

// NewLog stamps a log entry with the current time.
func NewLog(level LogLevel, message string) Log {
	return Log{Level: level, Message: message, Time: time.Now()}
}

func (l Log) String() string {
	return fmt.Sprintf("[%s] %s %s", l.Time.Format("2006-01-02 15:04:05"), l.Level, l.Message)
}
