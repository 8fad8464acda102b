package models

import (
	"time"
)

// FocusChange mirrors a journal record in the SQLite index
type FocusChange struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	ProcessName *string   `gorm:"index" json:"process_name"`
	Hostname    string    `gorm:"not null" json:"hostname"`
	WindowTitle *string   `json:"window_title"`
	LogFile     string    `gorm:"not null" json:"log_file"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// NewFocusChange builds the row for a record written to logFile
func NewFocusChange(record *FocusChangeRecord, logFile string) *FocusChange {
	return &FocusChange{
		Timestamp:   record.Time,
		ProcessName: record.ProcessName,
		Hostname:    record.Hostname,
		WindowTitle: record.WindowTitle,
		LogFile:     logFile,
	}
}
