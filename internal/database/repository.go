package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"focuslog/internal/models"
)

// Repository mirrors focus change records into SQLite
type Repository struct {
	db      *DB
	logFile func(time.Time) string
}

// NewRepository creates a repository; logFile names the journal file a record belongs to
func NewRepository(db *DB, logFile func(time.Time) string) *Repository {
	return &Repository{db: db, logFile: logFile}
}

// Append inserts one record
func (r *Repository) Append(record *models.FocusChangeRecord) error {
	logFile := ""
	if r.logFile != nil {
		logFile = r.logFile(record.Time)
	}

	result := r.db.Create(models.NewFocusChange(record, logFile))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert focus change")
	}
	return nil
}

// Count returns the number of mirrored records
func (r *Repository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.FocusChange{}).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to count focus changes")
	}
	return count, nil
}

// GetLatest retrieves the most recent focus change, or nil when there is none
func (r *Repository) GetLatest() (*models.FocusChange, error) {
	var change models.FocusChange
	result := r.db.Order("timestamp DESC, id DESC").First(&change)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest focus change")
	}
	return &change, nil
}
