// Package journal appends focus change records to one line-delimited JSON
// file per local calendar day.
package journal

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"focuslog/internal/models"
)

const (
	filePrefix = "focus_log_"
	fileExt    = ".txt"
	dateLayout = "20060102"
)

// Journal is the append-only, date-partitioned focus log
type Journal struct {
	dir  string
	echo io.Writer
	now  func() time.Time
}

// Option configures a Journal
type Option func(*Journal)

// WithEcho mirrors every appended line to w
func WithEcho(w io.Writer) Option {
	return func(j *Journal) {
		j.echo = w
	}
}

// WithClock replaces time.Now for choosing the day file
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// New creates a journal rooted at dir. Nothing is touched on disk until the
// first Append.
func New(dir string, opts ...Option) *Journal {
	j := &Journal{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Dir returns the log directory
func (j *Journal) Dir() string {
	return j.dir
}

// Path returns the day file that a write at t goes to
func (j *Journal) Path(t time.Time) string {
	return filepath.Join(j.dir, filePrefix+t.Format(dateLayout)+fileExt)
}

// CurrentPath is the file the next Append would write to
func (j *Journal) CurrentPath() string {
	return j.Path(j.now())
}

// Append durably writes one record as a line to today's file. Any failure
// is returned; the record is not retried.
func (j *Journal) Append(record *models.FocusChangeRecord) error {
	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create log directory %s", j.dir)
	}

	line, err := record.Encode()
	if err != nil {
		return errors.Wrap(err, "failed to encode focus change")
	}
	line = append(line, '\n')

	if j.echo != nil {
		if _, err := j.echo.Write(line); err != nil {
			log.Printf("Failed to echo focus change: %v", err)
		}
	}

	// The day is taken at write time so a session crossing midnight rolls over
	return appendLine(j.CurrentPath(), line)
}

func appendLine(path string, line []byte) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	if _, err := f.Write(line); err != nil {
		return errors.Wrapf(err, "failed to append to %s", path)
	}
	if err := f.Sync(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}

	return nil
}

// Tail returns up to n of the most recent records in the file for day.
// A missing file yields no records.
func (j *Journal) Tail(day time.Time, n int) ([]*models.FocusChangeRecord, error) {
	path := j.Path(day)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	var records []*models.FocusChangeRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		record, err := models.DecodeRecord(scanner.Bytes())
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: malformed record", path, lineNo)
		}
		records = append(records, record)
		if n > 0 && len(records) > n {
			records = records[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return records, nil
}
