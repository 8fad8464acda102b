package tracker

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"focuslog/internal/models"
	"focuslog/pkg/window"
)

// Sink durably stores a focus change record
type Sink interface {
	Append(record *models.FocusChangeRecord) error
}

// ChangeLogger remembers the last process that held focus and records a
// change whenever a sample names a different one.
type ChangeLogger struct {
	hostname string
	sinks    []Sink
	now      func() time.Time

	// seen is false until the first sample, so even an unknown first sample
	// counts as a change
	seen bool
	last *string

	recorded int
}

// NewChangeLogger writes records to sinks in order; the first sink is the
// source of truth
func NewChangeLogger(hostname string, sinks ...Sink) *ChangeLogger {
	return &ChangeLogger{
		hostname: hostname,
		sinks:    sinks,
		now:      time.Now,
	}
}

// Observe compares a sample with the last seen process and records a change.
// A write failure is returned and must be treated as fatal.
func (c *ChangeLogger) Observe(sample window.FocusSample) error {
	if c.seen && sample.SameProcess(c.last) {
		return nil
	}

	c.seen = true
	c.last = sample.ProcessName

	record := models.NewFocusChangeRecord(c.now(), c.hostname, sample.ProcessName, sample.WindowTitle)
	for _, sink := range c.sinks {
		if err := sink.Append(record); err != nil {
			return errors.Wrapf(err, "failed to record focus change to %s", window.String(sample.ProcessName))
		}
	}

	c.recorded++
	log.Printf("Focus changed: %s", window.String(sample.ProcessName))
	return nil
}

// Recorded returns how many changes have been written
func (c *ChangeLogger) Recorded() int {
	return c.recorded
}

// Current returns the last observed process name and whether any sample was seen
func (c *ChangeLogger) Current() (*string, bool) {
	return c.last, c.seen
}
