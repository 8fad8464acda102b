package tracker

import (
	"fmt"
	"log"
	"time"

	"focuslog/pkg/window"
)

// ReopenInterval bounds how often a missing detector is rebuilt
const ReopenInterval = 2 * time.Second

// Opener builds a detector for the current session
type Opener func() (window.Detector, error)

// Sampler turns detector answers into focus samples. It never fails: every
// problem with the OS query becomes an unknown sample.
type Sampler struct {
	detector window.Detector
	open     Opener
	now      func() time.Time
	lastOpen time.Time
	lastErr  string
}

// NewSampler samples through a fixed detector
func NewSampler(detector window.Detector) *Sampler {
	return &Sampler{detector: detector, now: time.Now}
}

// NewOpeningSampler builds its detector with open and keeps retrying while
// none is available, so a display that appears later is picked up.
func NewOpeningSampler(open Opener) *Sampler {
	s := &Sampler{open: open, now: time.Now}
	s.reopen(true)
	return s
}

// Detector returns the detector in use, nil while none could be opened
func (s *Sampler) Detector() window.Detector {
	return s.detector
}

func (s *Sampler) reopen(force bool) {
	if s.detector != nil || s.open == nil {
		return
	}
	if !force && s.now().Sub(s.lastOpen) < ReopenInterval {
		return
	}
	s.lastOpen = s.now()

	det, err := s.open()
	if err != nil {
		s.noteFailure(fmt.Errorf("window detector unavailable: %w", err))
		return
	}
	s.detector = det
	log.Printf("Window detector initialized: %s", det.GetDisplayServer())
}

// Sample queries the focused window once
func (s *Sampler) Sample() (sample window.FocusSample) {
	s.reopen(false)
	if s.detector == nil {
		return window.UnknownSample()
	}

	defer func() {
		if r := recover(); r != nil {
			s.noteFailure(fmt.Errorf("detector panic: %v", r))
			sample = window.UnknownSample()
		}
	}()

	info, err := s.detector.GetFocusedWindow()
	if err != nil {
		s.noteFailure(err)
		return window.UnknownSample()
	}
	if info == nil || info.ProcessName == "" {
		s.noteFailure(fmt.Errorf("no window information available"))
		return window.UnknownSample()
	}

	s.lastErr = ""
	return window.SampleOf(info)
}

// Close releases the detector
func (s *Sampler) Close() error {
	if s.detector == nil {
		return nil
	}
	err := s.detector.Close()
	s.detector = nil
	return err
}

// noteFailure logs a query failure once until a different one occurs
func (s *Sampler) noteFailure(err error) {
	if msg := err.Error(); msg != s.lastErr {
		s.lastErr = msg
		log.Printf("Focus query failed: %v", err)
	}
}
