package hybrid

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"focuslog/pkg/window"
)

// RecheckInterval bounds how often unavailable detectors are probed again
const RecheckInterval = 5 * time.Second

// Detector tries a list of window detectors in order and returns the first answer.
// Detectors that were unavailable are kept and probed again when nothing answers.
type Detector struct {
	detectors []window.Detector
	pending   []window.Detector

	now         func() time.Time
	lastRecheck time.Time

	lastSuccessfulMethod string
}

// NewDetector splits candidates into available and pending, keeping their order
func NewDetector(candidates ...window.Detector) (*Detector, error) {
	d := &Detector{now: time.Now}

	for _, det := range candidates {
		if det == nil {
			continue
		}
		if det.IsAvailable() {
			d.detectors = append(d.detectors, det)
			log.Printf("Window detector available: %s", det.GetDisplayServer())
			continue
		}
		d.pending = append(d.pending, det)
	}

	if len(d.detectors) == 0 {
		d.closePending()
		return nil, fmt.Errorf("no window detector available on this system")
	}

	d.lastRecheck = d.now()
	return d, nil
}

// GetFocusedWindow asks each detector in turn
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	info, err := d.query(d.detectors)
	if err == nil {
		return info, nil
	}

	if promoted := d.recheck(); len(promoted) > 0 {
		info, perr := d.query(promoted)
		if perr == nil {
			return info, nil
		}
		err = errors.Join(err, perr)
	}
	return nil, err
}

func (d *Detector) query(detectors []window.Detector) (*window.WindowInfo, error) {
	var errs []error

	for _, det := range detectors {
		info, err := det.GetFocusedWindow()
		if err == nil && info != nil {
			d.lastSuccessfulMethod = det.GetDisplayServer()
			return info, nil
		}
		if err == nil {
			err = fmt.Errorf("no window information")
		}
		errs = append(errs, fmt.Errorf("%s: %w", det.GetDisplayServer(), err))
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("no window detector to query")
	}
	return nil, errors.Join(errs...)
}

// recheck moves pending detectors that became available into the chain
func (d *Detector) recheck() []window.Detector {
	if len(d.pending) == 0 || d.now().Sub(d.lastRecheck) < RecheckInterval {
		return nil
	}
	d.lastRecheck = d.now()

	var promoted, still []window.Detector
	for _, det := range d.pending {
		if det.IsAvailable() {
			log.Printf("Window detector became available: %s", det.GetDisplayServer())
			promoted = append(promoted, det)
			continue
		}
		still = append(still, det)
	}
	d.pending = still
	d.detectors = append(d.detectors, promoted...)
	return promoted
}

func (d *Detector) IsAvailable() bool {
	return len(d.detectors) > 0
}

// GetDisplayServer reports the detector that answered last, or the preferred one
func (d *Detector) GetDisplayServer() string {
	if d.lastSuccessfulMethod != "" {
		return d.lastSuccessfulMethod
	}
	if len(d.detectors) > 0 {
		return d.detectors[0].GetDisplayServer()
	}
	return "unknown"
}

// GetStatus describes the chain for the status command
func (d *Detector) GetStatus() string {
	var sb strings.Builder
	for i, det := range d.detectors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, det.GetDisplayServer())
	}
	for _, det := range d.pending {
		fmt.Fprintf(&sb, "  -  %s (unavailable)\n", det.GetDisplayServer())
	}
	if d.lastSuccessfulMethod != "" {
		fmt.Fprintf(&sb, "  Last successful method: %s\n", d.lastSuccessfulMethod)
	}
	return sb.String()
}

func (d *Detector) closePending() {
	for _, det := range d.pending {
		if err := det.Close(); err != nil {
			log.Printf("Error closing unavailable %s detector: %v", det.GetDisplayServer(), err)
		}
	}
	d.pending = nil
}

func (d *Detector) Close() error {
	var errs []error
	for _, det := range d.detectors {
		if err := det.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closePending()
	return errors.Join(errs...)
}
