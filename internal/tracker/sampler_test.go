package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuslog/pkg/window"
)

type scriptedDetector struct {
	answers []answer
	calls   int
	closed  bool
}

type answer struct {
	info  *window.WindowInfo
	err   error
	panic bool
}

func (d *scriptedDetector) GetFocusedWindow() (*window.WindowInfo, error) {
	a := d.answers[d.calls%len(d.answers)]
	d.calls++
	if a.panic {
		panic("binding exploded")
	}
	return a.info, a.err
}

func (d *scriptedDetector) IsAvailable() bool        { return true }
func (d *scriptedDetector) GetDisplayServer() string { return "test" }
func (d *scriptedDetector) Close() error             { d.closed = true; return nil }

func TestSampleSuccess(t *testing.T) {
	det := &scriptedDetector{answers: []answer{
		{info: &window.WindowInfo{ProcessName: "kitty", WindowTitle: "vim"}},
	}}

	s := NewSampler(det).Sample()

	require.False(t, s.IsUnknown())
	assert.Equal(t, "kitty", *s.ProcessName)
	assert.Equal(t, "vim", *s.WindowTitle)
}

func TestSampleFailuresBecomeUnknown(t *testing.T) {
	tests := []struct {
		name   string
		answer answer
	}{
		{"Error", answer{err: errors.New("process exited")}},
		{"Nil info", answer{}},
		{"Empty process name", answer{info: &window.WindowInfo{WindowTitle: "orphan"}}},
		{"Panic", answer{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := &scriptedDetector{answers: []answer{tt.answer}}

			s := NewSampler(det).Sample()

			assert.True(t, s.IsUnknown())
			assert.Nil(t, s.WindowTitle)
		})
	}
}

func TestSampleWithoutDetector(t *testing.T) {
	assert.True(t, NewSampler(nil).Sample().IsUnknown())
}

func TestSampleRecoversAfterFailure(t *testing.T) {
	det := &scriptedDetector{answers: []answer{
		{err: errors.New("no foreground window")},
		{info: &window.WindowInfo{ProcessName: "firefox"}},
	}}
	sampler := NewSampler(det)

	assert.True(t, sampler.Sample().IsUnknown())
	assert.Equal(t, "no foreground window", sampler.lastErr)

	s := sampler.Sample()
	require.False(t, s.IsUnknown())
	assert.Equal(t, "firefox", *s.ProcessName)
	assert.Empty(t, sampler.lastErr)
}

func TestOpeningSamplerRetriesUntilDetectorAppears(t *testing.T) {
	det := &scriptedDetector{answers: []answer{
		{info: &window.WindowInfo{ProcessName: "xterm", WindowTitle: "bash"}},
	}}
	opens := 0
	open := func() (window.Detector, error) {
		opens++
		if opens == 1 {
			return nil, errors.New("cannot open display")
		}
		return det, nil
	}

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	sampler := &Sampler{open: open, now: func() time.Time { return clock }}
	sampler.reopen(true)
	require.Nil(t, sampler.Detector())

	assert.True(t, sampler.Sample().IsUnknown())
	assert.Equal(t, 1, opens, "reopened before the retry interval")

	clock = clock.Add(ReopenInterval)
	s := sampler.Sample()
	require.False(t, s.IsUnknown())
	assert.Equal(t, "xterm", *s.ProcessName)
	assert.Equal(t, 2, opens)

	clock = clock.Add(ReopenInterval)
	sampler.Sample()
	assert.Equal(t, 2, opens, "reopened while a detector is in use")

	require.NoError(t, sampler.Close())
	assert.True(t, det.closed)
}

func TestOpeningSamplerKeepsWorkingDetector(t *testing.T) {
	det := &scriptedDetector{answers: []answer{
		{info: &window.WindowInfo{ProcessName: "code"}},
	}}
	sampler := NewOpeningSampler(func() (window.Detector, error) { return det, nil })

	require.Equal(t, det, sampler.Detector())
	assert.Equal(t, "code", *sampler.Sample().ProcessName)
}
