package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimeLayout is the second-precision local timestamp written to the journal
const TimeLayout = "2006-01-02T15:04:05"

// FocusChangeRecord is one line of the focus journal
type FocusChangeRecord struct {
	Time        time.Time
	ProcessName *string
	Hostname    string
	WindowTitle *string
}

// NewFocusChangeRecord stamps a record at second precision
func NewFocusChangeRecord(at time.Time, hostname string, processName, windowTitle *string) *FocusChangeRecord {
	return &FocusChangeRecord{
		Time:        at.Truncate(time.Second),
		ProcessName: processName,
		Hostname:    hostname,
		WindowTitle: windowTitle,
	}
}

// recordLine is the on-disk shape used when reading lines back
type recordLine struct {
	Time        string  `json:"time"`
	ProcessName *string `json:"process_name"`
	Hostname    string  `json:"hostname"`
	WindowTitle *string `json:"window_title"`
}

// Encode renders the record as a single JSON line without the trailing newline.
// Keys are separated with ", " and ": " and non-ASCII text is kept as UTF-8.
func (r *FocusChangeRecord) Encode() ([]byte, error) {
	fields := []struct {
		key   string
		value any
	}{
		{"time", r.Time.Format(TimeLayout)},
		{"process_name", r.ProcessName},
		{"hostname", r.Hostname},
		{"window_title", r.WindowTitle},
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, err := encodeValue(f.key)
		if err != nil {
			return nil, err
		}
		value, err := encodeValue(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeRecord parses one journal line, interpreting the timestamp as local time
func DecodeRecord(line []byte) (*FocusChangeRecord, error) {
	var raw recordLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, err
	}

	at, err := time.ParseInLocation(TimeLayout, raw.Time, time.Local)
	if err != nil {
		return nil, err
	}

	return &FocusChangeRecord{
		Time:        at,
		ProcessName: raw.ProcessName,
		Hostname:    raw.Hostname,
		WindowTitle: raw.WindowTitle,
	}, nil
}
