package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is any managed resource with a stable integer identity.
type Record interface {
	RecordID() int64
}

// timestampLayouts are tried in order when decoding API timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a lenient API time value. Missing or unparseable values
// decode without error and report Valid == false.
type Timestamp struct {
	Time  time.Time
	Valid bool

	// floating is set when the API sent no zone offset
	floating bool
}

// NewTimestamp wraps t as a valid timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// Get returns the time and whether it was present and parseable.
func (t Timestamp) Get() (time.Time, bool) {
	return t.Time, t.Valid
}

// In returns the time with zone-less API values read as wall clock time in
// loc. Values that carried an offset are returned unchanged.
func (t Timestamp) In(loc *time.Location) (time.Time, bool) {
	if !t.Valid {
		return time.Time{}, false
	}
	if !t.floating || loc == nil {
		return t.Time, true
	}
	w := t.Time
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc), true
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null, numbers and other shapes are tolerated as absent
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = Timestamp{Time: parsed, Valid: true, floating: layout != time.RFC3339Nano}
			return nil
		}
	}
	return nil
}

// Flag is a boolean that also accepts the 0/1 and "0"/"1" encodings
// some backend endpoints return.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	switch string(data) {
	case "", "null":
		*f = false
		return nil
	}
	if b, err := strconv.ParseBool(string(data)); err == nil {
		*f = Flag(b)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = false
		return nil
	}
	*f = n != 0
	return nil
}

// Named is the {id, name} shape used for embedded relations.
type Named struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// UnknownLabel is shown when a relation cannot be resolved.
const UnknownLabel = "Unknown"
