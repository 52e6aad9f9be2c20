package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampIn(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)

	var ts struct {
		Plain  Timestamp `json:"plain"`
		Zoned  Timestamp `json:"zoned"`
		Absent Timestamp `json:"absent"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"plain":"2024-05-01 23:30:00","zoned":"2024-05-01T23:30:00Z","absent":null}`), &ts))

	got, ok := ts.Plain.In(zone)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 30, 0, 0, zone), got)

	got, ok = ts.Zoned.In(zone)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)))

	_, ok = ts.Absent.In(zone)
	assert.False(t, ok)

	built := NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	got, _ = built.In(zone)
	assert.True(t, got.Equal(built.Time))
}

func TestFlagAcceptsNumericEncodings(t *testing.T) {
	var v struct {
		A, B, C, D Flag
	}
	require.NoError(t, json.Unmarshal([]byte(`{"A":1,"B":"0","C":true,"D":null}`), &v))
	assert.True(t, bool(v.A))
	assert.False(t, bool(v.B))
	assert.True(t, bool(v.C))
	assert.False(t, bool(v.D))
}
