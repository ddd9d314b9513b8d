//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "integer", input: `42`, want: "42"},
		{name: "string", input: `"abc-123"`, want: "abc-123"},
		{name: "null", input: `null`, want: ""},
		{name: "bool rejected", input: `true`, wantErr: true},
		{name: "object rejected", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantZero bool
		wantDay  int
		wantErr  bool
	}{
		{name: "rfc3339", input: `"2024-01-15T10:00:00Z"`, wantDay: 15},
		{name: "fractional with offset", input: `"2024-01-10T08:30:00.123+00:00"`, wantDay: 10},
		{name: "no zone", input: `"2024-01-08T08:30:00.123456"`, wantDay: 8},
		{name: "date only", input: `"2024-01-05"`, wantDay: 5},
		{name: "null", input: `null`, wantZero: true},
		{name: "empty", input: `""`, wantZero: true},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12345`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantZero {
				assert.True(t, ts.IsZero())
				return
			}
			assert.Equal(t, tt.wantDay, ts.Day())
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(Timestamp{Time: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15T00:00:00Z"`, string(data))
}
