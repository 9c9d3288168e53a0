package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetersToMiles(t *testing.T) {
	assert.InDelta(t, 1.0, MetersToMiles(1609.34), 0.01)
	assert.Equal(t, 1.0, MetersToMiles(1609.34))
	assert.Equal(t, 3.11, MetersToMiles(5000.5))
	assert.Equal(t, 6.21, MetersToMiles(10000))
	assert.Equal(t, 0.0, MetersToMiles(0))
}

func TestSecondsToHMS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SecondsToHMS(tc.seconds), "SecondsToHMS(%d)", tc.seconds)
	}
}

func TestPace(t *testing.T) {
	tests := []struct {
		name   string
		moving int64
		meters float64
		want   string
	}{
		{name: "ten minute mile", moving: 600, meters: 1609.34, want: "10:00"},
		{name: "partial minute truncated", moving: 659, meters: 1609.34, want: "10:00"},
		{name: "three miles", moving: 1500, meters: 4828.03, want: "8:20"},
		{name: "ten k", moving: 2400, meters: 10000, want: "6:26"},
		{name: "seconds carry into minutes", moving: 1860, meters: 10000, want: "5:00"},
		{name: "zero distance", moving: 600, meters: 0, want: NoPace},
		{name: "distance rounds to zero miles", moving: 600, meters: 3, want: NoPace},
		{name: "not moving", moving: 0, meters: 1609.34, want: "0:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Pace(tc.moving, tc.meters))
		})
	}
}
