package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange_Month(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		timeMin string
		timeMax string
	}{
		{
			name:    "30 day month",
			now:     time.Date(2023, 9, 19, 15, 4, 5, 0, time.UTC),
			timeMin: "2023-09-01T00:00:00Z",
			timeMax: "2023-09-30T23:59:59.999999Z",
		},
		{
			name:    "leap february",
			now:     time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC),
			timeMin: "2024-02-01T00:00:00Z",
			timeMax: "2024-02-29T23:59:59.999999Z",
		},
		{
			name:    "last day of the year",
			now:     time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC),
			timeMin: "2023-12-01T00:00:00Z",
			timeMax: "2023-12-31T23:59:59.999999Z",
		},
		{
			name:    "31st of a 31 day month",
			now:     time.Date(2023, 1, 31, 12, 0, 0, 0, time.UTC),
			timeMin: "2023-01-01T00:00:00Z",
			timeMax: "2023-01-31T23:59:59.999999Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveRange(tt.now, RangeMonth)
			require.NoError(t, err)
			assert.Equal(t, tt.timeMin, r.TimeMin())
			assert.Equal(t, tt.timeMax, r.TimeMax())
		})
	}
}

func TestResolveRange_Week(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		timeMin string
		timeMax string
	}{
		{
			name:    "tuesday",
			now:     time.Date(2023, 9, 19, 10, 0, 0, 0, time.UTC),
			timeMin: "2023-09-18T00:00:00Z",
			timeMax: "2023-09-24T23:59:59.999999Z",
		},
		{
			name:    "monday is the start",
			now:     time.Date(2023, 9, 18, 0, 0, 0, 0, time.UTC),
			timeMin: "2023-09-18T00:00:00Z",
			timeMax: "2023-09-24T23:59:59.999999Z",
		},
		{
			name:    "sunday belongs to the previous monday",
			now:     time.Date(2023, 9, 24, 23, 0, 0, 0, time.UTC),
			timeMin: "2023-09-18T00:00:00Z",
			timeMax: "2023-09-24T23:59:59.999999Z",
		},
		{
			name:    "week across months",
			now:     time.Date(2023, 10, 1, 9, 0, 0, 0, time.UTC),
			timeMin: "2023-09-25T00:00:00Z",
			timeMax: "2023-10-01T23:59:59.999999Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveRange(tt.now, RangeWeek)
			require.NoError(t, err)
			assert.Equal(t, tt.timeMin, r.TimeMin())
			assert.Equal(t, tt.timeMax, r.TimeMax())
		})
	}
}

func TestResolveRange_NormalizesToUTC(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2023, 9, 1, 0, 30, 0, 0, cest)

	r, err := ResolveRange(now, RangeMonth)
	require.NoError(t, err)
	assert.Equal(t, "2023-08-31T22:00:00Z", r.TimeMin())
	assert.Equal(t, "2023-09-30T21:59:59.999999Z", r.TimeMax())
}

func TestResolveRange_InvalidType(t *testing.T) {
	_, err := ResolveRange(time.Now(), RangeType("year"))
	assert.ErrorIs(t, err, ErrInvalidRangeType)
}

func TestRangeType_Set(t *testing.T) {
	rt := DefaultRangeType

	require.NoError(t, rt.Set("week"))
	assert.Equal(t, RangeWeek, rt)

	err := rt.Set("fortnight")
	assert.ErrorIs(t, err, ErrInvalidRangeType)
	assert.Equal(t, RangeWeek, rt, "failed Set must not change the value")
	assert.Equal(t, "week", rt.String())
}
