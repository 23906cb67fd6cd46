package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name        string
		last        *time.Time
		current     int
		longest     int
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name: "attempt pertama", last: nil, current: 0, longest: 0,
			now: ts(2025, 7, 10, 9), wantCurrent: 1, wantLongest: 1,
		},
		{
			name: "hari berikutnya +1",
			last: ptr(ts(2025, 7, 9, 23)), current: 4, longest: 4,
			now: ts(2025, 7, 10, 1), wantCurrent: 5, wantLongest: 5,
		},
		{
			name: "hari yang sama tidak berubah",
			last: ptr(ts(2025, 7, 10, 8)), current: 5, longest: 7,
			now: ts(2025, 7, 10, 22), wantCurrent: 5, wantLongest: 7,
		},
		{
			name: "bolong dua hari reset ke 1",
			last: ptr(ts(2025, 7, 7, 12)), current: 9, longest: 9,
			now: ts(2025, 7, 10, 12), wantCurrent: 1, wantLongest: 9,
		},
		{
			name: "longest tidak pernah turun",
			last: ptr(ts(2025, 7, 9, 12)), current: 2, longest: 30,
			now: ts(2025, 7, 10, 12), wantCurrent: 3, wantLongest: 30,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, lng := NextStreak(tt.last, tt.current, tt.longest, tt.now)
			assert.Equal(t, tt.wantCurrent, cur)
			assert.Equal(t, tt.wantLongest, lng)
		})
	}
}

func TestNextStreak_IdempotentDalamSehari(t *testing.T) {
	last := ptr(ts(2025, 7, 9, 10))
	now := ts(2025, 7, 10, 8)

	cur, lng := NextStreak(last, 3, 3, now)
	assert.Equal(t, 4, cur)
	assert.Equal(t, 4, lng)

	// submit kedua di hari yang sama: tidak naik lagi
	later := ts(2025, 7, 10, 20)
	cur2, lng2 := NextStreak(&now, cur, lng, later)
	assert.Equal(t, 4, cur2)
	assert.Equal(t, 4, lng2)
}

func ptr(t time.Time) *time.Time { return &t }
