package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"snop_backend/internals/configs"
)

func TestTodayKey(t *testing.T) {
	// 23:30 di Oslo (UTC+2) = 21:30 UTC hari yang sama
	loc := time.FixedZone("CEST", 2*3600)
	local := time.Date(2025, 7, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-07-15", TodayKey(local))

	// 01:30 Oslo = 23:30 UTC hari SEBELUMNYA
	early := time.Date(2025, 7, 16, 1, 30, 0, 0, loc)
	assert.Equal(t, "2025-07-15", TodayKey(early))
}

func TestCanAttempt(t *testing.T) {
	tests := []struct {
		name  string
		count int
		limit int
		want  bool
	}{
		{"tanpa batas", 99, -1, true},
		{"di bawah limit", 2, 3, true},
		{"tepat di limit", 3, 3, false},
		{"lewat limit", 4, 3, false},
		{"limit nol", 0, 0, false},
		// penegakan di submit memberi jumlah attempt yang digrade,
		// jadi jawaban salah pun menghabiskan slot tipe yang dibatasi
		{"attempt salah ikut menghabiskan slot", 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAttempt(tt.count, tt.limit))
		})
	}
}

func TestEffectiveLimit(t *testing.T) {
	cfg := configs.GamificationConfig{
		DailyLimits: map[string]int{
			"irl":             -1,
			"pronunciation":   -1,
			"multiple_choice": 5,
		},
	}

	// IRL: unlimited di config tetap jadi slot tunggal
	assert.Equal(t, 1, EffectiveLimit(cfg, "irl"))
	// tipe lain ikut config apa adanya
	assert.Equal(t, -1, EffectiveLimit(cfg, "pronunciation"))
	assert.Equal(t, 5, EffectiveLimit(cfg, "multiple_choice"))

	// IRL dengan limit eksplisit tidak dioverride
	cfg.DailyLimits["irl"] = 3
	assert.Equal(t, 3, EffectiveLimit(cfg, "irl"))
}
