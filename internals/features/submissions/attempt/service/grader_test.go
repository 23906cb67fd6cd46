package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketPronunciationScore(t *testing.T) {
	tests := []struct {
		similarity float64
		want       float64
	}{
		{1.00, 1.0},
		{0.95, 1.0},
		{0.94, 0.9},
		{0.85, 0.9},
		{0.84, 0.7},
		{0.70, 0.7},
		{0.69, 0.5},
		{0.50, 0.5},
		{0.49, 0.2},
		{0.00, 0.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketPronunciationScore(tt.similarity), "similarity %.2f", tt.similarity)
	}
}

func TestFrequencyMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, FrequencyMultiplier("daily"))
	assert.Equal(t, 1.5, FrequencyMultiplier("weekly"))
	assert.Equal(t, 2.0, FrequencyMultiplier("monthly"))
	// frekuensi tak dikenal jatuh ke 1×
	assert.Equal(t, 1.0, FrequencyMultiplier(""))
	assert.Equal(t, 1.0, FrequencyMultiplier("yearly"))
}

func TestComputeXP(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		factor float64
		mult   float64
		want   int
	}{
		{"benar daily", 10, 1.0, 1.0, 10},
		{"benar weekly", 15, 1.0, 1.5, 22},
		{"salah 50%", 10, 0.5, 1.0, 5},
		{"pronunciation 0.9 weekly truncate", 15, 0.9, 1.5, 20}, // 20.25 -> 20
		{"pronunciation 0.2 daily", 20, 0.2, 1.0, 4},
		{"base negatif", -5, 1.0, 1.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeXP(tt.base, tt.factor, tt.mult))
		})
	}
}

func TestDiscreteFactor(t *testing.T) {
	assert.Equal(t, 1.0, DiscreteFactor(true))
	assert.Equal(t, 0.5, DiscreteFactor(false))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		photoOK  bool
		textOK   bool
		wantTier string
		wantMult float64
	}{
		// bronze adalah dasar: tanpa bukti terverifikasi tetap selesai
		{"tanpa bukti terverifikasi", false, false, "bronze", 0.2},
		{"foto saja", true, false, "silver", 0.5},
		{"teks saja", false, true, "silver", 0.5},
		{"foto dan teks", true, true, "gold", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, mult := tierFor(tt.photoOK, tt.textOK, 0.2, 0.5, 1.0)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantMult, mult)
		})
	}
}

func TestModeEnabled(t *testing.T) {
	assert.True(t, modeEnabled([]string{"photo", "text"}, "photo"))
	assert.False(t, modeEnabled([]string{"photo", "text"}, "gps"))
	// soal lama tanpa modes menerima semua bukti
	assert.True(t, modeEnabled(nil, "gps"))
}
