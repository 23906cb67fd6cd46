package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snop_backend/internals/configs"
)

func testConfig() configs.GamificationConfig {
	return configs.GamificationConfig{
		Levels: map[string]configs.LevelRequirement{
			"A1": {Name: "Beginner", RequiredCompletions: 20, UnlockedByDefault: true},
			"A2": {Name: "Elementary", RequiredCompletions: 20},
			"B1": {Name: "Intermediate", RequiredCompletions: 25},
			"B2": {Name: "Upper Intermediate", RequiredCompletions: 25},
			"C1": {Name: "Advanced", RequiredCompletions: 30},
			"C2": {Name: "Mastery", RequiredCompletions: 30},
		},
	}
}

func TestInitialProgress(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := InitialProgress(testConfig(), now)

	assert.True(t, p["A1"].Unlocked)
	require.NotNil(t, p["A1"].UnlockedAt)
	assert.Equal(t, now, *p["A1"].UnlockedAt)

	for _, lvl := range []string{"A2", "B1", "B2", "C1", "C2"} {
		assert.False(t, p[lvl].Unlocked, lvl)
		assert.Zero(t, p[lvl].Completed, lvl)
	}
	assert.Equal(t, []string{"A1"}, UnlockedLevels(p))
}

func TestApplyCompletion_LevelUpPadaCompletionKe20(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	p := InitialProgress(cfg, now)

	// 19 completion pertama: belum naik level
	current := "A1"
	for i := 0; i < 19; i++ {
		var up bool
		p, current, up = ApplyCompletion(cfg, p, current, "A1", now)
		assert.False(t, up)
		assert.Equal(t, "A1", current)
	}
	assert.Equal(t, 19, p["A1"].Completed)
	assert.False(t, p["A2"].Unlocked)

	// completion ke-20: naik ke A2
	p, current, up := ApplyCompletion(cfg, p, current, "A1", now)
	assert.True(t, up)
	assert.Equal(t, "A2", current)
	assert.Equal(t, 20, p["A1"].Completed)
	assert.True(t, p["A2"].Unlocked)
	require.NotNil(t, p["A2"].UnlockedAt)
	assert.Equal(t, []string{"A1", "A2"}, UnlockedLevels(p))
}

func TestApplyCompletion_LevelLamaTidakMemicuTransisi(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	p := InitialProgress(cfg, now)

	// user sudah di A2; grinding A1 terus tidak pernah naik level
	st := p["A2"]
	st.Unlocked = true
	p["A2"] = st

	current := "A2"
	for i := 0; i < 50; i++ {
		var up bool
		p, current, up = ApplyCompletion(cfg, p, current, "A1", now)
		assert.False(t, up)
	}
	assert.Equal(t, "A2", current)
	assert.Equal(t, 50, p["A1"].Completed)
	assert.False(t, p["B1"].Unlocked)
}

func TestApplyCompletion_C2Terminal(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	p := InitialProgress(cfg, now)
	st := p["C2"]
	st.Unlocked = true
	st.Completed = 29
	p["C2"] = st

	p, current, up := ApplyCompletion(cfg, p, "C2", "C2", now)
	assert.False(t, up)
	assert.Equal(t, "C2", current)
	assert.Equal(t, 30, p["C2"].Completed)

	// counter terus jalan setelah syarat tercapai
	p, current, up = ApplyCompletion(cfg, p, current, "C2", now)
	assert.False(t, up)
	assert.Equal(t, "C2", current)
	assert.Equal(t, 31, p["C2"].Completed)
}

func TestApplyCompletion_LevelTidakValid(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	p := InitialProgress(cfg, now)

	p2, current, up := ApplyCompletion(cfg, p, "A1", "Z9", now)
	assert.False(t, up)
	assert.Equal(t, "A1", current)
	assert.Equal(t, p, p2)
}

func TestUnlockedLevels_SemuaLevelTerbuka(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	p := InitialProgress(cfg, now)
	for _, lvl := range []string{"A2", "B1"} {
		st := p[lvl]
		st.Unlocked = true
		p[lvl] = st
	}

	// pemilihan soal harian memakai daftar ini: SEMUA level terbuka
	// ikut, bukan cuma level aktif, dan level terkunci tidak bocor
	assert.Equal(t, []string{"A1", "A2", "B1"}, UnlockedLevels(p))
}

func TestProgressJSONRoundTrip(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	p := InitialProgress(cfg, now)
	p, _, _ = ApplyCompletion(cfg, p, "A1", "A1", now)

	raw, err := ProgressToJSON(p)
	require.NoError(t, err)

	decoded, err := ProgressFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, decoded["A1"].Completed)
	assert.True(t, decoded["A1"].Unlocked)
	require.NotNil(t, decoded["A1"].UnlockedAt)
	assert.True(t, decoded["A1"].UnlockedAt.Equal(now))
}

func TestProgressFromJSON_Kosong(t *testing.T) {
	p, err := ProgressFromJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, p)
}
