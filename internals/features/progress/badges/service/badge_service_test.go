package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badgeIDs(badges []Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.ID)
	}
	return out
}

func TestEvaluateBadges_FirstChallenge(t *testing.T) {
	earned := EvaluateBadges(nil, BadgeStats{CompletedTotal: 1, XPTotal: 15})
	assert.Equal(t, []string{"first_challenge"}, badgeIDs(earned))
}

func TestEvaluateBadges_BeberapaSekaligus(t *testing.T) {
	st := BadgeStats{CompletedTotal: 1, XPTotal: 120, CurrentStreak: 3}
	earned := EvaluateBadges(nil, st)
	assert.ElementsMatch(t, []string{"first_challenge", "streak_3", "xp_100"}, badgeIDs(earned))
}

func TestEvaluateBadges_Monoton(t *testing.T) {
	st := BadgeStats{CompletedTotal: 5, XPTotal: 150, CurrentStreak: 4}

	first := EvaluateBadges(nil, st)
	require.NotEmpty(t, first)

	// evaluasi kedua dengan statistik sama: tidak ada badge baru
	owned := badgeIDs(first)
	second := EvaluateBadges(owned, st)
	assert.Empty(t, second)
}

func TestEvaluateBadges_Ambang(t *testing.T) {
	tests := []struct {
		name  string
		stats BadgeStats
		want  string
		has   bool
	}{
		{"xp 99 belum dapat", BadgeStats{XPTotal: 99}, "xp_100", false},
		{"xp 100 dapat", BadgeStats{XPTotal: 100}, "xp_100", true},
		{"streak 29 belum dapat", BadgeStats{CurrentStreak: 29}, "streak_30", false},
		{"streak 30 dapat", BadgeStats{CurrentStreak: 30}, "streak_30", true},
		{"99 completion belum master", BadgeStats{CompletedTotal: 99}, "challenge_master", false},
		{"100 completion jadi master", BadgeStats{CompletedTotal: 100}, "challenge_master", true},
		{"9 perfect belum perfectionist", BadgeStats{PerfectCount: 9}, "perfectionist", false},
		{"10 perfect jadi perfectionist", BadgeStats{PerfectCount: 10}, "perfectionist", true},
		{"1 perfect dapat perfect_pronunciation", BadgeStats{PerfectCount: 1}, "perfect_pronunciation", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.has, contains(badgeIDs(EvaluateBadges(nil, tt.stats)), tt.want))
		})
	}
}

func TestCatalogKonsisten(t *testing.T) {
	assert.Len(t, Catalog, 10)
	seen := map[string]struct{}{}
	for _, b := range Catalog {
		_, dup := seen[b.ID]
		assert.False(t, dup, "ID badge duplikat: %s", b.ID)
		seen[b.ID] = struct{}{}

		got, ok := ByID(b.ID)
		require.True(t, ok)
		assert.Equal(t, b, got)
		assert.Greater(t, b.BonusXP, 0)
	}
}

func contains(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
