// internals/features/progress/badges/service/badge_service.go
package service

/* =======================================================
   Badge statis + evaluator murni.

   EvaluateBadges dipanggil setelah tiap submit (dalam
   transaksi yang sama): dari snapshot statistik user,
   kembalikan badge BARU yang layak. Badge yang sudah
   dimiliki tidak pernah dikembalikan lagi (monoton).
   ======================================================= */

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	BonusXP     int    `json:"bonus_xp"`
}

// Snapshot statistik user untuk evaluasi badge
type BadgeStats struct {
	CompletedTotal int // total submission benar sepanjang waktu
	PerfectCount   int // pronunciation dengan skor 1.0
	XPTotal        int
	CurrentStreak  int
}

// Catalog urut tampil; ID stabil, jangan diubah
var Catalog = []Badge{
	{ID: "first_challenge", Name: "First Steps", Description: "Fullfør din første utfordring", Icon: "🎯", BonusXP: 10},
	{ID: "streak_3", Name: "Warming Up", Description: "3 dager på rad", Icon: "🔥", BonusXP: 15},
	{ID: "streak_7", Name: "On Fire", Description: "7 dager på rad", Icon: "🔥", BonusXP: 30},
	{ID: "streak_30", Name: "Unstoppable", Description: "30 dager på rad", Icon: "🏆", BonusXP: 100},
	{ID: "perfect_pronunciation", Name: "Perfect Pitch", Description: "Perfekt uttale-score", Icon: "🎤", BonusXP: 20},
	{ID: "xp_100", Name: "Getting Started", Description: "Tjen 100 XP", Icon: "⭐", BonusXP: 10},
	{ID: "xp_500", Name: "Rising Star", Description: "Tjen 500 XP", Icon: "🌟", BonusXP: 25},
	{ID: "xp_1000", Name: "XP Master", Description: "Tjen 1000 XP", Icon: "💫", BonusXP: 50},
	{ID: "challenge_master", Name: "Challenge Master", Description: "Fullfør 100 utfordringer", Icon: "👑", BonusXP: 50},
	{ID: "perfectionist", Name: "Perfectionist", Description: "10 perfekte uttale-scorer", Icon: "💎", BonusXP: 40},
}

var catalogByID = func() map[string]Badge {
	m := make(map[string]Badge, len(Catalog))
	for _, b := range Catalog {
		m[b.ID] = b
	}
	return m
}()

// Lookup badge per ID
func ByID(id string) (Badge, bool) {
	b, ok := catalogByID[id]
	return b, ok
}

func qualifies(id string, st BadgeStats) bool {
	switch id {
	case "first_challenge":
		return st.CompletedTotal >= 1
	case "streak_3":
		return st.CurrentStreak >= 3
	case "streak_7":
		return st.CurrentStreak >= 7
	case "streak_30":
		return st.CurrentStreak >= 30
	case "perfect_pronunciation":
		return st.PerfectCount >= 1
	case "xp_100":
		return st.XPTotal >= 100
	case "xp_500":
		return st.XPTotal >= 500
	case "xp_1000":
		return st.XPTotal >= 1000
	case "challenge_master":
		return st.CompletedTotal >= 100
	case "perfectionist":
		return st.PerfectCount >= 10
	}
	return false
}

// EvaluateBadges mengembalikan badge baru (belum dimiliki) yang
// terpenuhi syaratnya, urut sesuai Catalog.
func EvaluateBadges(owned []string, st BadgeStats) []Badge {
	has := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		has[id] = struct{}{}
	}

	var earned []Badge
	for _, b := range Catalog {
		if _, ok := has[b.ID]; ok {
			continue
		}
		if qualifies(b.ID, st) {
			earned = append(earned, b)
		}
	}
	return earned
}
