// internals/features/progress/cefr/service/cefr_service.go
package service

import (
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
)

/* =======================================================
   State machine level CEFR

   Urutan linear A1→A2→B1→B2→C1→C2. Setiap level punya
   counter `completed` yang dihitung per-SUBMISSION benar
   (bukan per-challenge unik). Transisi hanya terjadi saat
   level yang diselesaikan == level aktif user; completion
   di level lain tetap dicatat tapi tidak memicu apa-apa.
   ======================================================= */

type LevelState struct {
	Completed  int        `json:"completed"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Progress memetakan kode level -> state-nya
type Progress map[string]LevelState

// InitialProgress membuat state awal untuk user baru: hanya A1 terbuka
func InitialProgress(cfg configs.GamificationConfig, now time.Time) Progress {
	p := make(Progress, len(constants.CEFRLevels))
	for _, lvl := range constants.CEFRLevels {
		st := LevelState{}
		if cfg.Levels[lvl].UnlockedByDefault {
			st.Unlocked = true
			t := now.UTC()
			st.UnlockedAt = &t
		}
		p[lvl] = st
	}
	return p
}

// ApplyCompletion mencatat satu completion di `level` dan mengembalikan
// state baru + level aktif baru + apakah terjadi level-up.
//
// Aturan:
//   - counter level naik 1 (juga untuk level non-aktif)
//   - level-up hanya jika level == current DAN counter mencapai syarat
//   - C2 terminal: counter terus naik, tidak ada transisi
func ApplyCompletion(cfg configs.GamificationConfig, p Progress, current, level string, now time.Time) (Progress, string, bool) {
	if !constants.IsValidCEFRLevel(level) {
		return p, current, false
	}

	st := p[level]
	st.Completed++
	p[level] = st

	// hanya level aktif yang bisa memicu transisi
	if level != current {
		return p, current, false
	}

	required := cfg.Levels[level].RequiredCompletions
	if required <= 0 || st.Completed < required {
		return p, current, false
	}

	next := nextLevel(level)
	if next == "" {
		// C2: tidak ada level berikutnya
		return p, current, false
	}

	nst := p[next]
	if !nst.Unlocked {
		nst.Unlocked = true
		t := now.UTC()
		nst.UnlockedAt = &t
		p[next] = nst
	}
	return p, next, true
}

// UnlockedLevels mengembalikan level yang sudah terbuka, urut A1..C2
func UnlockedLevels(p Progress) []string {
	out := make([]string, 0, len(constants.CEFRLevels))
	for _, lvl := range constants.CEFRLevels {
		if p[lvl].Unlocked {
			out = append(out, lvl)
		}
	}
	return out
}

func nextLevel(level string) string {
	idx := constants.CEFRIndex(level)
	if idx < 0 || idx+1 >= len(constants.CEFRLevels) {
		return ""
	}
	return constants.CEFRLevels[idx+1]
}

/* ===== Konversi ke/dari kolom jsonb ===== */

func ProgressFromJSON(raw datatypes.JSON) (Progress, error) {
	p := Progress{}
	if len(raw) == 0 {
		return p, nil
	}
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func ProgressToJSON(p Progress) (datatypes.JSON, error) {
	b, err := sonic.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
