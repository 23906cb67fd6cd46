// file: internals/configs/gamification.go
package configs

import "log"

/* =======================================================
   Konfigurasi gamifikasi (CEFR, daily limit, XP, IRL)

   Dimuat SEKALI saat boot lalu di-inject ke service via
   constructor — bukan dibaca ulang dari store bersama.
   Semua angka bisa dioverride lewat ENV.
   ======================================================= */

type LevelRequirement struct {
	Name                string
	RequiredCompletions int
	UnlockedByDefault   bool
}

type GamificationConfig struct {
	// urutan level tetap: A1→A2→B1→B2→C1→C2
	Levels map[string]LevelRequirement

	// limit harian per tipe tantangan; -1 = tanpa batas
	DailyLimits map[string]int

	// XP dasar per difficulty (1-3)
	BaseXP map[int]int

	// pronunciation
	PassThreshold float64 // lulus di atas similarity ini

	// irl
	PhotoConfidenceThreshold float64 // ambang CLIP
	TextPassScore            int     // skor minimal analisis teks
	BronzeMultiplier         float64
	SilverMultiplier         float64
	GoldMultiplier           float64
	DefaultGPSRadiusMeters   float64

	// pool lifecycle
	ArchiveUsedThreshold int // arsip setelah dipakai sekian kali
	ArchiveInactiveDays  int // arsip kalau nganggur sekian hari
}

var Gamification GamificationConfig

func loadGamification() {
	Gamification = GamificationConfig{
		Levels: map[string]LevelRequirement{
			"A1": {Name: "Beginner", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_A1", 20), UnlockedByDefault: true},
			"A2": {Name: "Elementary", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_A2", 20)},
			"B1": {Name: "Intermediate", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_B1", 25)},
			"B2": {Name: "Upper Intermediate", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_B2", 25)},
			"C1": {Name: "Advanced", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_C1", 30)},
			"C2": {Name: "Mastery", RequiredCompletions: GetEnvInt("CEFR_REQUIRED_C2", 30)},
		},
		DailyLimits: map[string]int{
			"irl":             GetEnvInt("DAILY_LIMIT_IRL", -1),
			"listening":       GetEnvInt("DAILY_LIMIT_LISTENING", -1),
			"fill_blank":      GetEnvInt("DAILY_LIMIT_FILL_BLANK", -1),
			"multiple_choice": GetEnvInt("DAILY_LIMIT_MULTIPLE_CHOICE", -1),
			"pronunciation":   GetEnvInt("DAILY_LIMIT_PRONUNCIATION", -1),
		},
		BaseXP: map[int]int{
			1: 10,
			2: 15,
			3: 20,
		},
		PassThreshold:            GetEnvFloat("PRONUNCIATION_PASS_THRESHOLD", 0.70),
		PhotoConfidenceThreshold: GetEnvFloat("IRL_PHOTO_CONFIDENCE_THRESHOLD", 0.20),
		TextPassScore:            GetEnvInt("IRL_TEXT_PASS_SCORE", 60),
		BronzeMultiplier:         GetEnvFloat("IRL_BRONZE_MULTIPLIER", 0.2),
		SilverMultiplier:         GetEnvFloat("IRL_SILVER_MULTIPLIER", 0.5),
		GoldMultiplier:           GetEnvFloat("IRL_GOLD_MULTIPLIER", 1.0),
		DefaultGPSRadiusMeters:   GetEnvFloat("IRL_GPS_RADIUS_METERS", 5000),
		ArchiveUsedThreshold:     GetEnvInt("POOL_ARCHIVE_USED_THRESHOLD", 10),
		ArchiveInactiveDays:      GetEnvInt("POOL_ARCHIVE_INACTIVE_DAYS", 30),
	}

	log.Println("✅ Konfigurasi gamifikasi dimuat.")
}
