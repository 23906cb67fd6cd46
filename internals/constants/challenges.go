package constants

// Tipe tantangan yang dikenal sistem
const (
	ChallengeTypePronunciation  = "pronunciation"
	ChallengeTypeListening      = "listening"
	ChallengeTypeFillBlank      = "fill_blank"
	ChallengeTypeMultipleChoice = "multiple_choice"
	ChallengeTypeIRL            = "irl"
)

// ChallengeTypes urutan tetap, dipakai untuk status harian & validasi
var ChallengeTypes = []string{
	ChallengeTypeIRL,
	ChallengeTypeListening,
	ChallengeTypeFillBlank,
	ChallengeTypeMultipleChoice,
	ChallengeTypePronunciation,
}

func IsValidChallengeType(t string) bool {
	for _, v := range ChallengeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Frekuensi tantangan (pengali XP pronunciation)
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Status lifecycle pool
const (
	ChallengeStatusAvailable = "available"
	ChallengeStatusUsed      = "used"
	ChallengeStatusArchived  = "archived"
)

// CEFRLevels urutan tetap A1→C2; naik level satu arah, tidak ada demosi
var CEFRLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

func CEFRIndex(level string) int {
	for i, l := range CEFRLevels {
		if l == level {
			return i
		}
	}
	return -1
}

func IsValidCEFRLevel(level string) bool {
	return CEFRIndex(level) >= 0
}
