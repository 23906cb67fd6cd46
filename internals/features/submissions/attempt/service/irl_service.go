// internals/features/submissions/attempt/service/irl_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"snop_backend/internals/constants"
	"snop_backend/internals/features/ai"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
	attemptDTO "snop_backend/internals/features/submissions/attempt/dto"
	"snop_backend/internals/helpers/oss"
)

var ErrNotIRL = errors.New("tantangan ini bukan tipe IRL")

/* =======================================================
   Verifikasi tantangan IRL.

   User mengirim kombinasi bukti: foto, koordinat GPS, dan/atau
   teks Norwegia tentang topiknya. Submission selalu dihitung
   selesai — bronze adalah tier dasar; foto atau teks yang
   terverifikasi menaikkan ke silver, keduanya ke gold. GPS
   bukti pendukung saja, tidak mengubah tier.
   ======================================================= */

// IRLInput bukti mentah dari multipart
type IRLInput struct {
	Photo         []byte
	PhotoFilename string
	Text          string
	HasGPS        bool
	Lat, Lng      float64
}

func (s *SubmissionService) VerifyIRL(ctx context.Context, userID, challengeID uuid.UUID, in *IRLInput) (*attemptDTO.IRLVerifyResponse, error) {
	ch, err := s.Challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if ch.Type != constants.ChallengeTypeIRL {
		return nil, ErrNotIRL
	}
	content, err := challengeModel.DecodeContent[challengeModel.IRLContent](ch.Content)
	if err != nil {
		return nil, err
	}

	checks := map[string]attemptDTO.IRLCheckResult{}
	passed := 0
	photoURL := ""

	// --- foto (CLIP zero-shot) ---
	if modeEnabled(content.Modes, "photo") && len(in.Photo) > 0 {
		res := s.verifyPhoto(ctx, userID, in, content)
		if url, ok := res.Detail["photo_url"].(string); ok {
			photoURL = url
		}
		if res.Passed {
			passed++
		}
		checks["photo"] = res
	}

	// --- GPS ---
	if modeEnabled(content.Modes, "gps") && in.HasGPS && content.GPS != nil {
		res := s.verifyGPS(in, content)
		if res.Passed {
			passed++
		}
		checks["gps"] = res
	}

	// --- teks ---
	if modeEnabled(content.Modes, "text") && strings.TrimSpace(in.Text) != "" {
		res := s.verifyText(ctx, in.Text, ch.CEFRLevel, content.Topic)
		if res.Passed {
			passed++
		}
		checks["text"] = res
	}

	if len(checks) == 0 {
		return nil, errors.New("tidak ada bukti yang bisa diverifikasi")
	}

	tier, mult := tierFor(checks["photo"].Passed, checks["text"].Passed,
		s.Cfg.BronzeMultiplier, s.Cfg.SilverMultiplier, s.Cfg.GoldMultiplier)
	xp := ComputeXP(ch.XPReward, mult, FrequencyMultiplier(ch.Frequency))

	result := &GradeResult{
		Score: mult,
		// IRL selalu komplit; tier hanya menentukan porsi XP
		IsCorrect: true,
		Feedback: map[string]any{
			"tier":   tier,
			"passed": passed,
			"checks": checks,
		},
	}

	answerJSON, _ := sonic.Marshal(map[string]any{
		"text":      in.Text,
		"photo_url": photoURL,
		"has_gps":   in.HasGPS,
	})

	eff, err := s.applyEffects(userID, ch.ID, ch.Type, ch.CEFRLevel, result, xp, datatypes.JSON(answerJSON))
	if err != nil {
		return nil, err
	}

	return &attemptDTO.IRLVerifyResponse{
		Tier:          tier,
		Passed:        passed >= 1,
		XPEarned:      xp,
		PhotoURL:      photoURL,
		Checks:        checks,
		XPTotal:       eff.XPTotal,
		CurrentStreak: eff.CurrentStreak,
		LongestStreak: eff.LongestStreak,
		LeveledUp:     eff.LeveledUp,
		NewLevel:      eff.NewLevel,
		NewBadges:     eff.NewBadges,
	}, nil
}

func (s *SubmissionService) verifyPhoto(ctx context.Context, userID uuid.UUID, in *IRLInput, content *challengeModel.IRLContent) attemptDTO.IRLCheckResult {
	res := attemptDTO.IRLCheckResult{Attempted: true, Detail: map[string]any{}}

	// simpan bukti dulu (webp di OSS), gagal upload tidak menggagalkan cek
	objectKey := fmt.Sprintf("irl/%s/%d.webp", userID, time.Now().UnixNano())
	if url, err := oss.UploadPhotoWebP(objectKey, in.Photo, in.PhotoFilename); err != nil {
		log.Printf("[IRL] Upload bukti foto gagal: %v", err)
	} else {
		res.Detail["photo_url"] = url
	}

	labels := content.PhotoKeywords
	if len(labels) == 0 && content.Topic != "" {
		labels = []string{content.Topic}
	}
	if len(labels) == 0 {
		res.Detail["error"] = "soal tidak punya kata kunci foto"
		return res
	}

	scores, err := ai.NewCLIPClient().ClassifyImage(ctx, in.Photo, labels)
	if err != nil {
		log.Printf("[IRL] CLIP gagal: %v", err)
		res.Detail["error"] = "verifikasi foto tidak tersedia"
		return res
	}

	best := ai.BestScore(scores)
	res.Detail["confidence"] = best
	res.Passed = best > s.Cfg.PhotoConfidenceThreshold
	return res
}

func (s *SubmissionService) verifyGPS(in *IRLInput, content *challengeModel.IRLContent) attemptDTO.IRLCheckResult {
	radius := content.GPS.RadiusM
	if radius <= 0 {
		radius = s.Cfg.DefaultGPSRadiusMeters
	}
	dist := ai.HaversineMeters(in.Lat, in.Lng, content.GPS.Lat, content.GPS.Lng)
	return attemptDTO.IRLCheckResult{
		Attempted: true,
		Passed:    dist <= radius,
		Detail: map[string]any{
			"distance_m": dist,
			"radius_m":   radius,
		},
	}
}

func (s *SubmissionService) verifyText(ctx context.Context, text, level, topic string) attemptDTO.IRLCheckResult {
	grammar := ai.NewTextAnalyzer().GradeGrammar(ctx, text)
	sc := ai.ScoreText(text, level, ai.KeywordsForTopic(topic), grammar)
	return attemptDTO.IRLCheckResult{
		Attempted: true,
		Passed:    sc.Total >= s.Cfg.TextPassScore,
		Detail: map[string]any{
			"score":     sc,
			"min_score": s.Cfg.TextPassScore,
		},
	}
}

func modeEnabled(modes []string, mode string) bool {
	if len(modes) == 0 {
		return true // soal lama tanpa modes: semua bukti diterima
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// tierFor: bronze = dasar setiap penyelesaian. Foto ATAU teks yang
// terverifikasi naik ke silver, keduanya ke gold. GPS tidak ikut
// menentukan tier.
func tierFor(photoOK, textOK bool, bronze, silver, gold float64) (string, float64) {
	switch {
	case photoOK && textOK:
		return "gold", gold
	case photoOK || textOK:
		return "silver", silver
	default:
		return "bronze", bronze
	}
}
