// internals/features/submissions/attempt/service/submission_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
	badgeService "snop_backend/internals/features/progress/badges/service"
	cefrService "snop_backend/internals/features/progress/cefr/service"
	dailyService "snop_backend/internals/features/progress/daily/service"
	streakService "snop_backend/internals/features/progress/streak/service"
	attemptDTO "snop_backend/internals/features/submissions/attempt/dto"
	attemptModel "snop_backend/internals/features/submissions/attempt/model"
	"snop_backend/internals/features/ai"
)

var (
	ErrLimitReached   = errors.New("limit harian tipe ini sudah tercapai")
	ErrDuplicateToday = errors.New("tantangan ini sudah diselesaikan hari ini")
	ErrLevelLocked    = errors.New("level tantangan belum terbuka")
	ErrUseIRLVerify   = errors.New("tantangan IRL digrade lewat endpoint verifikasi")
	ErrUnknownType    = errors.New("tipe tantangan tidak dikenal")
)

/* =======================================================
   Alur submit:

   1. Ambil soal (jalur GetByID) dan grade DI LUAR transaksi
      — panggilan Whisper bisa lama, jangan sambil pegang lock.
   2. Satu transaksi: lock baris user (FOR UPDATE), lock baris
      harian, cek limit & duplikat, lalu terapkan semua efek
      (attempt, counter harian, streak, CEFR, XP, badge).
   Limit harian jadi hard cap: dua submit paralel antre di
   lock user, yang kedua melihat counter yang sudah naik.
   ======================================================= */

type SubmissionService struct {
	DB         *gorm.DB
	Cfg        configs.GamificationConfig
	Challenges *challengeService.ChallengeService
	Daily      *dailyService.DailyService
	graders    map[string]Grader
}

func NewSubmissionService(db *gorm.DB, cfg configs.GamificationConfig) *SubmissionService {
	s := &SubmissionService{
		DB:         db,
		Cfg:        cfg,
		Challenges: challengeService.NewChallengeService(db, cfg),
		Daily:      dailyService.NewDailyService(db, cfg),
		graders:    map[string]Grader{},
	}

	whisper, err := ai.NewWhisperClient()
	if err != nil {
		log.Printf("[SUBMIT] Whisper tidak aktif: %v", err)
	}

	for _, g := range []Grader{
		MultipleChoiceGrader{},
		ListeningGrader{},
		FillBlankGrader{},
		PronunciationGrader{Whisper: whisper},
	} {
		s.graders[g.Type()] = g
	}
	return s
}

// gamifiedEffects hasil bersama submit & verifikasi IRL
type gamifiedEffects struct {
	AttemptID     uuid.UUID
	XPTotal       int
	CurrentStreak int
	LongestStreak int
	LeveledUp     bool
	NewLevel      string
	NewBadges     []attemptDTO.EarnedBadge
}

// Submit meng-grade jawaban non-IRL dan menerapkan seluruh efek gamifikasi
func (s *SubmissionService) Submit(ctx context.Context, userID, challengeID uuid.UUID, in *SubmissionInput) (*attemptDTO.SubmitResponse, error) {
	ch, err := s.Challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if ch.Type == constants.ChallengeTypeIRL {
		return nil, ErrUseIRLVerify
	}
	grader, ok := s.graders[ch.Type]
	if !ok {
		return nil, ErrUnknownType
	}

	result, err := grader.Grade(ctx, ch, in)
	if err != nil {
		return nil, err
	}

	// faktor XP: pronunciation pakai skornya, tipe diskrit 1.0/0.5
	factor := result.Score
	if ch.Type != constants.ChallengeTypePronunciation {
		factor = DiscreteFactor(result.IsCorrect)
	}
	xp := ComputeXP(ch.XPReward, factor, FrequencyMultiplier(ch.Frequency))

	answerJSON, _ := sonic.Marshal(map[string]any{"answer": in.Answer})

	eff, err := s.applyEffects(userID, ch.ID, ch.Type, ch.CEFRLevel, result, xp, datatypes.JSON(answerJSON))
	if err != nil {
		return nil, err
	}

	return &attemptDTO.SubmitResponse{
		AttemptID:     eff.AttemptID.String(),
		Score:         result.Score,
		IsCorrect:     result.IsCorrect,
		XPEarned:      xp,
		Feedback:      result.Feedback,
		XPTotal:       eff.XPTotal,
		CurrentStreak: eff.CurrentStreak,
		LongestStreak: eff.LongestStreak,
		LeveledUp:     eff.LeveledUp,
		NewLevel:      eff.NewLevel,
		NewBadges:     eff.NewBadges,
	}, nil
}

// applyEffects: transaksi inti, dipakai submit biasa & IRL
func (s *SubmissionService) applyEffects(userID, challengeID uuid.UUID, challengeType, challengeLevel string, result *GradeResult, xp int, answer datatypes.JSON) (*gamifiedEffects, error) {
	now := time.Now().UTC()
	eff := &gamifiedEffects{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 1) lock baris user — serialisasi semua submit user ini
		var user lockedUser
		if err := tx.Table("users").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted_at IS NULL", userID).
			First(&user).Error; err != nil {
			return err
		}

		progress, err := cefrService.ProgressFromJSON(user.CEFRProgress)
		if err != nil {
			return err
		}
		if !progress[challengeLevel].Unlocked {
			return ErrLevelLocked
		}

		// 2) baris harian (ikut ter-lock)
		date := dailyService.TodayKey(now)
		daily, err := s.Daily.GetOrCreateForUpdate(tx, userID, date)
		if err != nil {
			return err
		}

		// limit dihitung dari SEMUA attempt yang digrade hari ini, bukan
		// cuma completion — jawaban sengaja salah tidak bisa dipakai
		// farming XP 50% tanpa batas di tipe yang dibatasi.
		if limit := dailyService.EffectiveLimit(s.Cfg, challengeType); limit >= 0 {
			startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			var attemptsToday int64
			if err := tx.Model(&attemptModel.AttemptModel{}).
				Where("user_id = ? AND type = ? AND created_at >= ?", userID, challengeType, startOfDay).
				Count(&attemptsToday).Error; err != nil {
				return err
			}
			if !dailyService.CanAttempt(int(attemptsToday), limit) {
				return ErrLimitReached
			}
		}

		if result.IsCorrect {
			dup, err := dailyService.AlreadyCompleted(daily, challengeType, challengeID)
			if err != nil {
				return err
			}
			if dup {
				return ErrDuplicateToday
			}
		}

		// 3) catat attempt
		feedbackJSON, _ := sonic.Marshal(result.Feedback)
		attempt := attemptModel.AttemptModel{
			UserID:      userID,
			ChallengeID: challengeID,
			Type:        challengeType,
			CEFRLevel:   challengeLevel,
			Score:       result.Score,
			IsCorrect:   result.IsCorrect,
			XPEarned:    xp,
			Answer:      answer,
			Feedback:    datatypes.JSON(feedbackJSON),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		eff.AttemptID = attempt.ID

		// 4) efek completion (hanya kalau benar)
		currentLevel := user.CEFRLevel
		leveledUp := false
		if result.IsCorrect {
			if err := s.Daily.RecordCompletion(tx, daily, challengeType, challengeID, xp); err != nil {
				return err
			}
			if err := s.Challenges.MarkUsed(tx, challengeID, now); err != nil {
				return err
			}
			progress, currentLevel, leveledUp = cefrService.ApplyCompletion(s.Cfg, progress, user.CEFRLevel, challengeLevel, now)
		}

		// 5) streak (tiap attempt dihitung aktivitas)
		newStreak, newLongest := streakService.NextStreak(user.LastAttemptAt, user.CurrentStreak, user.LongestStreak, now)

		// 6) badge: statistik dari attempts yang sudah termasuk baris baru
		stats, err := s.badgeStats(tx, userID, user.XPTotal+xp, newStreak)
		if err != nil {
			return err
		}
		earned := badgeService.EvaluateBadges([]string(user.Badges), stats)

		bonusXP := 0
		newBadgeIDs := user.Badges
		earnedAt := map[string]string{}
		if len(user.BadgeEarnedAt) > 0 {
			_ = sonic.Unmarshal(user.BadgeEarnedAt, &earnedAt)
		}
		for _, b := range earned {
			bonusXP += b.BonusXP
			newBadgeIDs = append(newBadgeIDs, b.ID)
			earnedAt[b.ID] = now.Format(time.RFC3339)
			eff.NewBadges = append(eff.NewBadges, attemptDTO.EarnedBadge{
				ID: b.ID, Name: b.Name, Icon: b.Icon, BonusXP: b.BonusXP,
			})
		}

		// 7) tulis balik state user (baris sudah ter-lock)
		progressJSON, err := cefrService.ProgressToJSON(progress)
		if err != nil {
			return err
		}
		earnedAtJSON, _ := sonic.Marshal(earnedAt)

		updates := map[string]any{
			"xp_total":        gorm.Expr("xp_total + ?", xp+bonusXP),
			"current_streak":  newStreak,
			"longest_streak":  newLongest,
			"last_attempt_at": now,
			"cefr_level":      currentLevel,
			"cefr_progress":   progressJSON,
			"badges":          newBadgeIDs,
			"badge_earned_at": datatypes.JSON(earnedAtJSON),
		}
		if err := tx.Table("users").Where("id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}

		eff.XPTotal = user.XPTotal + xp + bonusXP
		eff.CurrentStreak = newStreak
		eff.LongestStreak = newLongest
		eff.LeveledUp = leveledUp
		if leveledUp {
			eff.NewLevel = currentLevel
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if eff.NewBadges == nil {
		eff.NewBadges = []attemptDTO.EarnedBadge{}
	}
	return eff, nil
}

// subset kolom users yang dibutuhkan transaksi submit
type lockedUser struct {
	ID            uuid.UUID      `gorm:"column:id"`
	XPTotal       int            `gorm:"column:xp_total"`
	CurrentStreak int            `gorm:"column:current_streak"`
	LongestStreak int            `gorm:"column:longest_streak"`
	LastAttemptAt *time.Time     `gorm:"column:last_attempt_at"`
	CEFRLevel     string         `gorm:"column:cefr_level"`
	CEFRProgress  datatypes.JSON `gorm:"column:cefr_progress"`
	Badges        pq.StringArray `gorm:"column:badges;type:text[]"`
	BadgeEarnedAt datatypes.JSON `gorm:"column:badge_earned_at"`
}

func (s *SubmissionService) badgeStats(tx *gorm.DB, userID uuid.UUID, xpAfter, streak int) (badgeService.BadgeStats, error) {
	var completed, perfect int64
	if err := tx.Table("attempts").
		Where("user_id = ? AND is_correct", userID).
		Count(&completed).Error; err != nil {
		return badgeService.BadgeStats{}, err
	}
	if err := tx.Table("attempts").
		Where("user_id = ? AND type = ? AND score >= 1.0", userID, constants.ChallengeTypePronunciation).
		Count(&perfect).Error; err != nil {
		return badgeService.BadgeStats{}, err
	}
	return badgeService.BadgeStats{
		CompletedTotal: int(completed),
		PerfectCount:   int(perfect),
		XPTotal:        xpAfter,
		CurrentStreak:  streak,
	}, nil
}
