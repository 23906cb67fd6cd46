// internals/features/progress/daily/service/daily_service.go
package service

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	dailyModel "snop_backend/internals/features/progress/daily/model"
)

/* =======================================================
   Tracker progres harian. Hari dihitung dalam UTC.
   ======================================================= */

// TodayKey kunci hari UTC (YYYY-MM-DD)
func TodayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// CanAttempt: keputusan limit murni atas sebuah counter (completion
// untuk tampilan, attempt yang digrade untuk penegakan di submit).
// limit < 0 artinya tanpa batas.
func CanAttempt(count, limit int) bool {
	if limit < 0 {
		return true
	}
	return count < limit
}

// EffectiveLimit: IRL selalu slot tunggal per hari, tipe lain ikut config
func EffectiveLimit(cfg configs.GamificationConfig, challengeType string) int {
	limit := cfg.DailyLimits[challengeType]
	if challengeType == constants.ChallengeTypeIRL && limit < 0 {
		return 1
	}
	return limit
}

type DailyService struct {
	DB  *gorm.DB
	Cfg configs.GamificationConfig
}

func NewDailyService(db *gorm.DB, cfg configs.GamificationConfig) *DailyService {
	return &DailyService{DB: db, Cfg: cfg}
}

// GetOrCreateForUpdate ambil baris harian DENGAN row lock (dipanggil
// dalam transaksi submit). Insert dengan ON CONFLICT DO NOTHING dulu
// supaya dua request pertama di hari yang sama tidak bentrok.
func (s *DailyService) GetOrCreateForUpdate(tx *gorm.DB, userID uuid.UUID, date string) (*dailyModel.DailyProgressModel, error) {
	empty, _ := sonic.Marshal(map[string][]string{})
	seed := dailyModel.DailyProgressModel{
		UserID:      userID,
		Date:        date,
		Completions: datatypes.JSON(empty),
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var row dailyModel.DailyProgressModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetToday baca tanpa lock (endpoint status)
func (s *DailyService) GetToday(userID uuid.UUID, date string) (*dailyModel.DailyProgressModel, error) {
	var row dailyModel.DailyProgressModel
	err := s.DB.Where("user_id = ? AND date = ?", userID, date).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			empty, _ := sonic.Marshal(map[string][]string{})
			return &dailyModel.DailyProgressModel{
				UserID:      userID,
				Date:        date,
				Completions: datatypes.JSON(empty),
			}, nil
		}
		return nil, err
	}
	return &row, nil
}

// RecordCompletion menaikkan counter & XP harian secara atomik dan
// menambahkan challenge_id ke daftar completions. Baris sudah di-lock
// oleh GetOrCreateForUpdate, jadi read-modify-write JSON aman.
func (s *DailyService) RecordCompletion(tx *gorm.DB, row *dailyModel.DailyProgressModel, challengeType string, challengeID uuid.UUID, xp int) error {
	col := dailyModel.CounterColumn(challengeType)
	if col == "" {
		return errors.New("tipe tantangan tidak dikenal: " + challengeType)
	}

	completions := map[string][]string{}
	if len(row.Completions) > 0 {
		if err := sonic.Unmarshal(row.Completions, &completions); err != nil {
			return err
		}
	}
	completions[challengeType] = append(completions[challengeType], challengeID.String())
	raw, err := sonic.Marshal(completions)
	if err != nil {
		return err
	}

	return tx.Model(&dailyModel.DailyProgressModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			col:              gorm.Expr(col + " + 1"),
			"total_xp_today": gorm.Expr("total_xp_today + ?", xp),
			"completions":    datatypes.JSON(raw),
		}).Error
}

// AlreadyCompleted cek apakah challenge yang sama sudah diselesaikan hari ini
func AlreadyCompleted(row *dailyModel.DailyProgressModel, challengeType string, challengeID uuid.UUID) (bool, error) {
	completions := map[string][]string{}
	if len(row.Completions) > 0 {
		if err := sonic.Unmarshal(row.Completions, &completions); err != nil {
			return false, err
		}
	}
	target := challengeID.String()
	for _, id := range completions[challengeType] {
		if id == target {
			return true, nil
		}
	}
	return false, nil
}
