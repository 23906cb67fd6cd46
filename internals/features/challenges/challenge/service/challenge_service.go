// internals/features/challenges/challenge/service/challenge_service.go
package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	challengeDTO "snop_backend/internals/features/challenges/challenge/dto"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
)

var ErrChallengeNotFound = errors.New("challenge tidak ditemukan")

/* =======================================================
   Service pool tantangan.

   Semua pencarian soal lewat GetByID — termasuk saat
   grading — supaya tidak ada dua jalur lookup yang bisa
   beda hasil.
   ======================================================= */

type ChallengeService struct {
	DB  *gorm.DB
	Cfg configs.GamificationConfig
}

func NewChallengeService(db *gorm.DB, cfg configs.GamificationConfig) *ChallengeService {
	return &ChallengeService{DB: db, Cfg: cfg}
}

// GetByID: satu-satunya jalur ambil soal (dipakai detail & grading)
func (s *ChallengeService) GetByID(id uuid.UUID) (*challengeModel.ChallengeModel, error) {
	var ch challengeModel.ChallengeModel
	if err := s.DB.First(&ch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// TodayForLevels memilih satu soal per tipe dari seluruh level yang
// sudah terbuka untuk user (grading juga menerima semua level terbuka).
// types kosong = semua tipe. Prioritas soal yang paling jarang
// dipakai biar pool merata.
func (s *ChallengeService) TodayForLevels(levels, types []string) ([]challengeModel.ChallengeModel, error) {
	if len(types) == 0 {
		types = constants.ChallengeTypes
	}
	out := make([]challengeModel.ChallengeModel, 0, len(types))
	for _, typ := range types {
		var ch challengeModel.ChallengeModel
		err := s.DB.
			Where("type = ? AND cefr_level IN ? AND status <> ?", typ, levels, constants.ChallengeStatusArchived).
			Order("used_count ASC, random()").
			First(&ch).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // pool tipe ini kosong di level tsb
			}
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// MarkUsed dipanggil dalam transaksi submit: counter naik atomik,
// status ikut lifecycle available→used→archived.
func (s *ChallengeService) MarkUsed(tx *gorm.DB, id uuid.UUID, now time.Time) error {
	res := tx.Exec(`
		UPDATE challenges
		SET used_count = used_count + 1,
		    last_used_at = ?,
		    status = CASE
		        WHEN used_count + 1 >= ? THEN 'archived'
		        ELSE 'used'
		    END,
		    updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, s.Cfg.ArchiveUsedThreshold, now, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// ArchiveStale: arsip soal yang kelamaan nganggur (dipanggil scheduler)
func (s *ChallengeService) ArchiveStale(now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -s.Cfg.ArchiveInactiveDays)
	res := s.DB.Exec(`
		UPDATE challenges
		SET status = 'archived', updated_at = ?
		WHERE status <> 'archived'
		  AND deleted_at IS NULL
		  AND COALESCE(last_used_at, created_at) < ?`,
		now, cutoff)
	return res.RowsAffected, res.Error
}

/* ===== Sanitasi untuk response publik ===== */

// kunci yang tidak boleh bocor ke aplikasi
var hiddenContentKeys = map[string][]string{
	constants.ChallengeTypeMultipleChoice: {"correct_index"},
	constants.ChallengeTypeListening:      {"correct_index"},
	constants.ChallengeTypeFillBlank:      {"answer", "alternatives"},
	constants.ChallengeTypeIRL:            {"photo_keywords"},
}

// Sanitize menyembunyikan kunci jawaban dan mengacak urutan opsi.
// Grading pakai TEKS opsi, jadi acak di sini aman.
func (s *ChallengeService) Sanitize(ch *challengeModel.ChallengeModel, rng *rand.Rand) (challengeDTO.ChallengeResponse, error) {
	content := map[string]any{}
	if len(ch.Content) > 0 {
		if err := sonic.Unmarshal(ch.Content, &content); err != nil {
			return challengeDTO.ChallengeResponse{}, err
		}
	}
	for _, k := range hiddenContentKeys[ch.Type] {
		delete(content, k)
	}

	if opts, ok := content["options"].([]any); ok && rng != nil {
		shuffled := make([]any, len(opts))
		copy(shuffled, opts)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		content["options"] = shuffled
	}

	return challengeDTO.ChallengeResponse{
		ID:         ch.ID.String(),
		Type:       ch.Type,
		CEFRLevel:  ch.CEFRLevel,
		Title:      ch.Title,
		Prompt:     ch.Prompt,
		Content:    content,
		Difficulty: ch.Difficulty,
		Frequency:  ch.Frequency,
		XPReward:   ch.XPReward,
	}, nil
}

/* ===== Statistik & admin ===== */

func (s *ChallengeService) PoolStats() ([]challengeDTO.PoolStatsRow, error) {
	var rows []challengeDTO.PoolStatsRow
	err := s.DB.Raw(`
		SELECT cefr_level, type, status, COUNT(*) AS total
		FROM challenges
		WHERE deleted_at IS NULL
		GROUP BY cefr_level, type, status
		ORDER BY cefr_level, type, status`).Scan(&rows).Error
	return rows, err
}

// PoolHealth: warning kalau stok available per (level,type) di bawah 10
func (s *ChallengeService) PoolHealth() ([]challengeDTO.PoolHealthRow, error) {
	var rows []challengeDTO.PoolHealthRow
	err := s.DB.Raw(`
		SELECT cefr_level, type, COUNT(*) FILTER (WHERE status = 'available') AS available
		FROM challenges
		WHERE deleted_at IS NULL
		GROUP BY cefr_level, type
		ORDER BY cefr_level, type`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Healthy = rows[i].Available >= 10
	}
	return rows, nil
}

// Reset mengembalikan soal arsip ke pool
func (s *ChallengeService) Reset(id uuid.UUID, now time.Time) error {
	res := s.DB.Model(&challengeModel.ChallengeModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       constants.ChallengeStatusAvailable,
			"used_count":   0,
			"last_used_at": nil,
			"updated_at":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// Create soal baru (admin / generator). XP default dari difficulty.
func (s *ChallengeService) Create(req *challengeDTO.AdminChallengeRequest, source string) (*challengeModel.ChallengeModel, error) {
	freq := req.Frequency
	if freq == "" {
		freq = constants.FrequencyDaily
	}
	ch := challengeModel.ChallengeModel{
		Type:       req.Type,
		CEFRLevel:  req.CEFRLevel,
		Title:      req.Title,
		Prompt:     req.Prompt,
		Content:    req.Content,
		Difficulty: req.Difficulty,
		Frequency:  freq,
		XPReward:   s.Cfg.BaseXP[req.Difficulty],
		Status:     constants.ChallengeStatusAvailable,
		Source:     source,
	}
	if err := s.DB.Create(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *ChallengeService) Update(id uuid.UUID, req *challengeDTO.AdminChallengeRequest) (*challengeModel.ChallengeModel, error) {
	ch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	ch.Type = req.Type
	ch.CEFRLevel = req.CEFRLevel
	ch.Title = req.Title
	ch.Prompt = req.Prompt
	ch.Content = req.Content
	ch.Difficulty = req.Difficulty
	if req.Frequency != "" {
		ch.Frequency = req.Frequency
	}
	ch.XPReward = s.Cfg.BaseXP[req.Difficulty]
	if err := s.DB.Save(ch).Error; err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *ChallengeService) Delete(id uuid.UUID) error {
	res := s.DB.Delete(&challengeModel.ChallengeModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// List untuk admin, filter opsional per level/type/status
func (s *ChallengeService) List(level, typ, status string, limit, offset int) ([]challengeModel.ChallengeModel, int64, error) {
	q := s.DB.Model(&challengeModel.ChallengeModel{})
	if level != "" {
		q = q.Where("cefr_level = ?", level)
	}
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var items []challengeModel.ChallengeModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}
