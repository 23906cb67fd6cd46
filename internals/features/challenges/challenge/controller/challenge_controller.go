// internals/features/challenges/challenge/controller/challenge_controller.go
package controller

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	challengeDTO "snop_backend/internals/features/challenges/challenge/dto"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
	cefrService "snop_backend/internals/features/progress/cefr/service"
	userModel "snop_backend/internals/features/users/user/model"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

type ChallengeController struct {
	DB      *gorm.DB
	Service *challengeService.ChallengeService
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{
		DB:      db,
		Service: challengeService.NewChallengeService(db, configs.Gamification),
	}
}

// GET /api/challenges/today?types=pronunciation,irl
// Satu soal per tipe di level aktif user, jawaban disembunyikan.
func (cc *ChallengeController) GetToday(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var types []string
	if q := strings.TrimSpace(c.Query("types")); q != "" {
		for _, t := range strings.Split(q, ",") {
			t = strings.TrimSpace(t)
			if !constants.IsValidChallengeType(t) {
				return helper.JsonError(c, fiber.StatusBadRequest, "Tipe tantangan tidak dikenal: "+t)
			}
			types = append(types, t)
		}
	}

	var user userModel.UserModel
	if err := cc.DB.Select("id", "cefr_level", "cefr_progress").First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	// soal boleh dari semua level yang sudah terbuka, bukan cuma level aktif
	progress, err := cefrService.ProgressFromJSON(user.CEFRProgress)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Progres korup")
	}
	levels := cefrService.UnlockedLevels(progress)
	if len(levels) == 0 {
		levels = []string{user.CEFRLevel}
	}

	items, err := cc.Service.TodayForLevels(levels, types)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tantangan")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	resp := challengeDTO.TodayResponse{
		Date:       time.Now().UTC().Format("2006-01-02"),
		CEFRLevel:  user.CEFRLevel,
		Challenges: make([]challengeDTO.ChallengeResponse, 0, len(items)),
	}
	for i := range items {
		san, err := cc.Service.Sanitize(&items[i], rng)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Payload soal korup")
		}
		resp.Challenges = append(resp.Challenges, san)
	}

	return helper.JsonOK(c, "Tantangan hari ini", resp)
}

// GET /api/challenges/:id
func (cc *ChallengeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	ch, err := cc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, challengeService.ErrChallengeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tantangan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	san, err := cc.Service.Sanitize(ch, rng)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Payload soal korup")
	}
	return helper.JsonOK(c, "Tantangan ditemukan", san)
}
