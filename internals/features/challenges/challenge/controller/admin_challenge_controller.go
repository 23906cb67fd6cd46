// internals/features/challenges/challenge/controller/admin_challenge_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	challengeDTO "snop_backend/internals/features/challenges/challenge/dto"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
	"snop_backend/internals/features/challenges/generator"
	helper "snop_backend/internals/helpers"
)

type AdminChallengeController struct {
	DB        *gorm.DB
	Service   *challengeService.ChallengeService
	Generator *generator.GeneratorService
}

func NewAdminChallengeController(db *gorm.DB) *AdminChallengeController {
	svc := challengeService.NewChallengeService(db, configs.Gamification)
	return &AdminChallengeController{
		DB:        db,
		Service:   svc,
		Generator: generator.NewGeneratorService(svc),
	}
}

func toAdminResponse(ch *challengeModel.ChallengeModel) challengeDTO.AdminChallengeResponse {
	return challengeDTO.AdminChallengeResponse{
		ID:         ch.ID.String(),
		Type:       ch.Type,
		CEFRLevel:  ch.CEFRLevel,
		Title:      ch.Title,
		Prompt:     ch.Prompt,
		Content:    ch.Content,
		Difficulty: ch.Difficulty,
		Frequency:  ch.Frequency,
		XPReward:   ch.XPReward,
		Status:     ch.Status,
		UsedCount:  ch.UsedCount,
		Source:     ch.Source,
		LastUsedAt: ch.LastUsedAt,
		CreatedAt:  ch.CreatedAt,
	}
}

// GET /api/a/challenges
func (ac *AdminChallengeController) List(c *fiber.Ctx) error {
	items, total, err := ac.Service.List(
		c.Query("cefr_level"),
		c.Query("type"),
		c.Query("status"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	out := make([]challengeDTO.AdminChallengeResponse, 0, len(items))
	for i := range items {
		out = append(out, toAdminResponse(&items[i]))
	}
	return helper.JsonList(c, "Daftar tantangan", out, total)
}

// POST /api/a/challenges
func (ac *AdminChallengeController) Create(c *fiber.Ctx) error {
	var req challengeDTO.AdminChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	ch, err := ac.Service.Create(&req, "admin")
	if err != nil {
		log.Println("[ERROR] Create challenge:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tantangan")
	}
	return helper.JsonCreated(c, "Tantangan dibuat", toAdminResponse(ch))
}

// PUT /api/a/challenges/:id
func (ac *AdminChallengeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req challengeDTO.AdminChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	ch, err := ac.Service.Update(id, &req)
	if err != nil {
		if errors.Is(err, challengeService.ErrChallengeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tantangan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui tantangan")
	}
	return helper.JsonUpdated(c, "Tantangan diperbarui", toAdminResponse(ch))
}

// DELETE /api/a/challenges/:id
func (ac *AdminChallengeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ac.Service.Delete(id); err != nil {
		if errors.Is(err, challengeService.ErrChallengeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tantangan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tantangan")
	}
	return helper.JsonDeleted(c, "Tantangan dihapus", nil)
}

// POST /api/a/challenges/generate
func (ac *AdminChallengeController) Generate(c *fiber.Ctx) error {
	var req challengeDTO.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	created, err := ac.Generator.Generate(c.UserContext(), req.Type, req.CEFRLevel, req.Count)
	if err != nil {
		log.Println("[ERROR] Generate:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Generator gagal: "+err.Error())
	}

	out := make([]challengeDTO.AdminChallengeResponse, 0, len(created))
	for i := range created {
		out = append(out, toAdminResponse(&created[i]))
	}
	return helper.JsonCreated(c, "Soal berhasil digenerate", fiber.Map{
		"requested": req.Count,
		"created":   len(out),
		"items":     out,
	})
}

// GET /api/a/challenges/pool/stats
func (ac *AdminChallengeController) PoolStats(c *fiber.Ctx) error {
	rows, err := ac.Service.PoolStats()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "Statistik pool", rows)
}

// GET /api/a/challenges/pool/health
func (ac *AdminChallengeController) PoolHealth(c *fiber.Ctx) error {
	rows, err := ac.Service.PoolHealth()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	warnings := 0
	for _, r := range rows {
		if !r.Healthy {
			warnings++
		}
	}
	return helper.JsonOK(c, "Kesehatan pool", fiber.Map{
		"rows":     rows,
		"warnings": warnings,
	})
}

// POST /api/a/challenges/:id/reset
func (ac *AdminChallengeController) Reset(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ac.Service.Reset(id, time.Now().UTC()); err != nil {
		if errors.Is(err, challengeService.ErrChallengeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tantangan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal reset tantangan")
	}
	return helper.JsonUpdated(c, "Tantangan dikembalikan ke pool", nil)
}
