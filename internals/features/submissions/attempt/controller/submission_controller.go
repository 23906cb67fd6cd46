// internals/features/submissions/attempt/controller/submission_controller.go
package controller

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
	attemptDTO "snop_backend/internals/features/submissions/attempt/dto"
	attemptModel "snop_backend/internals/features/submissions/attempt/model"
	attemptService "snop_backend/internals/features/submissions/attempt/service"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

const maxAudioSize = 10 << 20 // 10MB
const maxPhotoSize = 5 << 20  // 5MB

type SubmissionController struct {
	DB      *gorm.DB
	Service *attemptService.SubmissionService
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{
		DB:      db,
		Service: attemptService.NewSubmissionService(db, configs.Gamification),
	}
}

// POST /api/challenges/submit
// multipart/form-data: challenge_id, answer (teks), audio (pronunciation)
func (sc *SubmissionController) Submit(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attemptDTO.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "challenge_id tidak valid")
	}

	in := &attemptService.SubmissionInput{Answer: req.Answer}

	// audio opsional (wajib untuk pronunciation, dicek grader)
	if fh, err := c.FormFile("audio"); err == nil && fh != nil {
		if fh.Size > maxAudioSize {
			return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Audio maksimal 10MB")
		}
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Audio tidak bisa dibaca")
		}
		defer f.Close()
		in.Audio = f
		in.AudioFilename = fh.Filename
	}

	resp, err := sc.Service.Submit(c.UserContext(), userID, challengeID, in)
	if err != nil {
		return sc.mapSubmitError(c, err)
	}
	return helper.JsonOK(c, "Jawaban dinilai", resp)
}

// POST /api/challenges/irl/verify
// multipart/form-data: challenge_id, photo (file), lat, lng, text
func (sc *SubmissionController) VerifyIRL(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attemptDTO.IRLVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "challenge_id tidak valid")
	}
	// GPS dianggap dikirim hanya kalau kedua field ada
	req.HasGPS = c.FormValue("lat") != "" && c.FormValue("lng") != ""

	in := &attemptService.IRLInput{
		Text:   req.Text,
		HasGPS: req.HasGPS,
		Lat:    req.Lat,
		Lng:    req.Lng,
	}

	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		if fh.Size > maxPhotoSize {
			return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Foto maksimal 5MB")
		}
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Foto tidak bisa dibaca")
		}
		raw, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Foto tidak bisa dibaca")
		}
		in.Photo = raw
		in.PhotoFilename = fh.Filename
	}

	resp, err := sc.Service.VerifyIRL(c.UserContext(), userID, challengeID, in)
	if err != nil {
		return sc.mapSubmitError(c, err)
	}
	return helper.JsonOK(c, "Bukti diverifikasi", resp)
}

// GET /api/u/attempts?limit=20&offset=0
func (sc *SubmissionController) ListAttempts(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)

	var total int64
	if err := sc.DB.Model(&attemptModel.AttemptModel{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var items []attemptModel.AttemptModel
	if err := sc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	out := make([]attemptDTO.AttemptResponse, 0, len(items))
	for _, a := range items {
		out = append(out, attemptDTO.AttemptResponse{
			ID:          a.ID.String(),
			ChallengeID: a.ChallengeID.String(),
			Type:        a.Type,
			CEFRLevel:   a.CEFRLevel,
			Score:       a.Score,
			IsCorrect:   a.IsCorrect,
			XPEarned:    a.XPEarned,
			CreatedAt:   a.CreatedAt,
		})
	}
	return helper.JsonList(c, "Riwayat attempt", out, total)
}

func (sc *SubmissionController) mapSubmitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, challengeService.ErrChallengeNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Tantangan tidak ditemukan")
	case errors.Is(err, attemptService.ErrLimitReached):
		return helper.JsonError(c, fiber.StatusTooManyRequests, "Limit harian tipe ini sudah tercapai")
	case errors.Is(err, attemptService.ErrDuplicateToday):
		return helper.JsonError(c, fiber.StatusConflict, "Tantangan ini sudah diselesaikan hari ini")
	case errors.Is(err, attemptService.ErrLevelLocked):
		return helper.JsonError(c, fiber.StatusForbidden, "Level tantangan belum terbuka")
	case errors.Is(err, attemptService.ErrUseIRLVerify):
		return helper.JsonError(c, fiber.StatusBadRequest, "Gunakan endpoint verifikasi IRL untuk tantangan ini")
	case errors.Is(err, attemptService.ErrNotIRL):
		return helper.JsonError(c, fiber.StatusBadRequest, "Tantangan ini bukan tipe IRL")
	case errors.Is(err, attemptService.ErrAnswerRequired),
		errors.Is(err, attemptService.ErrAudioRequired):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Println("[ERROR] Submit:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses submission")
	}
}
