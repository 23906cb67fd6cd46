// internals/seeds/runner.go
package seeds

import (
	_ "embed"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
	cefrService "snop_backend/internals/features/progress/cefr/service"
	authService "snop_backend/internals/features/users/auth/service"
	userModel "snop_backend/internals/features/users/user/model"
)

//go:embed data/challenges_seed.json
var challengesSeedJSON []byte

type seedChallenge struct {
	Type       string         `json:"type"`
	CEFRLevel  string         `json:"cefr_level"`
	Title      string         `json:"title"`
	Prompt     string         `json:"prompt"`
	Content    map[string]any `json:"content"`
	Difficulty int            `json:"difficulty"`
	Frequency  string         `json:"frequency"`
}

// Run menjalankan semua seeder (idempotent, aman dipanggil berulang)
func Run(db *gorm.DB) {
	log.Println("🌱 Menjalankan seeder...")
	seedChallenges(db)
	seedAdmin(db)
	log.Println("🌱 Seeder selesai.")
}

func seedChallenges(db *gorm.DB) {
	var count int64
	if err := db.Model(&challengeModel.ChallengeModel{}).Count(&count).Error; err != nil {
		log.Printf("❌ Seeder challenges: %v", err)
		return
	}
	if count > 0 {
		log.Printf("🌱 Pool sudah berisi %d soal, skip.", count)
		return
	}

	var items []seedChallenge
	if err := sonic.Unmarshal(challengesSeedJSON, &items); err != nil {
		log.Printf("❌ Seed JSON korup: %v", err)
		return
	}

	cfg := configs.Gamification
	created := 0
	for _, it := range items {
		content, err := sonic.Marshal(it.Content)
		if err != nil {
			continue
		}
		freq := it.Frequency
		if freq == "" {
			freq = "daily"
		}
		ch := challengeModel.ChallengeModel{
			Type:       it.Type,
			CEFRLevel:  it.CEFRLevel,
			Title:      it.Title,
			Prompt:     it.Prompt,
			Content:    datatypes.JSON(content),
			Difficulty: it.Difficulty,
			Frequency:  freq,
			XPReward:   cfg.BaseXP[it.Difficulty],
			Status:     "available",
			Source:     "seed",
		}
		if err := db.Create(&ch).Error; err != nil {
			log.Printf("❌ Seed soal %q gagal: %v", it.Title, err)
			continue
		}
		created++
	}
	log.Printf("🌱 %d soal dimasukkan ke pool.", created)
}

// seedAdmin membuat akun admin pertama dari ENV (sekali saja)
func seedAdmin(db *gorm.DB) {
	email := configs.GetEnv("SEED_ADMIN_EMAIL")
	password := configs.GetEnv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&userModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hashed, err := authService.HashPassword(password)
	if err != nil {
		log.Printf("❌ Seed admin: %v", err)
		return
	}
	progressJSON, err := cefrService.ProgressToJSON(cefrService.InitialProgress(configs.Gamification, time.Now().UTC()))
	if err != nil {
		return
	}

	admin := userModel.UserModel{
		UserName:     "admin",
		Email:        email,
		Password:     &hashed,
		Role:         "admin",
		CEFRLevel:    "A1",
		CEFRProgress: progressJSON,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Seed admin gagal: %v", err)
		return
	}
	log.Println("🌱 Akun admin dibuat.")
}
