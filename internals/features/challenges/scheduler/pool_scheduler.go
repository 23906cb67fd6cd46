package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
)

// StartPoolArchiveScheduler menjalankan arsip nightly untuk soal
// yang kelamaan nganggur di pool.
func StartPoolArchiveScheduler(db *gorm.DB) {
	svc := challengeService.NewChallengeService(db, configs.Gamification)

	c := cron.New(cron.WithLocation(time.UTC))
	// tiap hari 03:00 UTC
	if _, err := c.AddFunc("0 3 * * *", func() {
		n, err := svc.ArchiveStale(time.Now().UTC())
		if err != nil {
			log.Printf("[POOL] Arsip soal gagal: %v", err)
			return
		}
		log.Printf("[POOL] %d soal diarsip karena tidak aktif", n)
	}); err != nil {
		log.Printf("[POOL] Gagal daftar cron: %v", err)
		return
	}
	c.Start()
	log.Println("⏱ Scheduler arsip pool aktif (03:00 UTC).")
}
