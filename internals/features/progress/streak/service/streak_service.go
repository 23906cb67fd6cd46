// internals/features/progress/streak/service/streak_service.go
package service

import "time"

/* =======================================================
   Streak harian (hari UTC).

   - submit pertama hari ini setelah kemarin  -> +1
   - submit lagi di hari yang sama            -> tetap
   - bolong satu hari atau lebih              -> reset ke 1
   longest selalu max(longest, current baru).
   ======================================================= */

// NextStreak menghitung streak baru dari waktu attempt terakhir.
// Idempotent untuk beberapa submit di hari UTC yang sama.
func NextStreak(lastAttemptAt *time.Time, current, longest int, now time.Time) (int, int) {
	nowDay := now.UTC().Truncate(24 * time.Hour)

	newCurrent := 1
	if lastAttemptAt != nil {
		lastDay := lastAttemptAt.UTC().Truncate(24 * time.Hour)
		switch nowDay.Sub(lastDay) {
		case 0:
			newCurrent = current
			if newCurrent < 1 {
				newCurrent = 1
			}
		case 24 * time.Hour:
			newCurrent = current + 1
		}
	}

	newLongest := longest
	if newCurrent > newLongest {
		newLongest = newCurrent
	}
	return newCurrent, newLongest
}
