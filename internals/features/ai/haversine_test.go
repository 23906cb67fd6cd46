package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	t.Run("titik sama", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMeters(59.9139, 10.7522, 59.9139, 10.7522))
	})

	t.Run("oslo ke bergen", func(t *testing.T) {
		// Oslo S -> Bergen stasjon, great-circle ±305 km
		d := HaversineMeters(59.9111, 10.7528, 60.3894, 5.3325)
		assert.InDelta(t, 305_000, d, 5_000)
	})

	t.Run("jarak pendek", func(t *testing.T) {
		// ±111 m per 0.001 derajat lintang
		d := HaversineMeters(59.9139, 10.7522, 59.9149, 10.7522)
		assert.InDelta(t, 111.0, d, 1.0)
	})

	t.Run("simetris", func(t *testing.T) {
		d1 := HaversineMeters(59.9, 10.7, 63.4, 10.4)
		d2 := HaversineMeters(63.4, 10.4, 59.9, 10.7)
		assert.InDelta(t, d1, d2, 1e-6)
	})
}
