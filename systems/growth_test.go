package systems

import (
	"testing"

	"github.com/pthm-cable/aquarium/components"
)

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		maxSize  float64
		lifetime int
		want     float64
	}{
		{48, 96, 1},
		{48, 100, 0.96},
		{48, 1, 48},
		{48, 0, 48},
	}
	for _, tt := range tests {
		if got := GrowthRate(tt.maxSize, tt.lifetime); got != tt.want {
			t.Errorf("GrowthRate(%v, %d) = %v, want %v", tt.maxSize, tt.lifetime, got, tt.want)
		}
	}
}

func TestGrowReachesMaxAtHalfLife(t *testing.T) {
	const maxSize = 48
	life := components.Life{Lifetime: 96}
	fish := components.Fish{Size: 0, GrowthRate: GrowthRate(maxSize, life.Lifetime)}
	body := components.Body{}

	for life.Age = 1; life.Age <= life.Lifetime; life.Age++ {
		Grow(&fish, &body, life, maxSize)
		if fish.Size > maxSize {
			t.Fatalf("age %d: size %v exceeds max", life.Age, fish.Size)
		}
		if life.Age > life.Lifetime/2 && fish.Size != maxSize {
			t.Fatalf("age %d: size %v, want max after half-life", life.Age, fish.Size)
		}
	}
	if body.Width != maxSize || body.Height != maxSize {
		t.Errorf("body = %vx%v, want square %v", body.Width, body.Height, maxSize)
	}
}

func TestGrowStopsAfterHalfLife(t *testing.T) {
	life := components.Life{Age: 51, Lifetime: 100}
	fish := components.Fish{Size: 10, GrowthRate: 1}
	body := components.Body{Width: 10, Height: 10}
	Grow(&fish, &body, life, 48)
	if fish.Size != 10 {
		t.Errorf("size = %v, want unchanged 10", fish.Size)
	}
}

func TestGrowCapsAtMax(t *testing.T) {
	life := components.Life{Age: 1, Lifetime: 100}
	fish := components.Fish{Size: 47.5, GrowthRate: 2}
	body := components.Body{}
	Grow(&fish, &body, life, 48)
	if fish.Size != 48 || body.Width != 48 {
		t.Errorf("size = %v width = %v, want 48", fish.Size, body.Width)
	}
}
