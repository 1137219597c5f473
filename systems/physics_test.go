package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/aquarium/components"
)

func TestAdvanceTruncates(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		speed   float64
		wantX   int
		wantY   int
	}{
		{"east", 0, 5, 105, 100},
		{"west", math.Pi, 5, 95, 100},
		{"south", math.Pi / 2, 5, 100, 105},
		{"shallow angle drops y", 0.1, 5, 104, 100}, // 5*sin(0.1) = 0.499
		{"negative truncates toward zero", math.Pi - 0.1, 5, 96, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: 100, Y: 100}
			Advance(&pos, components.Motion{Heading: tt.heading, Speed: tt.speed})
			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("pos = (%d, %d), want (%d, %d)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	field := Field{Width: 500, Height: 500}
	body := components.Body{Width: 10, Height: 10}

	tests := []struct {
		name        string
		pos         components.Position
		heading     float64
		wantHeading float64
		wantFlip    bool
	}{
		{"inside", components.Position{X: 250, Y: 250}, 0.3, 0.3, false},
		{"right edge moving out", components.Position{X: 495, Y: 250}, 0, math.Pi, true},
		{"right edge already turning back", components.Position{X: 495, Y: 250}, math.Pi, math.Pi, false},
		{"left edge moving out", components.Position{X: -3, Y: 250}, math.Pi, 0, true},
		{"bottom edge moving out", components.Position{X: 250, Y: 495}, math.Pi / 2, -math.Pi / 2, true},
		{"top edge moving out", components.Position{X: 250, Y: -2}, -math.Pi / 2, math.Pi / 2, true},
		{"corner flips both", components.Position{X: 495, Y: 495}, math.Pi / 4, -3 * math.Pi / 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.pos
			mot := components.Motion{Heading: tt.heading, Speed: 5}
			flipped := field.Reflect(&pos, &mot, body)

			if flipped != tt.wantFlip {
				t.Errorf("flipped = %v, want %v", flipped, tt.wantFlip)
			}
			if math.Abs(mot.Heading-tt.wantHeading) > 1e-9 {
				t.Errorf("heading = %v, want %v", mot.Heading, tt.wantHeading)
			}
			if !field.Contains(pos) {
				t.Errorf("pos (%d, %d) not clamped into field", pos.X, pos.Y)
			}
		})
	}
}

func TestReflectClampsFarOutside(t *testing.T) {
	field := Field{Width: 100, Height: 80}
	pos := components.Position{X: 150, Y: -40}
	mot := components.Motion{Heading: 0, Speed: 1}
	field.Reflect(&pos, &mot, components.Body{Width: 4, Height: 4})
	if pos.X != 100 || pos.Y != 0 {
		t.Errorf("pos = (%d, %d), want (100, 0)", pos.X, pos.Y)
	}
}

func TestRandomHeadingRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		h := RandomHeading(rng)
		if h < -math.Pi || h >= math.Pi {
			t.Fatalf("heading %v outside [-pi, pi)", h)
		}
	}
}

func TestRandomPositionInside(t *testing.T) {
	field := Field{Width: 30, Height: 20}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		if pos := field.RandomPosition(rng); !field.Contains(pos) {
			t.Fatalf("position %+v outside field", pos)
		}
	}
}

func TestAgeOneTick(t *testing.T) {
	life := components.Life{Age: 4, Lifetime: 5}
	AgeOneTick(&life)
	if life.Age != 5 || !life.Expired() {
		t.Errorf("age = %d expired = %v, want 5 and expired", life.Age, life.Expired())
	}
}
