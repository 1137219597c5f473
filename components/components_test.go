package components

import (
	"math"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", a, true},
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps is not symmetric")
			}
		})
	}
}

func TestBodyRectTruncates(t *testing.T) {
	r := Body{Width: 6.9, Height: 12.2}.Rect(Position{X: 3, Y: 4})
	if r != (Rect{X: 3, Y: 4, W: 6, H: 12}) {
		t.Errorf("rect = %+v", r)
	}
	if r.Right() != 9 || r.Bottom() != 16 {
		t.Errorf("right/bottom = %d/%d, want 9/16", r.Right(), r.Bottom())
	}
}

func TestFacingRight(t *testing.T) {
	tests := []struct {
		heading float64
		want    bool
	}{
		{0, true},
		{math.Pi, false},
		{math.Pi / 2, true}, // no horizontal step
		{-3 * math.Pi / 4, false},
	}
	for _, tt := range tests {
		if got := (Motion{Heading: tt.heading, Speed: 5}).FacingRight(); got != tt.want {
			t.Errorf("FacingRight(%v) = %v, want %v", tt.heading, got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	for kind, want := range map[Kind]string{KindFish: "fish", KindDolphin: "dolphin", KindShark: "shark"} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
		if kind.IsPredator() != (kind != KindFish) {
			t.Errorf("%s.IsPredator() = %v", want, kind.IsPredator())
		}
	}
	if StatusOnMigrate.String() != "on-migrate" {
		t.Errorf("status name = %q", StatusOnMigrate.String())
	}
}
