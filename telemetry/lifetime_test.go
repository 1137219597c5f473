package telemetry

import (
	"testing"

	"github.com/pthm-cable/aquarium/components"
)

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, components.KindFish, 0)
	lt.Register(2, components.KindDolphin, 5)
	lt.Register(3, components.KindShark, 8)

	lt.RecordMeal(2)
	lt.RecordMeal(3)
	lt.RecordMeal(3)
	lt.RecordChild(1)
	lt.RecordMeal(99) // unknown ids are ignored

	if got := lt.Get(1).Children; got != 1 {
		t.Errorf("children = %d, want 1", got)
	}

	id, top := lt.TopHunter()
	if id != 3 || top.Meals != 2 {
		t.Errorf("TopHunter = %d (%+v), want 3 with 2 meals", id, top)
	}

	removed := lt.Remove(3)
	if removed == nil || removed.BirthTick != 8 {
		t.Fatalf("Remove returned %+v", removed)
	}
	if lt.Count() != 2 {
		t.Errorf("Count = %d, want 2", lt.Count())
	}
	if lt.Remove(3) != nil {
		t.Error("second Remove should return nil")
	}

	lt.Remove(2)
	if _, s := lt.TopHunter(); s != nil {
		t.Errorf("TopHunter with no predators = %+v, want nil", s)
	}
}
