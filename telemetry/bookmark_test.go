package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Extinctions(t *testing.T) {
	tests := []struct {
		name string
		next WindowStats
		want BookmarkType
	}{
		{"fish", WindowStats{WindowEndTick: 200, FishCount: 0, DolphinCount: 2, SharkCount: 2}, BookmarkFishExtinct},
		{"dolphins", WindowStats{WindowEndTick: 200, FishCount: 20, DolphinCount: 0, SharkCount: 2}, BookmarkDolphinsExtinct},
		{"sharks", WindowStats{WindowEndTick: 200, FishCount: 20, DolphinCount: 2, SharkCount: 0}, BookmarkSharksExtinct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10, 100)
			bd.Check(WindowStats{WindowEndTick: 100, FishCount: 20, DolphinCount: 2, SharkCount: 2})

			bookmarks := bd.Check(tt.next)
			if !hasBookmark(bookmarks, tt.want) {
				t.Errorf("expected %s bookmark, got %v", tt.want, bookmarks)
			}

			// Staying extinct is not reported again
			if hasBookmark(bd.Check(tt.next), tt.want) {
				t.Errorf("%s reported twice", tt.want)
			}
		})
	}
}

func TestBookmarkDetector_FishCap(t *testing.T) {
	bd := NewBookmarkDetector(10, 100)

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 100, FishCount: 100}), BookmarkFishCapReached) {
		t.Fatal("expected fish_cap_reached bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 200, FishCount: 100}), BookmarkFishCapReached) {
		t.Error("cap reported again while still at cap")
	}
	bd.Check(WindowStats{WindowEndTick: 300, FishCount: 95})
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 400, FishCount: 100}), BookmarkFishCapReached) {
		t.Error("expected cap bookmark after leaving and returning to the cap")
	}
}

func TestBookmarkDetector_FishCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, 1000)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, FishCount: 100, SharkCount: 5})
	}

	// Small dip is not a crash
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 300, FishCount: 80, SharkCount: 5}), BookmarkFishCrash) {
		t.Error("unexpected crash for a 20% dip")
	}

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 400, FishCount: 40, SharkCount: 5}), BookmarkFishCrash) {
		t.Error("expected fish_crash bookmark")
	}

	// Peak resets after a crash
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 500, FishCount: 35, SharkCount: 5}), BookmarkFishCrash) {
		t.Error("crash reported twice")
	}
}

func TestBookmarkDetector_StableCoexistence(t *testing.T) {
	bd := NewBookmarkDetector(10, 1000)

	var found bool
	for i := 0; i < stableWindows; i++ {
		stats := WindowStats{
			WindowEndTick: i * 100,
			FishCount:     50 + i%2,
			DolphinCount:  2,
			SharkCount:    2,
		}
		bookmarks := bd.Check(stats)
		if hasBookmark(bookmarks, BookmarkStableCoexistence) {
			if i != stableWindows-1 {
				t.Fatalf("stable bookmark after %d windows, want %d", i+1, stableWindows)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected stable_coexistence bookmark")
	}

	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 600, FishCount: 50, DolphinCount: 2, SharkCount: 2}), BookmarkStableCoexistence) {
		t.Error("stable coexistence reported twice")
	}
}

func TestBookmarkDetector_NoStabilityWithoutPredators(t *testing.T) {
	bd := NewBookmarkDetector(10, 1000)
	for i := 0; i < 2*stableWindows; i++ {
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: i * 100, FishCount: 50}), BookmarkStableCoexistence) {
			t.Fatal("stable coexistence reported without predators")
		}
	}
}
