package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFishExtinct       BookmarkType = "fish_extinct"
	BookmarkDolphinsExtinct   BookmarkType = "dolphins_extinct"
	BookmarkSharksExtinct     BookmarkType = "sharks_extinct"
	BookmarkFishCapReached    BookmarkType = "fish_cap_reached"
	BookmarkFishCrash         BookmarkType = "fish_crash"
	BookmarkStableCoexistence BookmarkType = "stable_coexistence"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for bookmark detection.
const (
	crashDropFraction = 0.5  // fish fell below half the recent peak
	crashMinDrop      = 10   // and lost at least this many
	stableCVThreshold = 0.25 // coefficient of variation for "stable"
	stableWindows     = 5
)

// BookmarkDetector detects interesting moments in the simulation:
// extinctions, the fish cap being reached, crashes and stable coexistence.
type BookmarkDetector struct {
	maxFish int

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	seen           bool
	prev           WindowStats
	recentFishPeak int
	atCap          bool
	stableReported bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize, maxFish int) *BookmarkDetector {
	if historySize < stableWindows {
		historySize = stableWindows // minimum for stable coexistence detection
	}
	return &BookmarkDetector{
		maxFish:     maxFish,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.seen {
		bookmarks = append(bookmarks, bd.checkExtinctions(stats)...)
		if b := bd.checkFishCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkFishCap(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkStableCoexistence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.FishCount > bd.recentFishPeak {
		bd.recentFishPeak = stats.FishCount
	}
	bd.prev = stats
	bd.seen = true

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent history entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinctions(stats WindowStats) []Bookmark {
	var out []Bookmark
	extinct := func(kind BookmarkType, name string, before, now int) {
		if before > 0 && now == 0 {
			out = append(out, Bookmark{
				Type:        kind,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s died out (was %d at tick %d)", name, before, bd.prev.WindowEndTick),
			})
		}
	}
	extinct(BookmarkFishExtinct, "fish", bd.prev.FishCount, stats.FishCount)
	extinct(BookmarkDolphinsExtinct, "dolphins", bd.prev.DolphinCount, stats.DolphinCount)
	extinct(BookmarkSharksExtinct, "sharks", bd.prev.SharkCount, stats.SharkCount)
	return out
}

func (bd *BookmarkDetector) checkFishCap(stats WindowStats) *Bookmark {
	if bd.maxFish <= 0 {
		return nil
	}
	if stats.FishCount < bd.maxFish {
		bd.atCap = false
		return nil
	}
	if bd.atCap {
		return nil
	}
	bd.atCap = true
	return &Bookmark{
		Type:        BookmarkFishCapReached,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Fish population reached the cap of %d", bd.maxFish),
	}
}

func (bd *BookmarkDetector) checkFishCrash(stats WindowStats) *Bookmark {
	peak := bd.recentFishPeak
	if peak == 0 {
		return nil
	}
	drop := peak - stats.FishCount
	if drop < crashMinDrop || float64(stats.FishCount) > float64(peak)*crashDropFraction {
		return nil
	}
	// Reset the peak so one crash is reported once
	bd.recentFishPeak = stats.FishCount
	return &Bookmark{
		Type:        BookmarkFishCrash,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Fish population crashed from %d to %d", peak, stats.FishCount),
	}
}

func (bd *BookmarkDetector) checkStableCoexistence(stats WindowStats) *Bookmark {
	if stats.FishCount == 0 || stats.DolphinCount+stats.SharkCount == 0 {
		bd.stableReported = false
		return nil
	}

	window := bd.recent(stableWindows)
	if len(window) < stableWindows {
		return nil
	}
	fish := make([]float64, len(window))
	preds := make([]float64, len(window))
	for i, w := range window {
		fish[i] = float64(w.FishCount)
		preds[i] = float64(w.DolphinCount + w.SharkCount)
	}
	fishCV := CoefficientOfVariation(fish)
	predCV := CoefficientOfVariation(preds)
	if fishCV > stableCVThreshold || predCV > stableCVThreshold {
		bd.stableReported = false
		return nil
	}

	if bd.stableReported {
		return nil
	}
	bd.stableReported = true
	return &Bookmark{
		Type:        BookmarkStableCoexistence,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Fish and predators coexist stably (fish CV %.2f, predator CV %.2f)", fishCV, predCV),
	}
}
