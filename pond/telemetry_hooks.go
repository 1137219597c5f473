package pond

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/telemetry"
)

// recordPopulation appends the current counts to the history and population.csv.
func (p *Pond) recordPopulation() {
	sample := p.Counts()
	p.history = append(p.history, sample)
	if err := p.outputManager.WritePopulation(sample); err != nil {
		slog.Error("failed to write population", "pond", p.name, "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (p *Pond) flushTelemetry() {
	if !p.collector.ShouldFlush(p.tick) {
		return
	}

	ages, sizes := p.sampleFish()
	stats := p.collector.Flush(p.tick, p.Counts(), ages, sizes)
	perfStats := p.perfCollector.Stats()

	if p.statsCallback != nil {
		p.statsCallback(stats)
	}

	if p.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := p.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "pond", p.name, "error", err)
	}
	if err := p.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "pond", p.name, "error", err)
	}

	for _, bm := range p.bookmarkDetector.Check(stats) {
		if p.logStats {
			bm.LogBookmark()
		}
		if err := p.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "pond", p.name, "error", err)
		}
		if p.snapshotDir != "" {
			p.saveSnapshot(&bm)
		}
	}
}

// sampleFish collects live fish ages and sizes for distribution stats.
func (p *Pond) sampleFish() (ages, sizes []float64) {
	ages = make([]float64, 0, p.numFish)
	sizes = make([]float64, 0, p.numFish)

	query := p.fishFilter.Query()
	for query.Next() {
		_, _, _, life, fish := query.Get()
		ages = append(ages, float64(life.Age))
		sizes = append(sizes, fish.Size)
	}
	return ages, sizes
}

// SaveSnapshot writes the current population to the snapshot directory.
func (p *Pond) SaveSnapshot() (string, error) {
	if p.snapshotDir == "" {
		return "", ErrNoSnapshotDir
	}
	return telemetry.SaveSnapshot(p.createSnapshot(nil), p.snapshotDir)
}

// saveSnapshot creates and saves a snapshot to disk.
func (p *Pond) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(p.createSnapshot(bookmark), p.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "pond", p.name, "error", err)
		return
	}
	slog.Info("snapshot saved", "pond", p.name, "path", path, "tick", p.tick)
}

// createSnapshot builds a snapshot from the current state.
func (p *Pond) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Seed:     p.seed,
		Pond:     p.name,
		Width:    p.field.Width,
		Height:   p.field.Height,
		Tick:     p.tick,
		Bookmark: bookmark,
		Agents:   make([]telemetry.AgentState, 0, p.numFish+p.numDolphins+p.numSharks),
	}

	fq := p.fishFilter.Query()
	for fq.Next() {
		pos, mot, body, life, fish := fq.Get()
		snapshot.Agents = append(snapshot.Agents, telemetry.AgentState{
			ID:       life.ID,
			Kind:     components.KindFish,
			X:        pos.X,
			Y:        pos.Y,
			Heading:  mot.Heading,
			Speed:    mot.Speed,
			Width:    body.Width,
			Height:   body.Height,
			Age:      life.Age,
			Lifetime: life.Lifetime,
			FishID:   fish.ID.String(),
			Name:     fish.Name,
			Genesis:  fish.Genesis,
			Status:   fish.Status.String(),
			Size:     fish.Size,
			Stats:    p.lifetimeTracker.Get(life.ID).ToJSON(),
		})
	}

	pq := p.predFilter.Query()
	for pq.Next() {
		pos, mot, body, life, hunter := pq.Get()
		snapshot.Agents = append(snapshot.Agents, telemetry.AgentState{
			ID:       life.ID,
			Kind:     hunter.Kind,
			X:        pos.X,
			Y:        pos.Y,
			Heading:  mot.Heading,
			Speed:    mot.Speed,
			Width:    body.Width,
			Height:   body.Height,
			Age:      life.Age,
			Lifetime: life.Lifetime,
			Meals:    hunter.Meals,
			Stats:    p.lifetimeTracker.Get(life.ID).ToJSON(),
		})
	}

	return snapshot
}
