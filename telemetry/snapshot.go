package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/aquarium/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the population of one pond at a tick.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    int64  `json:"seed"`
	Pond    string `json:"pond"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Tick int `json:"tick"`

	Agents []AgentState `json:"agents"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AgentState holds one agent's state.
type AgentState struct {
	ID   uint32          `json:"id"`
	Kind components.Kind `json:"kind"`

	// Position and movement
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	Age      int `json:"age"`
	Lifetime int `json:"lifetime"`

	// Fish only
	FishID  string  `json:"fish_id,omitempty"`
	Name    string  `json:"name,omitempty"`
	Genesis string  `json:"genesis,omitempty"`
	Status  string  `json:"status,omitempty"`
	Size    float64 `json:"size,omitempty"`

	// Predators only
	Meals int `json:"meals,omitempty"`

	Stats *LifetimeStatsJSON `json:"stats,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick int `json:"birth_tick"`
	Meals     int `json:"meals"`
	Children  int `json:"children"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick: ls.BirthTick,
		Meals:     ls.Meals,
		Children:  ls.Children,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("%s_%d", snapshot.Pond, snapshot.Tick)
	if snapshot.Bookmark != nil {
		name += "_" + string(snapshot.Bookmark.Type)
	}
	name = strings.ReplaceAll(name, " ", "_") + ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
