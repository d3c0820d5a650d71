package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the persisted state of a race at one instant.
type Snapshot struct {
	Version int    `json:"version"`
	RaceID  string `json:"race_id"`
	RNGSeed int64  `json:"rng_seed"`

	Phase       string  `json:"phase"`
	ElapsedSec  float64 `json:"elapsed_sec"`
	FinishX     float64 `json:"finish_x"`
	WinnerID    *int    `json:"winner_id,omitempty"`
	ActiveItems int     `json:"active_items"`

	Cars      []CarState  `json:"cars"`
	Obstacles []ItemState `json:"obstacles"`
	Pickups   []ItemState `json:"pickups"`
}

// CarState holds one car's state.
type CarState struct {
	ID          int     `json:"id"`
	Lane        int     `json:"lane"`
	X           float64 `json:"x"`
	BaseSpeed   float64 `json:"base_speed"`
	Speed       float64 `json:"speed"`
	Autonomous  bool    `json:"autonomous"`
	Finished    bool    `json:"finished"`
	FinishOrder int     `json:"finish_order,omitempty"`
	FinishSec   float64 `json:"finish_sec,omitempty"`
	Boost       float64 `json:"boost_remaining,omitempty"`
	Shield      float64 `json:"shield_remaining,omitempty"`
}

// ItemState holds one obstacle or pickup.
type ItemState struct {
	X      float64 `json:"x"`
	Lane   int     `json:"lane"`
	Active bool    `json:"active"`
	Kind   string  `json:"kind,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("race_%s_%s.json", snapshot.RaceID, snapshot.Phase)
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

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
