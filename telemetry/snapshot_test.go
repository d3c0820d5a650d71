package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	winner := 2

	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		RaceID:     "2abc",
		RNGSeed:    42,
		Phase:      "finished",
		ElapsedSec: 11.5,
		FinishX:    900,
		WinnerID:   &winner,
		Cars: []CarState{
			{ID: 0, Lane: 0, X: 640, BaseSpeed: 2.2, Speed: 2.2},
			{ID: 2, Lane: 2, X: 903, BaseSpeed: 2.9, Speed: 5.8, Autonomous: true, Finished: true, FinishOrder: 1, FinishSec: 11.5, Boost: 1.2},
		},
		Obstacles: []ItemState{{X: 300, Lane: 1, Active: false}},
		Pickups:   []ItemState{{X: 400, Lane: 3, Active: true, Kind: "shield"}},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "race_2abc_finished") {
		t.Errorf("unexpected snapshot name %s", path)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RaceID != "2abc" || loaded.Phase != "finished" {
		t.Errorf("race=%q phase=%q", loaded.RaceID, loaded.Phase)
	}
	if loaded.WinnerID == nil || *loaded.WinnerID != 2 {
		t.Errorf("WinnerID = %v, want 2", loaded.WinnerID)
	}
	if len(loaded.Cars) != 2 || loaded.Cars[1] != snapshot.Cars[1] {
		t.Errorf("cars mismatch: %+v", loaded.Cars)
	}
	if len(loaded.Pickups) != 1 || loaded.Pickups[0].Kind != "shield" {
		t.Errorf("pickups mismatch: %+v", loaded.Pickups)
	}
}

func TestLoadSnapshotRejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected a version error")
	}
}
