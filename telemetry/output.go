package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/raceway/config"
)

// OutputManager handles race output: CSV results, config and snapshots.
type OutputManager struct {
	dir         string
	resultsFile *os.File
	racesFile   *os.File

	// Track if headers have been written
	resultsHeaderWritten bool
	racesHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "results.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating results.csv: %w", err)
	}
	om.resultsFile = f

	f, err = os.Create(filepath.Join(dir, "races.csv"))
	if err != nil {
		om.resultsFile.Close()
		return nil, fmt.Errorf("creating races.csv: %w", err)
	}
	om.racesFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteResults appends per-car results to results.csv.
func (om *OutputManager) WriteResults(results []RaceResult) error {
	if om == nil || len(results) == 0 {
		return nil
	}

	if !om.resultsHeaderWritten {
		if err := gocsv.Marshal(results, om.resultsFile); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		om.resultsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(results, om.resultsFile); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}

	return nil
}

// WriteSummary appends a race summary to races.csv.
func (om *OutputManager) WriteSummary(s RaceSummary) error {
	if om == nil {
		return nil
	}

	records := []RaceSummary{s}

	if !om.racesHeaderWritten {
		if err := gocsv.Marshal(records, om.racesFile); err != nil {
			return fmt.Errorf("writing race summary: %w", err)
		}
		om.racesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.racesFile); err != nil {
			return fmt.Errorf("writing race summary: %w", err)
		}
	}

	return nil
}

// WriteSnapshot saves a snapshot under the snapshots/ subdirectory.
func (om *OutputManager) WriteSnapshot(s *Snapshot) (string, error) {
	if om == nil {
		return "", nil
	}
	return SaveSnapshot(s, filepath.Join(om.dir, "snapshots"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.resultsFile != nil {
		if err := om.resultsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.racesFile != nil {
		if err := om.racesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
