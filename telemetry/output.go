package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/kweller/subnucleon/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	eventsFile *os.File

	eventsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	eventsPath := filepath.Join(dir, "events.csv")
	f, err := os.Create(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteEvent appends one event record to events.csv.
func (om *OutputManager) WriteEvent(rec EventRecord) error {
	if om == nil {
		return nil
	}

	records := []EventRecord{rec}

	if !om.eventsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.eventsFile); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
		om.eventsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.eventsFile); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
	}
	return nil
}

// WriteSummary writes the aggregated run stats to summary.csv.
func (om *OutputManager) WriteSummary(stats RunStats) error {
	if om == nil {
		return nil
	}
	path := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal([]RunStats{stats}, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.eventsFile.Close()
}
