package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morph/config"
)

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir       string
	ticksFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	ticksHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	om.ticksFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.ticksFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTick writes a sampled tick to ticks.csv.
func (om *OutputManager) WriteTick(rec TickRecord) error {
	if om == nil {
		return nil
	}

	records := []TickRecord{rec}

	if !om.ticksHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing tick: %w", err)
		}
		om.ticksHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing tick: %w", err)
		}
	}

	return nil
}

// WritePerf writes a profiler window ending at tick windowEnd to perf.csv.
func (om *OutputManager) WritePerf(w Window, windowEnd uint64) error {
	if om == nil {
		return nil
	}

	records := []PerfRow{w.Row(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
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

	if om.ticksFile != nil {
		if err := om.ticksFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
