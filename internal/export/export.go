// Package export writes the diary out as CSV files and as an insights report.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

// Result lists the files written by one export.
type Result struct {
	Dir   string
	Files []string
}

type Exporter struct {
	store storage.Provider
	clock analytics.Clock
	dir   string
}

// NewExporter writes into dir, which is created on first export.
func NewExporter(store storage.Provider, clock analytics.Clock, dir string) *Exporter {
	return &Exporter{store: store, clock: clock, dir: dir}
}

func (e *Exporter) timestamp() string {
	return e.clock.Now().Format(constants.ExportTimestampFormat)
}

func (e *Exporter) fileName(kind, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", constants.AppName, kind, e.timestamp(), ext)
}

func (e *Exporter) prepareDir() error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

func (e *Exporter) writeFile(name string, data []byte) (string, error) {
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
