package scan

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"itemscan/pkg/tooltip"
)

// Writer appends one CSV row per processed image to a timestamped output
// file. The header is derived from the record schema with Filename
// prepended, and every row is flushed as soon as it is written so a crash
// mid-run keeps everything processed so far.
type Writer struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// NewWriter creates data/ocr_output_<timestamp>.csv and writes the header.
func NewWriter(dataDir string) (*Writer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dataDir, fmt.Sprintf("ocr_output_%s.csv", time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"Filename"}, tooltip.Labels()...)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Writer{path: path, f: f, w: w}, nil
}

// Path returns the output file's location.
func (w *Writer) Path() string { return w.path }

// Write appends one row and flushes it immediately.
func (w *Writer) Write(filename string, rec tooltip.Record) error {
	if err := w.w.Write(append([]string{filename}, rec.Row()...)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("flush row: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}
