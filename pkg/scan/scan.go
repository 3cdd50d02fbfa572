package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"itemscan/pkg/catalog"
	"itemscan/pkg/ocr"
	"itemscan/pkg/tooltip"
)

// Runner drives one batch: every screenshot in ImagesDir goes through
// preprocess -> OCR -> parse, and lands as one row in a timestamped CSV
// under DataDir. Output row order always matches the sorted directory
// listing, also when a worker pool is in use.
type Runner struct {
	ImagesDir string
	DataDir   string
	Lang      string
	Workers   int
	Watch     bool
	Verbose   bool
	Catalog   *catalog.Catalog

	// Recognize overrides the OCR step; tests use it to feed canned text.
	// When set, the Tesseract startup probe is skipped.
	Recognize func(path string) (string, error)
}

// Run executes the batch. All fatal preconditions (engine, catalog, images
// directory) are checked before the output file is created.
func (r *Runner) Run(ctx context.Context) error {
	if r.Recognize == nil {
		if err := ocr.EngineCheck(r.Lang); err != nil {
			return err
		}
	}
	if r.Catalog == nil || r.Catalog.Len() == 0 {
		return fmt.Errorf("catalog: %w", catalog.ErrEmpty)
	}
	files, err := ListImages(r.ImagesDir)
	if err != nil {
		return fmt.Errorf("images directory %s: %w", r.ImagesDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files (.png/.jpg/.jpeg) in %s", r.ImagesDir)
	}

	w, err := NewWriter(r.DataDir)
	if err != nil {
		return err
	}
	defer w.Close()

	workers := r.effectiveWorkers()
	log.Printf("Scanning %d files (workers=%d)", len(files), workers)
	if workers <= 1 {
		for _, name := range files {
			if err := w.Write(name, r.processOne(name)); err != nil {
				return fmt.Errorf("row for %s: %w", name, err)
			}
		}
	} else if err := r.runPool(files, workers, w); err != nil {
		return err
	}

	if r.Watch {
		if err := r.watch(ctx, w); err != nil {
			return err
		}
	}
	log.Printf("OCR results saved to %s", w.Path())
	return nil
}

// processOne runs the per-image pipeline. OCR trouble degrades to an empty
// text, so the row still appears with default fields; the parser itself is
// total and cannot fail.
func (r *Runner) processOne(name string) tooltip.Record {
	text, err := r.recognize(filepath.Join(r.ImagesDir, name))
	if err != nil {
		log.Printf("WARN ocr %s: %v", name, err)
		text = ""
	}
	rec := tooltip.Parse(text, r.Catalog)
	r.logRecord(name, rec)
	return rec
}

func (r *Runner) recognize(path string) (string, error) {
	if r.Recognize != nil {
		return r.Recognize(path)
	}
	return ocr.Recognize(path, r.Lang, r.DataDir)
}

func (r *Runner) effectiveWorkers() int {
	if r.Workers <= 1 {
		return 1
	}
	return r.Workers
}

func (r *Runner) logRecord(name string, rec tooltip.Record) {
	if !r.Verbose {
		return
	}
	log.Printf("Processed %s:", name)
	row := rec.Row()
	for i, f := range tooltip.Schema {
		log.Printf("  %s: %s", f.Label, row[i])
	}
}

// runPool fans files out to a worker pool but emits rows strictly in input
// order: finished records park in a pending map until their turn comes up.
func (r *Runner) runPool(files []string, workers int, w *Writer) error {
	type result struct {
		idx int
		rec tooltip.Record
	}
	jobs := make(chan int)
	results := make(chan result, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- result{idx, r.processOne(files[idx])}
			}
		}()
	}
	go func() {
		for i := range files {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	pending := make(map[int]tooltip.Record)
	next := 0
	var writeErr error
	for res := range results {
		if writeErr != nil {
			continue // drain so workers can finish
		}
		pending[res.idx] = res.rec
		for {
			rec, ok := pending[next]
			if !ok {
				break
			}
			if err := w.Write(files[next], rec); err != nil {
				writeErr = fmt.Errorf("row for %s: %w", files[next], err)
				break
			}
			delete(pending, next)
			next++
		}
	}
	return writeErr
}

// ListImages returns the image filenames in dir, sorted. Only regular files
// with a .png/.jpg/.jpeg extension (case-insensitive) count.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
