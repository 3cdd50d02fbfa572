package scan

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"itemscan/pkg/catalog"
	"itemscan/pkg/tooltip"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte("Name,Type\nIron Sword,Weapon\n"), 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	return catalog.Load(path)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
}

func readOutput(t *testing.T, dataDir string) [][]string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dataDir, "ocr_output_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected exactly one output file, got %v (err %v)", matches, err)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return rows
}

func TestListImagesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.PNG")
	touch(t, dir, "a.jpg")
	touch(t, dir, "c.jpeg")
	touch(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	want := []string{"a.jpg", "b.PNG", "c.jpeg"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListImagesMissingDir(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("missing directory must error")
	}
}

func TestWriterHeaderAndRowShape(t *testing.T) {
	dataDir := t.TempDir()
	w, err := NewWriter(dataDir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write("shot.png", tooltip.NewRecord()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readOutput(t, dataDir)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "Filename" {
		t.Fatalf("first header cell = %q, want Filename", rows[0][0])
	}
	if len(rows[0]) != len(tooltip.Schema)+1 {
		t.Fatalf("header has %d cells, want %d", len(rows[0]), len(tooltip.Schema)+1)
	}
	if len(rows[1]) != len(rows[0]) {
		t.Fatalf("data row has %d cells, header %d", len(rows[1]), len(rows[0]))
	}
	if rows[1][0] != "shot.png" {
		t.Fatalf("row filename = %q", rows[1][0])
	}
}

func TestWriterFlushesEachRow(t *testing.T) {
	dataDir := t.TempDir()
	w, err := NewWriter(dataDir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer w.Close()
	if err := w.Write("shot.png", tooltip.NewRecord()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Without closing, the row must already be on disk.
	rows := readOutput(t, dataDir)
	if len(rows) != 2 {
		t.Fatalf("got %d rows before Close, want 2", len(rows))
	}
}

func TestRunnerEndToEnd(t *testing.T) {
	imagesDir := t.TempDir()
	dataDir := t.TempDir()
	touch(t, imagesDir, "shot.png")

	r := &Runner{
		ImagesDir: imagesDir,
		DataDir:   dataDir,
		Catalog:   testCatalog(t),
		Recognize: func(path string) (string, error) {
			return "Iron Swrd\nRunes can't be added to this item\nAttack Power 45\nA sturdy blade.", nil
		},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rows := readOutput(t, dataDir)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	header, row := rows[0], rows[1]
	cell := func(label string) string {
		for i, h := range header {
			if h == label {
				return row[i]
			}
		}
		t.Fatalf("no column %q", label)
		return ""
	}
	if cell("Name") != "Iron Sword" || cell("Item Type") != "Weapon" {
		t.Fatalf("name resolution: got (%q, %q)", cell("Name"), cell("Item Type"))
	}
	if cell("Is Radiant") != "True" {
		t.Fatalf("Is Radiant = %q, want True", cell("Is Radiant"))
	}
	if cell("Attack Power") != "45" {
		t.Fatalf("Attack Power = %q, want 45", cell("Attack Power"))
	}
	if cell("Description") != "A sturdy blade." {
		t.Fatalf("Description = %q", cell("Description"))
	}
}

func TestRunnerOCRFailureStillWritesRow(t *testing.T) {
	imagesDir := t.TempDir()
	dataDir := t.TempDir()
	touch(t, imagesDir, "broken.png")

	r := &Runner{
		ImagesDir: imagesDir,
		DataDir:   dataDir,
		Catalog:   testCatalog(t),
		Recognize: func(path string) (string, error) {
			return "", errors.New("boom")
		},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows := readOutput(t, dataDir)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want default row despite OCR failure", len(rows))
	}
}

func TestRunnerWorkerPoolPreservesOrder(t *testing.T) {
	imagesDir := t.TempDir()
	dataDir := t.TempDir()
	var want []string
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("shot_%d.png", i)
		touch(t, imagesDir, name)
		want = append(want, name)
	}

	r := &Runner{
		ImagesDir: imagesDir,
		DataDir:   dataDir,
		Workers:   4,
		Catalog:   testCatalog(t),
		Recognize: func(path string) (string, error) {
			return "Tooltip " + filepath.Base(path), nil
		},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rows := readOutput(t, dataDir)
	if len(rows) != len(want)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(want)+1)
	}
	for i, name := range want {
		if rows[i+1][0] != name {
			t.Fatalf("row %d filename = %q, want %q", i, rows[i+1][0], name)
		}
	}
}

func TestRunnerEmptyCatalogAborts(t *testing.T) {
	imagesDir := t.TempDir()
	dataDir := t.TempDir()
	touch(t, imagesDir, "shot.png")

	r := &Runner{
		ImagesDir: imagesDir,
		DataDir:   dataDir,
		Catalog:   catalog.New(),
		Recognize: func(path string) (string, error) { return "", nil },
	}
	err := r.Run(context.Background())
	if !errors.Is(err, catalog.ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if matches, _ := filepath.Glob(filepath.Join(dataDir, "ocr_output_*.csv")); len(matches) != 0 {
		t.Fatalf("no output file may be created on a fatal precondition")
	}
}

func TestRunnerMissingImagesDirAborts(t *testing.T) {
	r := &Runner{
		ImagesDir: filepath.Join(t.TempDir(), "nope"),
		DataDir:   t.TempDir(),
		Catalog:   testCatalog(t),
		Recognize: func(path string) (string, error) { return "", nil },
	}
	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("missing images directory must abort the run")
	}
}

func TestRunnerNoImagesAborts(t *testing.T) {
	imagesDir := t.TempDir()
	touch(t, imagesDir, "readme.txt")

	r := &Runner{
		ImagesDir: imagesDir,
		DataDir:   t.TempDir(),
		Catalog:   testCatalog(t),
		Recognize: func(path string) (string, error) { return "", nil },
	}
	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("an images directory without images must abort the run")
	}
}
