package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"strings"
)

// ErrEmpty indicates that no item rows survived loading. Name validation is
// meaningless without reference data, so batch callers abort on it.
var ErrEmpty = errors.New("no item data loaded")

// Catalog holds the reference data used for name correction: the item
// name -> type mapping merged from the catalog files, and the set of UI
// column labels that must never be mistaken for an item name.
type Catalog struct {
	types   map[string]string
	names   []string // keys in first-seen order, scans stay deterministic
	columns map[string]struct{}
}

func New() *Catalog {
	return &Catalog{
		types:   make(map[string]string),
		columns: make(map[string]struct{}),
	}
}

// Load reads Name/Type rows from each file in order. Later files win on
// duplicate names. A missing or unreadable file only logs a warning and
// contributes nothing; whether an empty result is fatal is the caller's call.
func Load(paths ...string) *Catalog {
	c := New()
	for _, p := range paths {
		c.loadFile(p)
	}
	return c
}

func (c *Catalog) loadFile(path string) {
	header, rows, err := readTable(path)
	if err != nil {
		log.Printf("WARN catalog file %s: %v", path, err)
		return
	}
	nameIdx := headerIndex(header, "Name")
	typeIdx := headerIndex(header, "Type")
	if nameIdx < 0 || typeIdx < 0 {
		log.Printf("WARN catalog file %s: header lacks Name/Type columns", path)
		return
	}
	added := 0
	for _, rec := range rows {
		if nameIdx >= len(rec) {
			continue
		}
		typ := ""
		if typeIdx < len(rec) {
			typ = rec[typeIdx]
		}
		c.put(rec[nameIdx], typ)
		added++
	}
	if added == 0 {
		log.Printf("WARN catalog file %s: no data rows", path)
	}
}

// LoadColumnNames reads the Name column of the given file into the set of
// lowercased UI labels. Missing file or column degrades to an empty set.
func (c *Catalog) LoadColumnNames(path string) {
	header, rows, err := readTable(path)
	if err != nil {
		log.Printf("WARN column-name file %s: %v", path, err)
		return
	}
	idx := headerIndex(header, "Name")
	if idx < 0 {
		log.Printf("WARN column-name file %s: header lacks Name column", path)
		return
	}
	for _, rec := range rows {
		if idx < len(rec) {
			c.columns[strings.ToLower(rec[idx])] = struct{}{}
		}
	}
}

func (c *Catalog) put(name, typ string) {
	if _, ok := c.types[name]; !ok {
		c.names = append(c.names, name)
	}
	c.types[name] = typ
}

// Len reports the number of distinct item names loaded.
func (c *Catalog) Len() int { return len(c.types) }

// HasColumnNames reports whether any UI column labels were loaded.
func (c *Catalog) HasColumnNames() bool { return len(c.columns) > 0 }

// Type looks up the declared type for an exact item name.
func (c *Catalog) Type(name string) (string, bool) {
	t, ok := c.types[name]
	return t, ok
}

// IsColumnName reports whether candidate matches a UI column label,
// case-insensitively.
func (c *Catalog) IsColumnName(candidate string) bool {
	_, ok := c.columns[strings.ToLower(candidate)]
	return ok
}

// Closest returns the catalog name with the smallest edit distance to
// candidate, along with that distance. With fold set, both sides are
// lowercased before measuring. Ties keep the first name encountered in
// load order. An empty catalog yields ("", -1).
func (c *Catalog) Closest(candidate string, fold bool) (string, int) {
	if fold {
		candidate = strings.ToLower(candidate)
	}
	best := ""
	bestDist := -1
	for _, name := range c.names {
		key := name
		if fold {
			key = strings.ToLower(key)
		}
		d := Distance(candidate, key)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	return best, bestDist
}

// readTable loads a whole CSV file, returning the header row and the data
// rows. Ragged rows are tolerated; a UTF-8 BOM is stripped.
func readTable(path string) ([]string, [][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil, err
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
