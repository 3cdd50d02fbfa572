package tooltip

import (
	"regexp"
	"strconv"
	"strings"

	"itemscan/pkg/catalog"
)

// nameDistanceLimit caps the fuzzy match used when resolving the title line
// against the catalog. It is deliberately looser than the general validator
// limit: the large title font picks up more OCR noise than body text.
const nameDistanceLimit = 5

var digitsRE = regexp.MustCompile(`\d+`)

// lowerLabels caches the lowercased schema labels for substring scans.
var lowerLabels = func() []string {
	out := make([]string, len(Schema))
	for i, f := range Schema {
		out[i] = strings.ToLower(f.Label)
	}
	return out
}()

// Parse turns raw OCR text from one tooltip screenshot into a Record. It is
// a total function: any input, including empty or garbage text, yields a
// record with every schema field legally typed, defaults standing in for
// whatever could not be extracted.
func Parse(text string, cat *catalog.Catalog) Record {
	rec := NewRecord()

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return rec
	}

	// The item name is the first line that is not the radiant marker.
	for _, line := range lines {
		if line != Marker {
			rec.SetString("Name", line)
			break
		}
	}

	// Resolve the raw title against the catalog, case-folded. Without any
	// catalog rows the raw OCR text stands as-is.
	if name := rec.String("Name"); name != "" && cat != nil && cat.Len() > 0 {
		closest, dist := cat.Closest(name, true)
		if dist >= 0 && dist <= nameDistanceLimit {
			rec.SetString("Name", closest)
			if typ, ok := cat.Type(closest); ok {
				rec.SetString("Item Type", typ)
			}
		}
	}

	for _, line := range lines {
		if strings.Contains(line, Marker) {
			rec.SetBool("Is Radiant", true)
		}

		low := strings.ToLower(line)
		for i, f := range Schema {
			if f.Kind != KindInt {
				continue
			}
			if !strings.Contains(low, lowerLabels[i]) {
				continue
			}
			// First digit run anywhere in the line. Overlapping labels
			// ("Damage" inside "Fire Damage") all assign; that is the
			// established extraction behavior, not an accident to fix.
			if m := digitsRE.FindString(line); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					rec.SetInt(f.Label, n)
				}
			}
		}

		// Quality and Grade carry text, not numbers: take whatever follows
		// the last colon (the whole line when there is none).
		if strings.Contains(low, "quality") {
			rec.SetString("Item Quality", afterLastColon(line))
		}
		if strings.Contains(low, "grade") {
			rec.SetString("Grade", afterLastColon(line))
		}
	}

	// Description: last line that is neither the marker nor something that
	// looks like an attribute line.
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if line == Marker || containsAnyLabel(line) {
			continue
		}
		rec.SetString("Description", line)
		break
	}

	return rec
}

func afterLastColon(line string) string {
	if i := strings.LastIndex(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}

func containsAnyLabel(line string) bool {
	low := strings.ToLower(line)
	for _, label := range lowerLabels {
		if strings.Contains(low, label) {
			return true
		}
	}
	return false
}
