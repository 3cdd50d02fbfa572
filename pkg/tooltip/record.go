package tooltip

import "strconv"

// Record holds one parsed tooltip. Every schema field is always present with
// a legally typed value; parsing only ever overwrites defaults, so a record
// fresh from NewRecord already renders as a complete (all-default) CSV row.
type Record struct {
	strs  map[string]string
	ints  map[string]int
	bools map[string]bool
}

// NewRecord returns a record with every schema field at its default:
// empty string, zero, or false according to the field's kind.
func NewRecord() Record {
	r := Record{
		strs:  make(map[string]string),
		ints:  make(map[string]int),
		bools: make(map[string]bool),
	}
	for _, f := range Schema {
		switch f.Kind {
		case KindString:
			r.strs[f.Label] = ""
		case KindInt:
			r.ints[f.Label] = 0
		case KindBool:
			r.bools[f.Label] = false
		}
	}
	return r
}

// SetString assigns a string field. Labels not declared as string kind are
// ignored, keeping the schema's one-type-per-field guarantee.
func (r Record) SetString(label, v string) {
	if _, ok := r.strs[label]; ok {
		r.strs[label] = v
	}
}

// SetInt assigns an int field; undeclared labels are ignored.
func (r Record) SetInt(label string, v int) {
	if _, ok := r.ints[label]; ok {
		r.ints[label] = v
	}
}

// SetBool assigns a bool field; undeclared labels are ignored.
func (r Record) SetBool(label string, v bool) {
	if _, ok := r.bools[label]; ok {
		r.bools[label] = v
	}
}

// String returns the value of a string field, or "" for unknown labels.
func (r Record) String(label string) string { return r.strs[label] }

// Int returns the value of an int field, or 0 for unknown labels.
func (r Record) Int(label string) int { return r.ints[label] }

// Bool returns the value of a bool field, or false for unknown labels.
func (r Record) Bool(label string) bool { return r.bools[label] }

// Row renders the record as CSV cells in schema order: strings verbatim,
// ints in base 10, bools as True/False (the rendering the downstream
// spreadsheets were built around).
func (r Record) Row() []string {
	out := make([]string, len(Schema))
	for i, f := range Schema {
		switch f.Kind {
		case KindString:
			out[i] = r.strs[f.Label]
		case KindInt:
			out[i] = strconv.Itoa(r.ints[f.Label])
		case KindBool:
			if r.bools[f.Label] {
				out[i] = "True"
			} else {
				out[i] = "False"
			}
		}
	}
	return out
}
