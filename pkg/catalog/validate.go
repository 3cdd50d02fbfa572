package catalog

// validateDistanceLimit caps how far an OCR name may drift from a catalog
// entry and still be corrected. Title-line resolution in the tooltip parser
// deliberately runs with a looser limit, since OCR noise on the large title
// font is worse than on body text; the two limits stay separate.
const validateDistanceLimit = 3

// Validate resolves a raw candidate name against the catalog.
//
// Decision order, first match wins:
//  1. candidate is a known UI column label (case-insensitive) -> ("", "")
//  2. catalog is empty -> (candidate, "") — nothing to validate against
//  3. exact catalog hit -> (candidate, its type)
//  4. closest catalog name within the distance limit -> (that name, its type)
//  5. otherwise -> (candidate, "") — keep the raw OCR string, type unknown
func (c *Catalog) Validate(candidate string) (string, string) {
	if c.IsColumnName(candidate) {
		return "", ""
	}
	if len(c.types) == 0 {
		return candidate, ""
	}
	if typ, ok := c.types[candidate]; ok {
		return candidate, typ
	}
	name, dist := c.Closest(candidate, false)
	if dist >= 0 && dist <= validateDistanceLimit {
		return name, c.types[name]
	}
	return candidate, ""
}
