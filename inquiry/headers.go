package inquiry

import (
	"fmt"
	"strings"
)

// Aliases maps each canonical field to its known header spellings. Order is priority:
// the first alias present in the sheet wins.
var Aliases = map[string][]string{
	FieldTimestamp: {"timestamp", "time", "date/time", "date"},
	FieldName:      {"name", "full name", "your name"},
	FieldEmail:     {"email", "e-mail", "mail", "your email"},
	FieldSymptoms: {
		"symptoms", "message", "symptoms / message", "symptom details",
		"description", "issue", "problem", "notes", "details", "comments",
		"messages", "patient message",
	},
	FieldUrgency: {"urgency", "priority", "severity", "how urgent"},
}

// Column is a header cell in the source sheet.
type Column struct {
	Name string
	// Index is 0-based.
	Index int
}

// HeaderMap resolves each canonical field to the sheet column supplying it.
type HeaderMap map[string]Column

// MissingRequiredColumnError reports canonical fields no header could supply.
type MissingRequiredColumnError struct {
	Missing   []string
	Available []string
}

func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("missing required columns after normalization: %s (columns present: %s); rename the sheet headers or adjust the form question titles",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// ResolveHeaders maps the canonical fields onto headers. An exact header match wins;
// otherwise aliases are tried in order against trimmed, lower-cased headers. Duplicate
// headers resolve to their first occurrence.
func ResolveHeaders(headers []string) (HeaderMap, error) {
	exact := make(map[string]int, len(headers))
	folded := make(map[string]int, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		key := normalizeHeader(h)
		if _, ok := folded[key]; !ok {
			folded[key] = i
		}
	}

	hm := make(HeaderMap, len(CanonicalFields))
	var missing []string
	for _, field := range CanonicalFields {
		if i, ok := exact[field]; ok {
			hm[field] = Column{Name: headers[i], Index: i}
			continue
		}
		found := false
		for _, alias := range Aliases[field] {
			if i, ok := folded[normalizeHeader(alias)]; ok {
				hm[field] = Column{Name: headers[i], Index: i}
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		available := make([]string, 0, len(headers))
		for _, h := range headers {
			if h != "" {
				available = append(available, h)
			}
		}
		return nil, &MissingRequiredColumnError{Missing: missing, Available: available}
	}
	return hm, nil
}

// IndexOf returns the 0-based position of an exact header match, or -1.
func IndexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
