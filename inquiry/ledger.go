package inquiry

import "strings"

// ParseRows turns raw sheet values (row 1 = headers) into typed rows. Short rows are
// padded with empty cells. processedCol is the 0-based Processed column, or -1.
// Field values are trimmed; the Processed value is kept verbatim.
func ParseRows(values [][]string, hm HeaderMap, processedCol int) []Row {
	if len(values) < 2 {
		return nil
	}
	rows := make([]Row, 0, len(values)-1)
	for i, v := range values[1:] {
		cell := func(idx int) string {
			if idx >= 0 && idx < len(v) {
				return v[idx]
			}
			return ""
		}
		field := func(name string) string {
			return strings.TrimSpace(cell(hm[name].Index))
		}
		rows = append(rows, Row{
			Index:     i + 2,
			Timestamp: field(FieldTimestamp),
			Name:      field(FieldName),
			Email:     field(FieldEmail),
			Symptoms:  field(FieldSymptoms),
			Urgency:   field(FieldUrgency),
			Processed: cell(processedCol),
		})
	}
	return rows
}

// Unprocessed returns, in sheet order, the rows whose Processed value is not exactly
// ProcessedMarker. " Yes" and "yes" are not processed.
func Unprocessed(rows []Row) []Row {
	var pending []Row
	for _, r := range rows {
		if r.Processed != ProcessedMarker {
			pending = append(pending, r)
		}
	}
	return pending
}
