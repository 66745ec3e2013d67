package inquiry

// Canonical field names.
const (
	FieldTimestamp = "Timestamp"
	FieldName      = "Name"
	FieldEmail     = "Email"
	FieldSymptoms  = "Symptoms"
	FieldUrgency   = "Urgency"

	// ProcessedColumn is the system-owned state column on the source sheet.
	ProcessedColumn = "Processed"
	// ProcessedMarker is the only value that counts as processed.
	ProcessedMarker = "Yes"

	UnknownUrgency  = "Unknown"
	StatusProcessed = "Processed"
)

// CanonicalFields lists the required fields in header-resolution order.
var CanonicalFields = []string{FieldTimestamp, FieldName, FieldEmail, FieldSymptoms, FieldUrgency}

// ArchiveHeader is row 1 of the archive sheet.
var ArchiveHeader = []string{"Timestamp", "Name", "Email", "Summary", "Urgency", "Status"}

// Row is one form submission after header normalization.
type Row struct {
	// Index is the 1-based sheet row; the header is row 1.
	Index     int
	Timestamp string
	Name      string
	Email     string
	Symptoms  string
	Urgency   string
	Processed string
}

// ReportedUrgency is the urgency the patient gave, or "Unknown".
func (r Row) ReportedUrgency() string {
	if r.Urgency == "" {
		return UnknownUrgency
	}
	return r.Urgency
}

// Summary is the structured triage record produced for a row.
type Summary struct {
	Summary  string   `json:"summary"`
	Urgency  string   `json:"urgency"`
	Keywords []string `json:"keywords"`
}

// ArchiveEntry is one row of the append-only archive sheet.
type ArchiveEntry struct {
	Timestamp string
	Name      string
	Email     string
	Summary   string
	Urgency   string
	Status    string
}

// NewArchiveEntry flattens a processed row and its summary.
func NewArchiveEntry(r Row, s Summary) ArchiveEntry {
	return ArchiveEntry{
		Timestamp: r.Timestamp,
		Name:      r.Name,
		Email:     r.Email,
		Summary:   s.Summary,
		Urgency:   s.Urgency,
		Status:    StatusProcessed,
	}
}

// Values returns the entry in ArchiveHeader order.
func (e ArchiveEntry) Values() []string {
	return []string{e.Timestamp, e.Name, e.Email, e.Summary, e.Urgency, e.Status}
}

// ParseArchive reads archive sheet values, skipping the header row.
func ParseArchive(values [][]string) []ArchiveEntry {
	if len(values) < 2 {
		return nil
	}
	entries := make([]ArchiveEntry, 0, len(values)-1)
	for _, v := range values[1:] {
		cell := func(i int) string {
			if i < len(v) {
				return v[i]
			}
			return ""
		}
		entries = append(entries, ArchiveEntry{
			Timestamp: cell(0),
			Name:      cell(1),
			Email:     cell(2),
			Summary:   cell(3),
			Urgency:   cell(4),
			Status:    cell(5),
		})
	}
	return entries
}
