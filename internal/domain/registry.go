package domain

import "time"

// Registry column names. The administrative source is expected, but not
// required, to carry rawOfficialCountColumn; when present it is renamed to
// OfficialCountColumn. LastAuditColumn is always appended.
const (
	rawOfficialCountColumn = "Number of Evacuation Center"
	OfficialCountColumn    = "Official_Count"
	LastAuditColumn        = "Last_Audit"
)

// displayColumns is the preferred column order for registry presentation.
// Columns missing from the source are simply skipped.
var displayColumns = []string{"Municipality_City", "Province", "Region", OfficialCountColumn, LastAuditColumn}

// AdminRecord is one normalized registry row: the source columns (with the
// official-count column renamed) plus a synthetic audit-recency date.
type AdminRecord struct {
	Fields    map[string]string
	LastAudit time.Time
}

// Registry is the normalized administrative source. Columns preserves the
// source column order; it shares the province concept with facilities only
// informally, no join is performed.
type Registry struct {
	Columns []string
	Rows    []AdminRecord
}

// NormalizeRegistry renames the official-count column where present, leaves
// every other column untouched, and attaches a last-audit date 0–89 days
// before now to each row. No rows are filtered.
func NormalizeRegistry(columns []string, rows []map[string]string, sampler Sampler) Registry {
	normalized := Registry{
		Columns: make([]string, len(columns)),
		Rows:    make([]AdminRecord, 0, len(rows)),
	}
	for i, col := range columns {
		if col == rawOfficialCountColumn {
			col = OfficialCountColumn
		}
		normalized.Columns[i] = col
	}

	for _, row := range rows {
		fields := make(map[string]string, len(row))
		for col, value := range row {
			if col == rawOfficialCountColumn {
				col = OfficialCountColumn
			}
			fields[col] = value
		}
		normalized.Rows = append(normalized.Rows, AdminRecord{
			Fields:    fields,
			LastAudit: syntheticDate(sampler, 90),
		})
	}
	return normalized
}

// DisplayColumns returns the registry columns worth showing, in presentation
// order: the known geographic and count columns that are actually present,
// plus the synthetic audit date.
func (r Registry) DisplayColumns() []string {
	present := make(map[string]bool, len(r.Columns))
	for _, col := range r.Columns {
		present[col] = true
	}
	out := make([]string, 0, len(displayColumns))
	for _, col := range displayColumns {
		if col == LastAuditColumn || present[col] {
			out = append(out, col)
		}
	}
	return out
}
