package usecase

import (
	"cmp"
	"slices"

	"wbreports/internal/domain"
)

// Rename returns a copy of r with every key replaced by its display name.
// Keys missing from m keep their name; values are not touched.
func Rename(r domain.Record, m domain.FieldMapping) domain.Record {
	var out domain.Record
	for _, f := range r.Fields() {
		name, ok := m[f.Key]
		if !ok {
			name = f.Key
		}
		out.Set(name, f.Value)
	}
	return out
}

// RenameAll renames each record once, keeping order
func RenameAll(records []domain.Record, m domain.FieldMapping) []domain.Record {
	rows := make([]domain.Record, 0, len(records))
	for _, r := range records {
		rows = append(rows, Rename(r, m))
	}
	return rows
}

// FlattenKeywordStats turns per-date groups into one row per keyword and date,
// ordered by date and then by the order of stats within a date. Each row carries the
// campaign id and its report date.
func FlattenKeywordStats(campaignID int64, groups []domain.KeywordDateGroup, m domain.FieldMapping) []domain.Record {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b domain.KeywordDateGroup) int {
		return cmp.Compare(a.Date, b.Date)
	})

	rows := make([]domain.Record, 0)
	for _, group := range sorted {
		for _, stat := range group.Stats {
			row := stat.Clone()
			row.Set(domain.CampaignIDField, campaignID)
			row.Set(domain.ReportDateField, group.Date)
			rows = append(rows, Rename(row, m))
		}
	}
	return rows
}
