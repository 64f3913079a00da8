// Package route holds the static routing tables that map document types to
// ledger categories and categories to persistence destinations.
package route

import "scanstation/internal/domain"

// DefaultCategory maps each document type to its default ledger category.
// The mapping is many-to-one: estimates file under the rental category
// (equipment quotes), so subcon is reachable only by user override.
var DefaultCategory = map[domain.DocumentType]domain.Category{
	domain.DocTypeEstimate:   domain.CategoryRental,
	domain.DocTypeRental:     domain.CategoryRental,
	domain.DocTypeMaterial:   domain.CategoryMaterial,
	domain.DocTypeReceipt:    domain.CategoryExpense,
	domain.DocTypeFuel:       domain.CategoryFuel,
	domain.DocTypeAttendance: domain.CategoryLabor,
}

// DestinationByCategory maps each category to its ledger destination
// endpoint identifier.
var DestinationByCategory = map[domain.Category]string{
	domain.CategoryRental:   "equipment",
	domain.CategoryMaterial: "material-costs",
	domain.CategorySubcon:   "subcon-costs",
	domain.CategoryExpense:  "expenses",
	domain.CategoryFuel:     "vehicle-fuel",
	domain.CategoryLabor:    "labor-costs",
}

// FallbackDestination receives records whose category is missing or
// unrecognized.
const FallbackDestination = "expenses"

// CategoryFor returns the default category for a document type. Unknown
// types file under expense.
func CategoryFor(dt domain.DocumentType) domain.Category {
	if c, ok := DefaultCategory[dt]; ok {
		return c
	}
	return domain.CategoryExpense
}

// Destination resolves the ledger destination for a category, defaulting to
// the expense destination. It never errors.
func Destination(c domain.Category) string {
	if d, ok := DestinationByCategory[c]; ok {
		return d
	}
	return FallbackDestination
}

// Route resolves the persistence destination for a confirmed record.
func Route(rec *domain.EditableRecord) string {
	return Destination(rec.Category)
}

// Info describes one row of the routing table for presentation.
type Info struct {
	DocType     domain.DocumentType `json:"doc_type"`
	Label       string              `json:"label"`
	Icon        string              `json:"icon"`
	Category    domain.Category     `json:"category"`
	Destination string              `json:"destination"`
}

// tableOrder fixes the presentation order of the six document types.
var tableOrder = []domain.DocumentType{
	domain.DocTypeEstimate,
	domain.DocTypeRental,
	domain.DocTypeMaterial,
	domain.DocTypeReceipt,
	domain.DocTypeFuel,
	domain.DocTypeAttendance,
}

// Table returns the six-row routing table in display order.
func Table() []Info {
	rows := make([]Info, 0, len(tableOrder))
	for _, dt := range tableOrder {
		cat := DefaultCategory[dt]
		rows = append(rows, Info{
			DocType:     dt,
			Label:       domain.DocumentTypeLabels[dt],
			Icon:        domain.DocumentTypeIcons[dt],
			Category:    cat,
			Destination: DestinationByCategory[cat],
		})
	}
	return rows
}
