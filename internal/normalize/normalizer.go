// Package normalize converts heterogeneous recognizer output into the single
// editable record shape the review screen works with.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"scanstation/internal/domain"
	"scanstation/internal/route"
)

const (
	unitCurrency = "円"
	unitPerDay   = "円/日"
)

// hintRules maps slip-type hint substrings to document types in priority
// order. First match wins: a hint containing both 建材 and レンタル is a
// material slip.
var hintRules = []struct {
	substr  string
	docType domain.DocumentType
}{
	{"建材", domain.DocTypeMaterial},
	{"レンタル", domain.DocTypeRental},
	{"見積", domain.DocTypeEstimate},
}

// Record converts a recognition outcome into the canonical editable record.
// Missing fields default rather than error: numbers to 0, strings to empty,
// the unit to 円/日 for non-fuel documents.
func Record(outcome *domain.RecognitionOutcome) domain.EditableRecord {
	switch outcome.Kind {
	case domain.OutcomeFuel:
		return fromFuel(outcome.Fuel)
	case domain.OutcomeSynthetic:
		return fromSynthetic(outcome.Synthetic)
	default:
		return fromGeneric(outcome.Generic)
	}
}

func fromFuel(f *domain.FuelFields) domain.EditableRecord {
	if f == nil {
		f = &domain.FuelFields{}
	}
	qty := nonNegative(f.QuantityLiters)
	return domain.EditableRecord{
		DocType:  domain.DocTypeFuel,
		Vendor:   f.StoreName,
		ItemName: fmt.Sprintf("%s %sL", f.FuelType, formatQuantity(qty)),
		Unit:     unitCurrency,
		Category: domain.CategoryFuel,
		Fuel: &domain.FuelDetail{
			FuelType:       f.FuelType,
			QuantityLiters: qty,
			UnitPrice:      nonNegative(f.UnitPrice),
			TotalAmount:    nonNegative(f.TotalAmount),
			VehicleNumber:  f.VehicleNumber,
			Date:           f.Date,
		},
	}
}

func fromGeneric(g *domain.GenericFields) domain.EditableRecord {
	if g == nil {
		g = &domain.GenericFields{}
	}

	docType := InferDocType(g.SlipTypeHint)

	vendor := g.VendorName
	if vendor == "" {
		vendor = g.CompanyName
	}

	itemName := ""
	if len(g.Items) > 0 {
		itemName = g.Items[0].Name
	}
	if itemName == "" {
		itemName = g.Description
	}

	price := nonNegative(g.TotalAmount)
	if price == 0 && len(g.Items) > 0 {
		price = nonNegative(g.Items[0].Amount)
	}

	return domain.EditableRecord{
		DocType:  docType,
		Vendor:   vendor,
		ItemName: itemName,
		Price:    price,
		Unit:     unitPerDay,
		Category: route.CategoryFor(docType),
	}
}

func fromSynthetic(s *domain.SyntheticFields) domain.EditableRecord {
	if s == nil {
		s = &domain.SyntheticFields{DocType: domain.DocTypeReceipt}
	}
	unit := s.Unit
	if unit == "" {
		unit = unitPerDay
	}
	return domain.EditableRecord{
		DocType:     s.DocType,
		Vendor:      s.Vendor,
		ItemName:    s.ItemName,
		Price:       nonNegative(s.Price),
		Unit:        unit,
		DeliveryFee: nonNegative(s.DeliveryFee),
		Category:    route.CategoryFor(s.DocType),
		Unverified:  true,
	}
}

// InferDocType resolves a document type from the free-text slip-type hint by
// ordered substring match, defaulting to receipt.
func InferDocType(hint string) domain.DocumentType {
	for _, rule := range hintRules {
		if strings.Contains(hint, rule.substr) {
			return rule.docType
		}
	}
	return domain.DocTypeReceipt
}

// formatQuantity renders liters without trailing zeros (45, not 45.000000).
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func nonNegative(f float64) float64 {
	if f < 0 || f != f { // reject negatives and NaN
		return 0
	}
	return f
}
