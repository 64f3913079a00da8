package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanstation/internal/domain"
	"scanstation/internal/route"
)

func TestCategoryFor_Defaults(t *testing.T) {
	tests := []struct {
		docType domain.DocumentType
		want    domain.Category
	}{
		{domain.DocTypeEstimate, domain.CategoryRental},
		{domain.DocTypeRental, domain.CategoryRental},
		{domain.DocTypeMaterial, domain.CategoryMaterial},
		{domain.DocTypeReceipt, domain.CategoryExpense},
		{domain.DocTypeFuel, domain.CategoryFuel},
		{domain.DocTypeAttendance, domain.CategoryLabor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, route.CategoryFor(tt.docType), "docType %s", tt.docType)
	}
}

func TestCategoryFor_UnknownFilesUnderExpense(t *testing.T) {
	assert.Equal(t, domain.CategoryExpense, route.CategoryFor(domain.DocumentType("mystery")))
}

func TestDestination_AllCategories(t *testing.T) {
	tests := []struct {
		category domain.Category
		want     string
	}{
		{domain.CategoryRental, "equipment"},
		{domain.CategoryMaterial, "material-costs"},
		{domain.CategorySubcon, "subcon-costs"},
		{domain.CategoryExpense, "expenses"},
		{domain.CategoryFuel, "vehicle-fuel"},
		{domain.CategoryLabor, "labor-costs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, route.Destination(tt.category), "category %s", tt.category)
	}
}

func TestDestination_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, route.FallbackDestination, route.Destination(domain.Category("")))
	assert.Equal(t, route.FallbackDestination, route.Destination(domain.Category("bogus")))
}

func TestRoute_UsesRecordCategory(t *testing.T) {
	// User overrides win over the doc type default.
	rec := &domain.EditableRecord{
		DocType:  domain.DocTypeEstimate,
		Category: domain.CategorySubcon,
	}
	assert.Equal(t, "subcon-costs", route.Route(rec))
}

func TestTable_SixRowsInDisplayOrder(t *testing.T) {
	rows := route.Table()
	require.Len(t, rows, 6)

	wantOrder := []domain.DocumentType{
		domain.DocTypeEstimate,
		domain.DocTypeRental,
		domain.DocTypeMaterial,
		domain.DocTypeReceipt,
		domain.DocTypeFuel,
		domain.DocTypeAttendance,
	}
	for i, row := range rows {
		assert.Equal(t, wantOrder[i], row.DocType)
		assert.NotEmpty(t, row.Label)
		assert.NotEmpty(t, row.Icon)
		assert.NotEmpty(t, row.Destination)
		assert.Equal(t, route.CategoryFor(row.DocType), row.Category)
	}

	assert.Equal(t, "見積書", rows[0].Label)
	assert.Equal(t, "ガソリン", rows[4].Label)
}
