package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanstation/internal/domain"
	"scanstation/internal/normalize"
)

func TestRecord_Fuel(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind: domain.OutcomeFuel,
		Fuel: &domain.FuelFields{
			FuelType:       "レギュラー",
			QuantityLiters: 45,
			UnitPrice:      165,
			TotalAmount:    7425,
			VehicleNumber:  "品川 500 あ 12-34",
			Date:           "2025-12-01",
			StoreName:      "ENEOS 環七店",
		},
	}

	rec := normalize.Record(outcome)

	assert.Equal(t, domain.DocTypeFuel, rec.DocType)
	assert.Equal(t, domain.CategoryFuel, rec.Category)
	assert.Equal(t, "ENEOS 環七店", rec.Vendor)
	assert.Equal(t, "レギュラー 45L", rec.ItemName)
	assert.Equal(t, "円", rec.Unit)
	// The flat price stays zero; the amount lives in the fuel detail.
	assert.Zero(t, rec.Price)
	require.NotNil(t, rec.Fuel)
	assert.Equal(t, 7425.0, rec.Fuel.TotalAmount)
	assert.Equal(t, 45.0, rec.Fuel.QuantityLiters)
	assert.False(t, rec.Unverified)
}

func TestRecord_Fuel_FractionalLiters(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind: domain.OutcomeFuel,
		Fuel: &domain.FuelFields{FuelType: "軽油", QuantityLiters: 30.5},
	}
	rec := normalize.Record(outcome)
	assert.Equal(t, "軽油 30.5L", rec.ItemName)
}

func TestRecord_Fuel_NilFields(t *testing.T) {
	rec := normalize.Record(&domain.RecognitionOutcome{Kind: domain.OutcomeFuel})
	assert.Equal(t, domain.DocTypeFuel, rec.DocType)
	require.NotNil(t, rec.Fuel)
	assert.Zero(t, rec.Fuel.TotalAmount)
}

func TestRecord_Generic_FullFields(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind: domain.OutcomeGeneric,
		Generic: &domain.GenericFields{
			VendorName:   "ニッケン",
			TotalAmount:  18000,
			SlipTypeHint: "レンタル伝票",
			Items: []domain.GenericItem{
				{Name: "タイヤローラー", Amount: 18000},
			},
		},
	}

	rec := normalize.Record(outcome)

	assert.Equal(t, domain.DocTypeRental, rec.DocType)
	assert.Equal(t, domain.CategoryRental, rec.Category)
	assert.Equal(t, "ニッケン", rec.Vendor)
	assert.Equal(t, "タイヤローラー", rec.ItemName)
	assert.Equal(t, 18000.0, rec.Price)
	assert.Equal(t, "円/日", rec.Unit)
}

func TestRecord_Generic_HintPriority(t *testing.T) {
	tests := []struct {
		hint string
		want domain.DocumentType
	}{
		{"建材伝票", domain.DocTypeMaterial},
		{"レンタル伝票", domain.DocTypeRental},
		{"見積書", domain.DocTypeEstimate},
		// First rule wins when a hint matches several.
		{"建材レンタル見積", domain.DocTypeMaterial},
		{"レンタル見積", domain.DocTypeRental},
		{"領収書", domain.DocTypeReceipt},
		{"", domain.DocTypeReceipt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.InferDocType(tt.hint), "hint %q", tt.hint)
	}
}

func TestRecord_Generic_Fallbacks(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind: domain.OutcomeGeneric,
		Generic: &domain.GenericFields{
			CompanyName: "株式会社サンプル",
			Description: "工事用資材一式",
			Items: []domain.GenericItem{
				{Name: "", Amount: 4200},
			},
		},
	}

	rec := normalize.Record(outcome)

	// companyName backs up vendorName, description backs up the first
	// item name, and the first item amount backs up the total.
	assert.Equal(t, "株式会社サンプル", rec.Vendor)
	assert.Equal(t, "工事用資材一式", rec.ItemName)
	assert.Equal(t, 4200.0, rec.Price)
	assert.Equal(t, domain.DocTypeReceipt, rec.DocType)
	assert.Equal(t, domain.CategoryExpense, rec.Category)
}

func TestRecord_Generic_NegativeAmountsClampToZero(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind:    domain.OutcomeGeneric,
		Generic: &domain.GenericFields{TotalAmount: -100},
	}
	rec := normalize.Record(outcome)
	assert.Zero(t, rec.Price)
}

func TestRecord_Generic_NilFields(t *testing.T) {
	rec := normalize.Record(&domain.RecognitionOutcome{Kind: domain.OutcomeGeneric})
	assert.Equal(t, domain.DocTypeReceipt, rec.DocType)
	assert.Zero(t, rec.Price)
	assert.Equal(t, "円/日", rec.Unit)
}

func TestRecord_Synthetic_FlaggedUnverified(t *testing.T) {
	outcome := &domain.RecognitionOutcome{
		Kind: domain.OutcomeSynthetic,
		Synthetic: &domain.SyntheticFields{
			DocType:     domain.DocTypeEstimate,
			Vendor:      "アクティオ",
			ItemName:    "バックホー 0.7㎥",
			Price:       25000,
			Unit:        "円/日",
			DeliveryFee: 35000,
		},
	}

	rec := normalize.Record(outcome)

	assert.True(t, rec.Unverified)
	assert.Equal(t, domain.DocTypeEstimate, rec.DocType)
	assert.Equal(t, domain.CategoryRental, rec.Category)
	assert.Equal(t, 25000.0, rec.Price)
	assert.Equal(t, 35000.0, rec.DeliveryFee)
}

func TestRecord_Synthetic_NilFieldsDefaultToReceipt(t *testing.T) {
	rec := normalize.Record(&domain.RecognitionOutcome{Kind: domain.OutcomeSynthetic})
	assert.True(t, rec.Unverified)
	assert.Equal(t, domain.DocTypeReceipt, rec.DocType)
}
