package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
)

const edelridWeblock = `{
	"product_name": "Edelrid Mantra",
	"brand": " Edelrid ",
	"specifications": {
		"Material": "Stainless Steel",
		"Compatible webbing width": "25mm",
		"Weight (gr)": "120gr",
		"MBS (kN)": "25kN",
		"Webbing connection type": "Push-Pin",
		"Anchor connection type": ["Sling", "Pin"],
		"ISA approved": "Yes"
	}
}`

func TestWeblockRules_Edelrid(t *testing.T) {
	got, err := WeblockRules().CleanJSON(edelridWeblock)
	require.NoError(t, err)

	w := got.Entity
	assert.Equal(t, "Edelrid", got.BrandName)
	assert.Equal(t, "Edelrid Mantra", w.Name)
	assert.Equal(t, domain.MetalStainlessSteel, w.Material)
	assert.Equal(t, 25, w.Width)
	assert.Equal(t, ptr(120.0), w.Weight)
	assert.Equal(t, ptr(25.0), w.BreakingStrength)
	assert.True(t, w.ISACertified)
	assert.Equal(t, ptr(domain.FrontPinPush), w.FrontPin)
	assert.Equal(t, ptr(domain.AttachmentSling), w.AttachmentPoint)
	assert.Equal(t, ptr(0.0), w.Price, "unpriced weblocks default to 0")
	assert.Equal(t, ptr(domain.CurrencyEUR), w.Currency)
	assert.Zero(t, w.BrandID, "brand ids are resolved later")
}

func TestWeblockRules_LegacySpecificationKeys(t *testing.T) {
	got, err := WeblockRules().CleanJSON(`{
		"product_name": "Lock",
		"brand": "B",
		"specifications": {"Material": "Aluminium", "Weight": "80 gr", "MBS": "30 kN"}
	}`)
	require.NoError(t, err)
	assert.Equal(t, ptr(80.0), got.Entity.Weight)
	assert.Equal(t, ptr(30.0), got.Entity.BreakingStrength)
	assert.Zero(t, got.Entity.Width)
}

func TestWeblockRules_InfiniteStrengthIsAbsent(t *testing.T) {
	got, err := WeblockRules().CleanJSON(`{
		"product_name": "Lock",
		"brand": "B",
		"specifications": {"Material": "Steel", "MBS (kN)": "inf kN", "Weight (gr)": "NaN gr"}
	}`)
	require.NoError(t, err)
	assert.Nil(t, got.Entity.BreakingStrength)
	assert.Nil(t, got.Entity.Weight)
}

func TestWeblockRules_MissingMaterialSkips(t *testing.T) {
	_, err := WeblockRules().CleanJSON(`{"product_name": "Lock", "brand": "B", "specifications": {}}`)
	assert.ErrorIs(t, err, ErrMissingMaterial)
}

func TestWebbingRules(t *testing.T) {
	got, err := WebbingRules().CleanJSON(`{
		"name": "Sonic 2.0",
		"brand": "Balance Community",
		"materialType": "Polyester",
		"width": "",
		"weight": "",
		"breakingStrength": 32,
		"stretch": [[0, 0], [5, 1.2]],
		"isa_certified": "approved",
		"classification": "A",
		"colors": "",
		"notes": "   ",
		"version": "",
		"release_date": "",
		"description": "",
		"price": 2.5,
		"price_unit": "usd"
	}`)
	require.NoError(t, err)

	w := got.Entity
	assert.Equal(t, "Balance Community", got.BrandName)
	assert.Equal(t, domain.FiberPolyester, w.Material)
	assert.Zero(t, w.Width)
	require.NotNil(t, w.Weight)
	assert.Zero(t, *w.Weight)
	assert.Equal(t, ptr(32.0), w.BreakingStrength)
	assert.Equal(t, ptr("[[0, 0], [5, 1.2]]"), w.Stretch)
	assert.True(t, w.ISACertified)
	assert.Equal(t, ptr(domain.ClassA), w.Classification)
	assert.Equal(t, ptr(domain.CurrencyUSD), w.Currency)
	assert.Equal(t, ptr(2.5), w.Price)

	for field, v := range map[string]*string{
		"colors": w.Colors, "notes": w.Notes, "version": w.Version,
		"release_date": w.ReleaseDate, "description": w.Description,
	} {
		assert.Nil(t, v, "%s: empty strings become absent", field)
	}
}

func TestWebbingRules_NoPriceNoCurrency(t *testing.T) {
	got, err := WebbingRules().CleanJSON(`{"name": "Line", "brand": "B", "materialType": "Dyneema"}`)
	require.NoError(t, err)
	assert.Nil(t, got.Entity.Price)
	assert.Nil(t, got.Entity.Currency)
	assert.False(t, got.Entity.ISACertified)
}

func TestRollerRules(t *testing.T) {
	got, err := RollerRules().CleanJSON(`{
		"name": "Roll Royce",
		"manufacturer": "",
		"brand": "Slackline Industries",
		"materialType": "Aluminium 6061",
		"roller_material": "nylon",
		"locking_type": "Screw Lock",
		"slider_type": "Moving plates",
		"width": "20-40mm",
		"weight": 310,
		"mbs": "40kN",
		"isa_approved": true,
		"price": "89.90",
		"price_unit": "EURO",
		"description": "<p>Double <b>roller</b></p>"
	}`)
	require.NoError(t, err)

	r := got.Entity
	assert.Equal(t, "Slackline Industries", got.BrandName, "empty manufacturer falls back to brand")
	assert.Equal(t, domain.MetalAluminum, r.Material)
	assert.Equal(t, domain.RollerPlastic, r.RollerMaterial)
	assert.Equal(t, domain.LockScrew, r.LockType)
	assert.Equal(t, domain.SliderMovingPlates, r.SliderType)
	assert.Equal(t, domain.BearingSteel, r.BearingMaterial, "bearings default to steel")
	assert.Equal(t, 20, r.Width)
	assert.Equal(t, ptr(310.0), r.Weight)
	assert.Equal(t, ptr(40.0), r.BreakingStrength)
	assert.True(t, r.ISACertified)
	assert.Equal(t, ptr(89.9), r.Price)
	assert.Equal(t, ptr(domain.CurrencyEUR), r.Currency)
	require.NotNil(t, r.Description)
	assert.Contains(t, *r.Description, "**roller**")
}

func TestRollerRules_ManufacturerWins(t *testing.T) {
	got, err := RollerRules().CleanJSON(`{"name": "R", "manufacturer": "ISA", "brand": "Other"}`)
	require.NoError(t, err)
	assert.Equal(t, "ISA", got.BrandName)
}

func TestClean_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record string
		target error
	}{
		{"missing name", `{"brand": "B", "materialType": "Nylon"}`, ErrMissingName},
		{"blank name", `{"name": "  ", "brand": "B"}`, ErrMissingName},
		{"unknown currency", `{"name": "N", "brand": "B", "price_unit": "xyz"}`, ErrUnknownCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WebbingRules().CleanJSON(tt.record)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestClean_NotAnObject(t *testing.T) {
	_, err := RollerRules().CleanJSON(`["not", "a", "record"]`)
	assert.Error(t, err)
}

func TestClean_MissingBrandIsLeftToResolver(t *testing.T) {
	got, err := WebbingRules().CleanJSON(`{"name": "Orphan"}`)
	require.NoError(t, err)
	assert.Empty(t, got.BrandName)
}

func TestPath(t *testing.T) {
	assert.Equal(t, `specifications.Weight \(gr\)`, path("specifications", "Weight (gr)"))
	assert.Equal(t, `a.b\.c`, path("a", "b.c"))
}
