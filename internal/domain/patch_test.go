package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestBrandPatch_Apply(t *testing.T) {
	b := NewBrand("Balance Community")
	b.Country = ptr("DE")

	BrandPatch{
		Website: ptr("https://balancecommunity.com"),
		Active:  ptr(false),
	}.Apply(b)

	assert.Equal(t, "Balance Community", b.Name, "absent fields are left untouched")
	assert.Equal(t, "DE", *b.Country)
	assert.Equal(t, "https://balancecommunity.com", *b.Website)
	assert.False(t, b.Active)
	assert.True(t, b.SlacklineFocused)
}

func TestWebbingPatch_Apply(t *testing.T) {
	w := &Webbing{ID: 3}
	w.Name = "Sonic 2.0"
	w.Width = 25
	w.Material = FiberNylon
	w.BrandID = 1

	WebbingPatch{
		GearPatch: GearPatch{
			Weight:  ptr(38.0),
			BrandID: ptr(int64(2)),
		},
		Material:       ptr(FiberPolyester),
		Classification: ptr(ClassA),
	}.Apply(w)

	assert.Equal(t, int64(3), w.ID)
	assert.Equal(t, "Sonic 2.0", w.Name)
	assert.Equal(t, 25, w.Width)
	assert.Equal(t, 38.0, *w.Weight)
	assert.Equal(t, int64(2), w.BrandID)
	assert.Equal(t, FiberPolyester, w.Material)
	assert.Equal(t, ClassA, *w.Classification)
}

func TestPatch_CopiesValues(t *testing.T) {
	name := "Raptor"
	r := &Roller{}
	RollerPatch{GearPatch: GearPatch{Notes: &name}}.Apply(r)

	name = "changed"
	assert.Equal(t, "Raptor", *r.Notes, "patch values must not alias the patch")
}

func TestGearPatch_ChangesBrand(t *testing.T) {
	_, ok := GearPatch{}.ChangesBrand()
	assert.False(t, ok)

	id, ok := GearPatch{BrandID: ptr(int64(9))}.ChangesBrand()
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}

func TestEnumValid(t *testing.T) {
	assert.True(t, MetalStainlessSteel.Valid())
	assert.False(t, MetalMaterial("Stainless").Valid())
	assert.True(t, CurrencyEUR.Valid())
	assert.False(t, Currency("EURO").Valid())
	assert.True(t, FrontPinCaptive.Valid())
	assert.False(t, FrontPin("Other").Valid(), "front pins have no catch-all member")
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"webbing", KindWebbing},
		{"webbings", KindWebbing},
		{"weblocks", KindWeblock},
		{"roller", KindRoller},
		{"brands", KindBrand},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("carabiner")
	assert.Error(t, err)
}
