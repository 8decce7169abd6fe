package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
)

func TestFiberMaterial(t *testing.T) {
	tests := map[string]domain.FiberMaterial{
		"PES/Polyamid":    domain.FiberHybrid,
		"Nylon":           domain.FiberNylon,
		"Polyamide 6.6":   domain.FiberNylon,
		"100% Polyester":  domain.FiberPolyester,
		"PES":             domain.FiberPolyester,
		"Dyneema SK78":    domain.FiberDyneema,
		"vectran/dyneema": domain.FiberDyneema,
		"Vectran":         domain.FiberVectran,
		"":                domain.FiberOther,
		"hemp":            domain.FiberOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, FiberMaterial(raw), raw)
	}
}

func TestWeblockMaterial(t *testing.T) {
	tests := []struct {
		raw  string
		want *domain.MetalMaterial
	}{
		{"Stainless Steel", ptr(domain.MetalStainlessSteel)},
		{"Stainless Steel Alloy", ptr(domain.MetalStainlessSteel)},
		{"stainless-steel", ptr(domain.MetalStainlessSteel)},
		{"StainlessSteel", ptr(domain.MetalStainlessSteel)},
		{"Aluminium 7075", ptr(domain.MetalAluminum)},
		{"aluminum", ptr(domain.MetalAluminum)},
		{"Steel", ptr(domain.MetalSteel)},
		{"Titanium", ptr(domain.MetalTitanium)},
		{"Carbon", ptr(domain.MetalOther)},
		{"", nil},
		{"  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, WeblockMaterial(tt.raw))
		})
	}
}

func TestMetalMaterial(t *testing.T) {
	tests := map[string]domain.MetalMaterial{
		"Aluminum":              domain.MetalAluminum,
		"aluminium body":        domain.MetalAluminum,
		"Stainless Steel":       domain.MetalStainlessSteel,
		"Stainless Steel Alloy": domain.MetalStainlessSteel,
		"steel":                 domain.MetalSteel,
		"Titanium":              domain.MetalTitanium,
		"":                      domain.MetalOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, MetalMaterial(raw), raw)
	}
}

func TestSpecificBeforeGeneral(t *testing.T) {
	for _, raw := range []string{"stainless steel", "Steel, Stainless Steel", "STAINLESS STEEL 316"} {
		assert.Equal(t, domain.MetalStainlessSteel, MetalMaterial(raw), raw)
		assert.Equal(t, domain.RollerStainlessSteel, RollerMaterial(raw), raw)
		assert.Equal(t, domain.BearingStainlessSteel, BearingMaterial(raw), raw)
		assert.Equal(t, ptr(domain.MetalStainlessSteel), WeblockMaterial(raw), raw)
	}
}

func TestRollerMaterial(t *testing.T) {
	tests := map[string]domain.RollerMaterial{
		"Aluminium":       domain.RollerAluminum,
		"Stainless Steel": domain.RollerStainlessSteel,
		"Steel":           domain.RollerSteel,
		"POM plastic":     domain.RollerPlastic,
		"Nylon":           domain.RollerPlastic,
		"Rubber":          domain.RollerOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, RollerMaterial(raw), raw)
	}
}

func TestSliderType(t *testing.T) {
	tests := map[string]domain.SliderType{
		"Moving Plates":     domain.SliderMovingPlates,
		"Carabiner":         domain.SliderCarabiner,
		"Locking Carabiner": domain.SliderCarabiner, // broader term is tested first
		"fixed":             domain.SliderOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, SliderType(raw), raw)
	}
}

func TestLockType(t *testing.T) {
	tests := map[string]domain.LockType{
		"Non-locking":   domain.LockNonLocking,
		"Screw Lock":    domain.LockScrew,
		"screwlock":     domain.LockScrew,
		"Auto lock":     domain.LockAuto,
		"TwistLock":     domain.LockTwist,
		"magnetic lock": domain.LockMagnetic,
		"triple action": domain.LockOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, LockType(raw), raw)
	}
}

func TestBearingMaterial(t *testing.T) {
	assert.Equal(t, domain.BearingSteel, BearingMaterial("steel"))
	assert.Equal(t, domain.BearingStainlessSteel, BearingMaterial("Stainless Steel"))
	assert.Equal(t, domain.BearingOther, BearingMaterial("ceramic"))
}

func TestFrontPin(t *testing.T) {
	tests := []struct {
		raw  string
		want *domain.FrontPin
	}{
		{"Push Pin", ptr(domain.FrontPinPush)},
		{"push-pin", ptr(domain.FrontPinPush)},
		{"Pull pin", ptr(domain.FrontPinPull)},
		{"Captive Pin", ptr(domain.FrontPinCaptive)},
		{"Fixed-Bolt", ptr(domain.FrontPinBolt)},
		{"Shackle", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FrontPin(tt.raw))
		})
	}
}

func TestAttachmentPoint(t *testing.T) {
	tests := []struct {
		json string
		want *domain.AttachmentPoint
	}{
		{`{"v":"Universal"}`, ptr(domain.AttachmentUniversal)},
		{`{"v":"Mounting hole"}`, ptr(domain.AttachmentHole)},
		{`{"v":"Pin"}`, ptr(domain.AttachmentPin)},
		{`{"v":"Bolt"}`, ptr(domain.AttachmentBolt)},
		{`{"v":"Bent-Plate"}`, ptr(domain.AttachmentBentPlate)},
		{`{"v":"Sling"}`, ptr(domain.AttachmentSling)},
		{`{"v":["Sling","Pin"]}`, ptr(domain.AttachmentSling)},
		{`{"v":[]}`, nil},
		{`{"v":"Chain"}`, nil},
		{`{}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentPoint(gjson.Get(tt.json, "v")))
		})
	}
}

func TestISAWarning(t *testing.T) {
	assert.Equal(t, ptr(domain.ISARecall), ISAWarning("Recall"))
	assert.Equal(t, ptr(domain.ISANoWarning), ISAWarning("No warning"))
	assert.Equal(t, ptr(domain.ISAWarn), ISAWarning("WARNING"))
	assert.Equal(t, ptr(domain.ISANotice), ISAWarning("notice"))
	assert.Nil(t, ISAWarning(""))
	assert.Nil(t, ISAWarning("unknown"))
}

func TestClassification(t *testing.T) {
	assert.Equal(t, ptr(domain.ClassAPlus), Classification("A+"))
	assert.Equal(t, ptr(domain.ClassA), Classification(" a "))
	assert.Equal(t, ptr(domain.ClassB), Classification("B"))
	assert.Equal(t, ptr(domain.ClassC), Classification("c"))
	assert.Equal(t, ptr(domain.ClassOther), Classification("A++"))
	assert.Nil(t, Classification(""))
}
