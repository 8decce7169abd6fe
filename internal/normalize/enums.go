package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// match maps any of a set of substrings to an enum member.
type match[E any] struct {
	contains []string
	value    E
}

// firstMatch walks table in order and returns the first member whose
// substrings occur in s. Order matters: specific terms come before the
// broader ones they contain.
func firstMatch[E any](s string, table []match[E]) (E, bool) {
	for _, m := range table {
		for _, sub := range m.contains {
			if strings.Contains(s, sub) {
				return m.value, true
			}
		}
	}
	var zero E
	return zero, false
}

func fold(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// squash removes spaces and dashes so "Push-Pin" and "push pin" compare equal.
func squash(raw string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(fold(raw))
}

//nolint:gochecknoglobals // ordered lookup tables
var (
	fiberTable = []match[domain.FiberMaterial]{
		{[]string{"pes/polyamid"}, domain.FiberHybrid},
		{[]string{"nylon", "polyamid"}, domain.FiberNylon},
		{[]string{"polyester", "pes"}, domain.FiberPolyester},
		{[]string{"dyneema"}, domain.FiberDyneema},
		{[]string{"vectran"}, domain.FiberVectran},
	}

	weblockMetalTable = []match[domain.MetalMaterial]{
		{[]string{"stainless steel", "stainlesssteel"}, domain.MetalStainlessSteel},
		{[]string{"aluminium", "aluminum"}, domain.MetalAluminum},
		{[]string{"steel"}, domain.MetalSteel},
		{[]string{"titanium"}, domain.MetalTitanium},
	}

	rollerMetalTable = []match[domain.MetalMaterial]{
		{[]string{"aluminum", "aluminium"}, domain.MetalAluminum},
		{[]string{"stainless steel"}, domain.MetalStainlessSteel},
		{[]string{"steel"}, domain.MetalSteel},
		{[]string{"titanium"}, domain.MetalTitanium},
	}

	rollerMaterialTable = []match[domain.RollerMaterial]{
		{[]string{"aluminum", "aluminium"}, domain.RollerAluminum},
		{[]string{"stainless steel"}, domain.RollerStainlessSteel},
		{[]string{"steel"}, domain.RollerSteel},
		{[]string{"plastic", "nylon"}, domain.RollerPlastic},
	}

	// "locking carabiner" can never win since "carabiner" is tested first.
	// The entry stays so the table mirrors the catalog's historical order.
	sliderTable = []match[domain.SliderType]{
		{[]string{"moving plates"}, domain.SliderMovingPlates},
		{[]string{"carabiner"}, domain.SliderCarabiner},
		{[]string{"locking carabiner"}, domain.SliderLockingCarabiner},
	}

	lockTable = []match[domain.LockType]{
		{[]string{"non-locking"}, domain.LockNonLocking},
		{[]string{"screw lock", "screwlock"}, domain.LockScrew},
		{[]string{"auto lock", "autolock"}, domain.LockAuto},
		{[]string{"twist lock", "twistlock"}, domain.LockTwist},
		{[]string{"magnetic lock", "magneticlock"}, domain.LockMagnetic},
	}

	bearingTable = []match[domain.BearingMaterial]{
		{[]string{"stainless steel"}, domain.BearingStainlessSteel},
		{[]string{"steel"}, domain.BearingSteel},
	}

	frontPinTable = []match[domain.FrontPin]{
		{[]string{"pushpin"}, domain.FrontPinPush},
		{[]string{"pullpin"}, domain.FrontPinPull},
		{[]string{"captivepin"}, domain.FrontPinCaptive},
		{[]string{"fixedbolt"}, domain.FrontPinBolt},
	}

	attachmentTable = []match[domain.AttachmentPoint]{
		{[]string{"universal"}, domain.AttachmentUniversal},
		{[]string{"hole", "mountinghole"}, domain.AttachmentHole},
		{[]string{"pin"}, domain.AttachmentPin},
		{[]string{"bolt"}, domain.AttachmentBolt},
		{[]string{"bentplate"}, domain.AttachmentBentPlate},
		{[]string{"sling"}, domain.AttachmentSling},
	}

	isaWarningTable = []match[domain.ISAWarning]{
		{[]string{"recall"}, domain.ISARecall},
		{[]string{"no warning", "nowarning"}, domain.ISANoWarning},
		{[]string{"warning"}, domain.ISAWarn},
		{[]string{"notice"}, domain.ISANotice},
	}
)

// orOther resolves raw against table, falling back to other.
func orOther[E any](raw string, table []match[E], other E) E {
	if v, ok := firstMatch(fold(raw), table); ok {
		return v
	}
	return other
}

// FiberMaterial normalizes a webbing material such as "PES/Polyamid" or
// "100% Dyneema".
func FiberMaterial(raw string) domain.FiberMaterial {
	return orOther(raw, fiberTable, domain.FiberOther)
}

// WeblockMaterial normalizes a weblock body material. Dashes count as
// spaces ("Stainless-Steel"). Empty input is absent.
func WeblockMaterial(raw string) *domain.MetalMaterial {
	s := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(raw), "-", " "))
	if s == "" {
		return nil
	}
	m := domain.MetalOther
	if v, ok := firstMatch(s, weblockMetalTable); ok {
		m = v
	}
	return &m
}

// MetalMaterial normalizes a roller body material.
func MetalMaterial(raw string) domain.MetalMaterial {
	return orOther(raw, rollerMetalTable, domain.MetalOther)
}

// RollerMaterial normalizes the material of roller wheels.
func RollerMaterial(raw string) domain.RollerMaterial {
	return orOther(raw, rollerMaterialTable, domain.RollerOther)
}

// SliderType normalizes how a roller rides the line.
func SliderType(raw string) domain.SliderType {
	return orOther(raw, sliderTable, domain.SliderOther)
}

// LockType normalizes a roller gate lock.
func LockType(raw string) domain.LockType {
	return orOther(raw, lockTable, domain.LockOther)
}

// BearingMaterial normalizes a roller bearing material.
func BearingMaterial(raw string) domain.BearingMaterial {
	return orOther(raw, bearingTable, domain.BearingOther)
}

// FrontPin normalizes a weblock webbing connection. Unknown values are
// absent rather than Other.
func FrontPin(raw string) *domain.FrontPin {
	if v, ok := firstMatch(squash(raw), frontPinTable); ok {
		return &v
	}
	return nil
}

// AttachmentPoint normalizes a weblock anchor connection. The source may
// hold a list, in which case only the first element is considered.
func AttachmentPoint(v gjson.Result) *domain.AttachmentPoint {
	raw := v.String()
	if v.IsArray() {
		items := v.Array()
		if len(items) == 0 {
			return nil
		}
		raw = items[0].String()
	}
	if a, ok := firstMatch(squash(raw), attachmentTable); ok {
		return &a
	}
	return nil
}

// ISAWarning normalizes an ISA warning level. Unknown values are absent.
func ISAWarning(raw string) *domain.ISAWarning {
	if w, ok := firstMatch(fold(raw), isaWarningTable); ok {
		return &w
	}
	return nil
}

// Classification normalizes an ISA webbing class. Only exact class names
// match; any other non-empty value is Other.
func Classification(raw string) *domain.Classification {
	var c domain.Classification
	switch fold(raw) {
	case "":
		return nil
	case "a+":
		c = domain.ClassAPlus
	case "a":
		c = domain.ClassA
	case "b":
		c = domain.ClassB
	case "c":
		c = domain.ClassC
	default:
		c = domain.ClassOther
	}
	return &c
}
