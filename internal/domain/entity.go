// Package domain defines the catalog entities: brands and the three gear types.
package domain

import "fmt"

// Kind identifies a catalog entity type.
type Kind string

// Catalog entity kinds.
const (
	KindBrand   Kind = "brand"
	KindWebbing Kind = "webbing"
	KindWeblock Kind = "weblock"
	KindRoller  Kind = "roller"
)

// GearKinds lists the gear kinds in seeding order.
var GearKinds = []Kind{KindWebbing, KindWeblock, KindRoller} //nolint:gochecknoglobals // fixed ordering

// Title returns the display name used in messages ("Webbing", "Brand").
func (k Kind) Title() string {
	switch k {
	case KindBrand:
		return "Brand"
	case KindWebbing:
		return "Webbing"
	case KindWeblock:
		return "Weblock"
	case KindRoller:
		return "Roller"
	default:
		return string(k)
	}
}

// IsGear reports whether k is one of the gear kinds.
func (k Kind) IsGear() bool {
	return k == KindWebbing || k == KindWeblock || k == KindRoller
}

// ParseKind accepts singular or plural kind names.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "brand", "brands":
		return KindBrand, nil
	case "webbing", "webbings":
		return KindWebbing, nil
	case "weblock", "weblocks":
		return KindWeblock, nil
	case "roller", "rollers":
		return KindRoller, nil
	default:
		return "", fmt.Errorf("unknown kind %q", s)
	}
}

// Entity is implemented by every catalog record.
// Identity is an integer assigned by the store on insert.
type Entity interface {
	Kind() Kind
	GetID() int64
	SetID(id int64)
}

// Gear is implemented by the gear kinds, which all reference a brand.
type Gear interface {
	Entity
	BrandRef() int64
	SetBrandID(id int64)
	DisplayName() string
}
