package domain

// GearSpec holds the attributes shared by every gear kind.
type GearSpec struct {
	Name             string      `json:"name" validate:"required,max=300"`
	ReleaseDate      *string     `json:"release_date,omitempty" validate:"omitempty,max=50"`
	Width            int         `json:"width" validate:"gte=0"` // millimetres
	Weight           *float64    `json:"weight,omitempty" validate:"omitempty,gte=0"`
	BreakingStrength *float64    `json:"breaking_strength,omitempty" validate:"omitempty,gte=0"` // kN
	ISACertified     bool        `json:"isa_certified"`
	ISAWarning       *ISAWarning `json:"isa_warning,omitempty" validate:"omitempty,enum"`
	Colors           *string     `json:"colors,omitempty"`
	Price            *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency         *Currency   `json:"currency,omitempty" validate:"omitempty,enum"`
	Description      *string     `json:"description,omitempty"`
	Version          *string     `json:"version,omitempty"`
	Notes            *string     `json:"notes,omitempty"`
	BrandID          int64       `json:"brand_id" validate:"required,gt=0"`
}

// GearPatch carries optional updates to the shared gear attributes.
type GearPatch struct {
	Name             *string     `json:"name,omitempty" validate:"omitempty,min=1,max=300"`
	ReleaseDate      *string     `json:"release_date,omitempty" validate:"omitempty,max=50"`
	Width            *int        `json:"width,omitempty" validate:"omitempty,gte=0"`
	Weight           *float64    `json:"weight,omitempty" validate:"omitempty,gte=0"`
	BreakingStrength *float64    `json:"breaking_strength,omitempty" validate:"omitempty,gte=0"`
	ISACertified     *bool       `json:"isa_certified,omitempty"`
	ISAWarning       *ISAWarning `json:"isa_warning,omitempty" validate:"omitempty,enum"`
	Colors           *string     `json:"colors,omitempty"`
	Price            *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency         *Currency   `json:"currency,omitempty" validate:"omitempty,enum"`
	Description      *string     `json:"description,omitempty"`
	Version          *string     `json:"version,omitempty"`
	Notes            *string     `json:"notes,omitempty"`
	BrandID          *int64      `json:"brand_id,omitempty" validate:"omitempty,gt=0"`
}

func (p GearPatch) apply(g *GearSpec) {
	setIf(&g.Name, p.Name)
	setPtrIf(&g.ReleaseDate, p.ReleaseDate)
	setIf(&g.Width, p.Width)
	setPtrIf(&g.Weight, p.Weight)
	setPtrIf(&g.BreakingStrength, p.BreakingStrength)
	setIf(&g.ISACertified, p.ISACertified)
	setPtrIf(&g.ISAWarning, p.ISAWarning)
	setPtrIf(&g.Colors, p.Colors)
	setPtrIf(&g.Price, p.Price)
	setPtrIf(&g.Currency, p.Currency)
	setPtrIf(&g.Description, p.Description)
	setPtrIf(&g.Version, p.Version)
	setPtrIf(&g.Notes, p.Notes)
	setIf(&g.BrandID, p.BrandID)
}

// ChangesBrand reports whether the patch moves the gear to another brand.
func (p GearPatch) ChangesBrand() (int64, bool) {
	if p.BrandID == nil {
		return 0, false
	}
	return *p.BrandID, true
}

// BrandRef implements Gear.
func (g *GearSpec) BrandRef() int64 { return g.BrandID }

// SetBrandID implements Gear.
func (g *GearSpec) SetBrandID(id int64) { g.BrandID = id }

// DisplayName implements Gear.
func (g *GearSpec) DisplayName() string { return g.Name }
