package domain

// BrandFields holds the writable attributes of a brand.
type BrandFields struct {
	Name             string  `json:"name" validate:"required,max=200"`
	Country          *string `json:"country,omitempty" validate:"omitempty,max=100"`
	YearFounded      *int    `json:"year_founded,omitempty" validate:"omitempty,gte=1800,lte=2100"`
	Active           bool    `json:"active"`
	SlacklineFocused bool    `json:"slackline_focused"`
	Website          *string `json:"website,omitempty" validate:"omitempty,url"`
	Socials          *string `json:"socials,omitempty"`
	Description      *string `json:"description,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// Brand is a gear manufacturer. Names are unique and matched case-sensitively.
type Brand struct {
	ID int64 `json:"id"`
	BrandFields
}

// NewBrand returns a brand with the given name and default flags.
func NewBrand(name string) *Brand {
	return &Brand{
		BrandFields: BrandFields{
			Name:             name,
			Active:           true,
			SlacklineFocused: true,
		},
	}
}

// Kind implements Entity.
func (b *Brand) Kind() Kind { return KindBrand }

// GetID implements Entity.
func (b *Brand) GetID() int64 { return b.ID }

// SetID implements Entity.
func (b *Brand) SetID(id int64) { b.ID = id }

// BrandPatch carries optional brand updates. Nil fields are left untouched.
type BrandPatch struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Country          *string `json:"country,omitempty" validate:"omitempty,max=100"`
	YearFounded      *int    `json:"year_founded,omitempty" validate:"omitempty,gte=1800,lte=2100"`
	Active           *bool   `json:"active,omitempty"`
	SlacklineFocused *bool   `json:"slackline_focused,omitempty"`
	Website          *string `json:"website,omitempty" validate:"omitempty,url"`
	Socials          *string `json:"socials,omitempty"`
	Description      *string `json:"description,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// Apply merges the patch into b.
func (p BrandPatch) Apply(b *Brand) {
	setIf(&b.Name, p.Name)
	setPtrIf(&b.Country, p.Country)
	setPtrIf(&b.YearFounded, p.YearFounded)
	setIf(&b.Active, p.Active)
	setIf(&b.SlacklineFocused, p.SlacklineFocused)
	setPtrIf(&b.Website, p.Website)
	setPtrIf(&b.Socials, p.Socials)
	setPtrIf(&b.Description, p.Description)
	setPtrIf(&b.Notes, p.Notes)
}

// setIf overwrites *dst when src is present.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setPtrIf replaces an optional field when src is present.
func setPtrIf[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
