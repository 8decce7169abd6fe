package domain

// WebbingFields holds the writable attributes of a webbing.
type WebbingFields struct {
	GearSpec
	Material       FiberMaterial   `json:"material" validate:"required,enum"`
	Stretch        *string         `json:"stretch,omitempty"` // encoded stretch curve
	Classification *Classification `json:"classification,omitempty" validate:"omitempty,enum"`
}

// Webbing is a slackline webbing model.
type Webbing struct {
	ID int64 `json:"id"`
	WebbingFields
}

// Kind implements Entity.
func (w *Webbing) Kind() Kind { return KindWebbing }

// GetID implements Entity.
func (w *Webbing) GetID() int64 { return w.ID }

// SetID implements Entity.
func (w *Webbing) SetID(id int64) { w.ID = id }

// WebbingPatch carries optional webbing updates.
type WebbingPatch struct {
	GearPatch
	Material       *FiberMaterial  `json:"material,omitempty" validate:"omitempty,enum"`
	Stretch        *string         `json:"stretch,omitempty"`
	Classification *Classification `json:"classification,omitempty" validate:"omitempty,enum"`
}

// Apply merges the patch into w.
func (p WebbingPatch) Apply(w *Webbing) {
	p.GearPatch.apply(&w.GearSpec)
	setIf(&w.Material, p.Material)
	setPtrIf(&w.Stretch, p.Stretch)
	setPtrIf(&w.Classification, p.Classification)
}
