package domain

// WeblockFields holds the writable attributes of a weblock.
type WeblockFields struct {
	GearSpec
	Material        MetalMaterial    `json:"material" validate:"required,enum"`
	FrontPin        *FrontPin        `json:"front_pin,omitempty" validate:"omitempty,enum"`
	AttachmentPoint *AttachmentPoint `json:"attachment_point,omitempty" validate:"omitempty,enum"`
}

// Weblock is a webbing-to-anchor connector.
type Weblock struct {
	ID int64 `json:"id"`
	WeblockFields
}

// Kind implements Entity.
func (w *Weblock) Kind() Kind { return KindWeblock }

// GetID implements Entity.
func (w *Weblock) GetID() int64 { return w.ID }

// SetID implements Entity.
func (w *Weblock) SetID(id int64) { w.ID = id }

// WeblockPatch carries optional weblock updates.
type WeblockPatch struct {
	GearPatch
	Material        *MetalMaterial   `json:"material,omitempty" validate:"omitempty,enum"`
	FrontPin        *FrontPin        `json:"front_pin,omitempty" validate:"omitempty,enum"`
	AttachmentPoint *AttachmentPoint `json:"attachment_point,omitempty" validate:"omitempty,enum"`
}

// Apply merges the patch into w.
func (p WeblockPatch) Apply(w *Weblock) {
	p.GearPatch.apply(&w.GearSpec)
	setIf(&w.Material, p.Material)
	setPtrIf(&w.FrontPin, p.FrontPin)
	setPtrIf(&w.AttachmentPoint, p.AttachmentPoint)
}
