package domain

// RollerFields holds the writable attributes of a roller.
type RollerFields struct {
	GearSpec
	Material        MetalMaterial   `json:"material" validate:"required,enum"`
	RollerMaterial  RollerMaterial  `json:"roller_material" validate:"required,enum"`
	SliderType      SliderType      `json:"slider_type" validate:"required,enum"`
	LockType        LockType        `json:"lock_type" validate:"required,enum"`
	BearingMaterial BearingMaterial `json:"bearing_material" validate:"required,enum"`
}

// Roller is a line roller (pulley) used for rigging.
type Roller struct {
	ID int64 `json:"id"`
	RollerFields
}

// Kind implements Entity.
func (r *Roller) Kind() Kind { return KindRoller }

// GetID implements Entity.
func (r *Roller) GetID() int64 { return r.ID }

// SetID implements Entity.
func (r *Roller) SetID(id int64) { r.ID = id }

// RollerPatch carries optional roller updates.
type RollerPatch struct {
	GearPatch
	Material        *MetalMaterial   `json:"material,omitempty" validate:"omitempty,enum"`
	RollerMaterial  *RollerMaterial  `json:"roller_material,omitempty" validate:"omitempty,enum"`
	SliderType      *SliderType      `json:"slider_type,omitempty" validate:"omitempty,enum"`
	LockType        *LockType        `json:"lock_type,omitempty" validate:"omitempty,enum"`
	BearingMaterial *BearingMaterial `json:"bearing_material,omitempty" validate:"omitempty,enum"`
}

// Apply merges the patch into r.
func (p RollerPatch) Apply(r *Roller) {
	p.GearPatch.apply(&r.GearSpec)
	setIf(&r.Material, p.Material)
	setIf(&r.RollerMaterial, p.RollerMaterial)
	setIf(&r.SliderType, p.SliderType)
	setIf(&r.LockType, p.LockType)
	setIf(&r.BearingMaterial, p.BearingMaterial)
}
