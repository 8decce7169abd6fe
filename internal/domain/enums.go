package domain

// FiberMaterial is the construction fiber of a webbing.
type FiberMaterial string

// Fiber materials.
const (
	FiberNylon     FiberMaterial = "Nylon"
	FiberPolyester FiberMaterial = "Polyester"
	FiberDyneema   FiberMaterial = "Dyneema"
	FiberVectran   FiberMaterial = "Vectran"
	FiberHybrid    FiberMaterial = "Hybrid"
	FiberOther     FiberMaterial = "Other"
)

// Valid reports whether m is a known fiber material.
func (m FiberMaterial) Valid() bool {
	switch m {
	case FiberNylon, FiberPolyester, FiberDyneema, FiberVectran, FiberHybrid, FiberOther:
		return true
	}
	return false
}

// MetalMaterial is the body material of weblocks and rollers.
type MetalMaterial string

// Metal materials.
const (
	MetalAluminum       MetalMaterial = "Aluminum"
	MetalSteel          MetalMaterial = "Steel"
	MetalStainlessSteel MetalMaterial = "Stainless Steel"
	MetalTitanium       MetalMaterial = "Titanium"
	MetalOther          MetalMaterial = "Other"
)

// Valid reports whether m is a known metal material.
func (m MetalMaterial) Valid() bool {
	switch m {
	case MetalAluminum, MetalSteel, MetalStainlessSteel, MetalTitanium, MetalOther:
		return true
	}
	return false
}

// RollerMaterial is the material of the roller wheels.
type RollerMaterial string

// Roller wheel materials.
const (
	RollerAluminum       RollerMaterial = "Aluminum"
	RollerSteel          RollerMaterial = "Steel"
	RollerStainlessSteel RollerMaterial = "Stainless Steel"
	RollerPlastic        RollerMaterial = "Plastic"
	RollerOther          RollerMaterial = "Other"
)

// Valid reports whether m is a known roller material.
func (m RollerMaterial) Valid() bool {
	switch m {
	case RollerAluminum, RollerSteel, RollerStainlessSteel, RollerPlastic, RollerOther:
		return true
	}
	return false
}

// SliderType describes how a roller attaches to the line.
type SliderType string

// Slider types.
const (
	SliderMovingPlates     SliderType = "Moving plates"
	SliderCarabiner        SliderType = "Carabiner"
	SliderLockingCarabiner SliderType = "Locking Carabiner"
	SliderOther            SliderType = "Other"
)

// Valid reports whether s is a known slider type.
func (s SliderType) Valid() bool {
	switch s {
	case SliderMovingPlates, SliderCarabiner, SliderLockingCarabiner, SliderOther:
		return true
	}
	return false
}

// LockType is the gate locking mechanism of a roller.
type LockType string

// Lock types.
const (
	LockNonLocking LockType = "Non-locking"
	LockScrew      LockType = "Screw Lock"
	LockAuto       LockType = "Auto Lock"
	LockTwist      LockType = "Twist Lock"
	LockMagnetic   LockType = "Magnetic Lock"
	LockOther      LockType = "Other"
)

// Valid reports whether l is a known lock type.
func (l LockType) Valid() bool {
	switch l {
	case LockNonLocking, LockScrew, LockAuto, LockTwist, LockMagnetic, LockOther:
		return true
	}
	return false
}

// BearingMaterial is the material of roller bearings.
type BearingMaterial string

// Bearing materials.
const (
	BearingStainlessSteel BearingMaterial = "Stainless Steel"
	BearingSteel          BearingMaterial = "Steel"
	BearingOther          BearingMaterial = "Other"
)

// Valid reports whether b is a known bearing material.
func (b BearingMaterial) Valid() bool {
	switch b {
	case BearingStainlessSteel, BearingSteel, BearingOther:
		return true
	}
	return false
}

// FrontPin is the pin mechanism at the front of a weblock.
// There is no catch-all member; unknown input is left unset.
type FrontPin string

// Front pin types.
const (
	FrontPinPush    FrontPin = "Push Pin"
	FrontPinPull    FrontPin = "Pull Pin"
	FrontPinCaptive FrontPin = "Captive Pin"
	FrontPinBolt    FrontPin = "Fixed Bolt"
)

// Valid reports whether p is a known front pin type.
func (p FrontPin) Valid() bool {
	switch p {
	case FrontPinPush, FrontPinPull, FrontPinCaptive, FrontPinBolt:
		return true
	}
	return false
}

// AttachmentPoint is how a weblock connects to the anchor.
type AttachmentPoint string

// Attachment points.
const (
	AttachmentUniversal AttachmentPoint = "Universal"
	AttachmentHole      AttachmentPoint = "Hole"
	AttachmentPin       AttachmentPoint = "Pin"
	AttachmentBolt      AttachmentPoint = "Bolt"
	AttachmentBentPlate AttachmentPoint = "Bent Plate"
	AttachmentSling     AttachmentPoint = "Sling"
)

// Valid reports whether a is a known attachment point.
func (a AttachmentPoint) Valid() bool {
	switch a {
	case AttachmentUniversal, AttachmentHole, AttachmentPin, AttachmentBolt, AttachmentBentPlate, AttachmentSling:
		return true
	}
	return false
}

// Classification is the ISA webbing class.
type Classification string

// Webbing classes.
const (
	ClassAPlus Classification = "A+"
	ClassA     Classification = "A"
	ClassB     Classification = "B"
	ClassC     Classification = "C"
	ClassOther Classification = "Other"
)

// Valid reports whether c is a known classification.
func (c Classification) Valid() bool {
	switch c {
	case ClassAPlus, ClassA, ClassB, ClassC, ClassOther:
		return true
	}
	return false
}

// ISAWarning is the ISA gear warning level.
// See https://data.slacklineinternational.org/safety/isa-gear-warnings/.
type ISAWarning string

// ISA warning levels.
const (
	ISARecall    ISAWarning = "Recall"
	ISAWarn      ISAWarning = "Warning"
	ISANotice    ISAWarning = "Notice"
	ISANoWarning ISAWarning = "No Warning"
)

// Valid reports whether w is a known warning level.
func (w ISAWarning) Valid() bool {
	switch w {
	case ISARecall, ISAWarn, ISANotice, ISANoWarning:
		return true
	}
	return false
}
