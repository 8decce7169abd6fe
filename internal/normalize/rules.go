package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// gearSource names where the shared gear attributes live in one kind's
// source records. Nil path lists leave the field unset.
type gearSource struct {
	Name, Width, Weight, Strength, ISA, Warning   []string
	Colors, Price, Currency, Description, Version []string
	ReleaseDate, Notes                            []string
	WeightSuffix, StrengthSuffix, DefaultCurrency string
	DefaultPrice                                  *float64
}

// gearRules builds the rules shared by every gear kind. spec reaches the
// embedded GearSpec of an entity.
func gearRules[T any](spec func(*T) *domain.GearSpec, src gearSource) []Rule[T] {
	rules := []Rule[T]{
		{Field: "name", Paths: src.Name, Apply: func(e *T, v gjson.Result) error {
			g := spec(e)
			g.Name = CleanText(text(v))
			if g.Name == "" {
				return ErrMissingName
			}
			return nil
		}},
		{Field: "width", Paths: src.Width, Apply: func(e *T, v gjson.Result) error {
			spec(e).Width = width(v)
			return nil
		}},
		{Field: "weight", Paths: src.Weight, Apply: func(e *T, v gjson.Result) error {
			spec(e).Weight = measure(v, src.WeightSuffix)
			return nil
		}},
		{Field: "breaking_strength", Paths: src.Strength, Apply: func(e *T, v gjson.Result) error {
			spec(e).BreakingStrength = number(v, src.StrengthSuffix)
			return nil
		}},
		{Field: "isa_certified", Paths: src.ISA, Apply: func(e *T, v gjson.Result) error {
			spec(e).ISACertified = ParseISA(v)
			return nil
		}},
		{Field: "isa_warning", Paths: src.Warning, Apply: func(e *T, v gjson.Result) error {
			spec(e).ISAWarning = ISAWarning(text(v))
			return nil
		}},
		{Field: "price", Paths: src.Price, Apply: func(e *T, v gjson.Result) error {
			g := spec(e)
			g.Price = number(v, "")
			if !v.Exists() && src.DefaultPrice != nil {
				p := *src.DefaultPrice
				g.Price = &p
			}
			return nil
		}},
		{Field: "currency", Paths: src.Currency, Apply: func(e *T, v gjson.Result) error {
			raw := strings.TrimSpace(text(v))
			if !v.Exists() {
				raw = src.DefaultCurrency
			}
			if raw == "" {
				return nil
			}
			c, err := Currency(raw)
			if err != nil {
				return err
			}
			spec(e).Currency = &c
			return nil
		}},
		{Field: "description", Paths: src.Description, Apply: func(e *T, v gjson.Result) error {
			spec(e).Description = OptionalString(Markdown(text(v)))
			return nil
		}},
	}

	optional := []struct {
		field string
		paths []string
		set   func(g *domain.GearSpec, s *string)
	}{
		{"colors", src.Colors, func(g *domain.GearSpec, s *string) { g.Colors = s }},
		{"version", src.Version, func(g *domain.GearSpec, s *string) { g.Version = s }},
		{"release_date", src.ReleaseDate, func(g *domain.GearSpec, s *string) { g.ReleaseDate = s }},
		{"notes", src.Notes, func(g *domain.GearSpec, s *string) { g.Notes = s }},
	}
	for _, o := range optional {
		if len(o.paths) == 0 {
			continue
		}
		set := o.set
		rules = append(rules, Rule[T]{Field: o.field, Paths: o.paths, Apply: func(e *T, v gjson.Result) error {
			set(spec(e), OptionalString(text(v)))
			return nil
		}})
	}

	return rules
}

func webbingSpec(w *domain.Webbing) *domain.GearSpec { return &w.GearSpec }
func weblockSpec(w *domain.Weblock) *domain.GearSpec { return &w.GearSpec }
func rollerSpec(r *domain.Roller) *domain.GearSpec   { return &r.GearSpec }

// WebbingRules cleans records from the ISA webbing database export.
func WebbingRules() *Cleaner[domain.Webbing] {
	rules := gearRules(webbingSpec, gearSource{
		Name:           []string{"name"},
		Width:          []string{"width"},
		Weight:         []string{"weight"},
		WeightSuffix:   "g/m",
		Strength:       []string{"breakingStrength", "breaking_strength"},
		StrengthSuffix: "kn",
		ISA:            []string{"isa_certified"},
		Warning:        []string{"isa_warning"},
		Colors:         []string{"colors"},
		Price:          []string{"price"},
		Currency:       []string{"price_unit", "currency"},
		Description:    []string{"description"},
		Version:        []string{"version"},
		ReleaseDate:    []string{"release_date", "releaseDate"},
		Notes:          []string{"notes"},
	})

	rules = append(rules,
		Rule[domain.Webbing]{Field: "material", Paths: []string{"materialType", "material"}, Apply: func(w *domain.Webbing, v gjson.Result) error {
			w.Material = FiberMaterial(text(v))
			return nil
		}},
		Rule[domain.Webbing]{Field: "stretch", Paths: []string{"stretch"}, Apply: func(w *domain.Webbing, v gjson.Result) error {
			w.Stretch = stretch(v)
			return nil
		}},
		Rule[domain.Webbing]{Field: "classification", Paths: []string{"classification"}, Apply: func(w *domain.Webbing, v gjson.Result) error {
			w.Classification = Classification(text(v))
			return nil
		}},
	)

	return &Cleaner[domain.Webbing]{Kind: domain.KindWebbing, Brand: []string{"brand"}, Rules: rules}
}

// WeblockRules cleans scraped weblock product pages, whose technical data
// sits under "specifications". Weblocks without a listed price get 0 EUR.
func WeblockRules() *Cleaner[domain.Weblock] {
	specs := func(key string, alts ...string) []string {
		paths := []string{path("specifications", key)}
		for _, a := range alts {
			paths = append(paths, path("specifications", a))
		}
		return paths
	}
	zero := 0.0

	rules := gearRules(weblockSpec, gearSource{
		Name:            []string{"product_name", "name"},
		Width:           specs("Compatible webbing width"),
		Weight:          specs("Weight (gr)", "Weight"),
		WeightSuffix:    "gr",
		Strength:        specs("MBS (kN)", "MBS"),
		StrengthSuffix:  "kn",
		ISA:             specs("ISA approved"),
		Warning:         []string{"isa_warning"},
		Colors:          []string{"colors"},
		Price:           []string{"price"},
		DefaultPrice:    &zero,
		Currency:        []string{"price_unit", "currency"},
		DefaultCurrency: "EURO",
		Description:     []string{"description"},
		Version:         []string{"version"},
		ReleaseDate:     []string{"release_date"},
		Notes:           []string{"notes"},
	})

	rules = append(rules,
		Rule[domain.Weblock]{Field: "material", Paths: specs("Material"), Apply: func(w *domain.Weblock, v gjson.Result) error {
			m := WeblockMaterial(text(v))
			if m == nil {
				return ErrMissingMaterial
			}
			w.Material = *m
			return nil
		}},
		Rule[domain.Weblock]{Field: "front_pin", Paths: specs("Webbing connection type"), Apply: func(w *domain.Weblock, v gjson.Result) error {
			w.FrontPin = FrontPin(text(v))
			return nil
		}},
		Rule[domain.Weblock]{Field: "attachment_point", Paths: specs("Anchor connection type"), Apply: func(w *domain.Weblock, v gjson.Result) error {
			w.AttachmentPoint = AttachmentPoint(v)
			return nil
		}},
	)

	return &Cleaner[domain.Weblock]{Kind: domain.KindWeblock, Brand: []string{"brand"}, Rules: rules}
}

// RollerRules cleans roller records. The brand may be listed as
// "manufacturer" or "brand"; bearings default to steel.
func RollerRules() *Cleaner[domain.Roller] {
	rules := gearRules(rollerSpec, gearSource{
		Name:           []string{"name"},
		Width:          []string{"width"},
		Weight:         []string{"weight"},
		WeightSuffix:   "g",
		Strength:       []string{"mbs", "breaking_strength"},
		StrengthSuffix: "kn",
		ISA:            []string{"isa_approved", "isa_certified"},
		Warning:        []string{"isa_warning"},
		Colors:         []string{"colors"},
		Price:          []string{"price"},
		Currency:       []string{"price_unit", "currency"},
		Description:    []string{"description"},
		Version:        []string{"version"},
		ReleaseDate:    []string{"release_date"},
		Notes:          []string{"notes"},
	})

	rules = append(rules,
		Rule[domain.Roller]{Field: "material", Paths: []string{"materialType", "material"}, Apply: func(r *domain.Roller, v gjson.Result) error {
			r.Material = MetalMaterial(text(v))
			return nil
		}},
		Rule[domain.Roller]{Field: "roller_material", Paths: []string{"roller_material"}, Apply: func(r *domain.Roller, v gjson.Result) error {
			r.RollerMaterial = RollerMaterial(text(v))
			return nil
		}},
		Rule[domain.Roller]{Field: "slider_type", Paths: []string{"slider_type"}, Apply: func(r *domain.Roller, v gjson.Result) error {
			r.SliderType = SliderType(text(v))
			return nil
		}},
		Rule[domain.Roller]{Field: "lock_type", Paths: []string{"locking_type", "lock_type"}, Apply: func(r *domain.Roller, v gjson.Result) error {
			r.LockType = LockType(text(v))
			return nil
		}},
		Rule[domain.Roller]{Field: "bearing_material", Paths: []string{"bearing_material"}, Apply: func(r *domain.Roller, v gjson.Result) error {
			raw := text(v)
			if strings.TrimSpace(raw) == "" {
				raw = "steel"
			}
			r.BearingMaterial = BearingMaterial(raw)
			return nil
		}},
	)

	return &Cleaner[domain.Roller]{Kind: domain.KindRoller, Brand: []string{"manufacturer", "brand"}, Rules: rules}
}

// stretch keeps a stretch curve as text. Structured curves are stored as
// their compact JSON encoding.
func stretch(v gjson.Result) *string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return nil
	case v.IsArray(), v.IsObject():
		raw := v.Raw
		return &raw
	default:
		return OptionalString(v.String())
	}
}
