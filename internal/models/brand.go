package models

// Brand is a single entry in the EV brand registry. The registry is loaded once
// at startup and shared read-only by every pipeline component; iteration order is
// the slice order, which keeps brand matching deterministic.
type Brand struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
}

type BrandRegistry []Brand

// Get returns the registry entry for a brand ID.
func (r BrandRegistry) Get(id string) (Brand, bool) {
	for _, b := range r {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// DisplayName resolves a brand ID to its display name, falling back to the ID
// itself for unknown brands so provider prompts always carry something readable.
func (r BrandRegistry) DisplayName(id string) string {
	if b, ok := r.Get(id); ok {
		return b.Name
	}
	return id
}

// DefaultBrandRegistry returns the tracked Indian EV OEMs.
func DefaultBrandRegistry() BrandRegistry {
	return BrandRegistry{
		{ID: "ola_electric", Name: "Ola Electric", Keywords: []string{"ola electric", "ola s1", "ola scooter"}, Category: "electric_scooter"},
		{ID: "ather_energy", Name: "Ather Energy", Keywords: []string{"ather", "ather 450x", "ather 450"}, Category: "electric_scooter"},
		{ID: "bajaj_chetak", Name: "Bajaj Chetak", Keywords: []string{"bajaj chetak", "chetak electric"}, Category: "electric_scooter"},
		{ID: "tvs_iqube", Name: "TVS iQube", Keywords: []string{"tvs iqube", "iqube electric"}, Category: "electric_scooter"},
		{ID: "hero_electric", Name: "Hero Electric", Keywords: []string{"hero electric", "hero vida"}, Category: "electric_scooter"},
		{ID: "ampere", Name: "Ampere Vehicles", Keywords: []string{"ampere", "ampere magnus", "ampere zeal"}, Category: "electric_scooter"},
		{ID: "river_mobility", Name: "River Mobility", Keywords: []string{"river indie", "river electric"}, Category: "electric_scooter"},
		{ID: "ultraviolette", Name: "Ultraviolette Automotive", Keywords: []string{"ultraviolette", "ultraviolette f77"}, Category: "electric_motorcycle"},
		{ID: "revolt_motors", Name: "Revolt Motors", Keywords: []string{"revolt", "revolt rv400"}, Category: "electric_motorcycle"},
		{ID: "bgauss", Name: "BGauss", Keywords: []string{"bgauss", "bgauss a2"}, Category: "electric_scooter"},
	}
}

// AspectLexicon maps the 8 fixed EV aspect categories to the keywords used for
// detection only; sentiment for an aspect always comes from a provider.
type AspectLexicon map[string][]string

func DefaultAspectLexicon() AspectLexicon {
	return AspectLexicon{
		"battery":                 {"battery", "range", "charging", "mileage", "backup"},
		"performance":             {"speed", "acceleration", "power", "torque", "handling"},
		"design":                  {"look", "design", "appearance", "style", "aesthetics"},
		"build_quality":           {"quality", "build", "material", "durability", "finish"},
		"features":                {"features", "technology", "connectivity", "app", "digital"},
		"service":                 {"service", "support", "maintenance", "repair", "dealer"},
		"price":                   {"price", "cost", "value", "expensive", "affordable"},
		"charging_infrastructure": {"charging station", "infrastructure", "availability"},
	}
}

// KnownAspects reports whether name is one of the fixed aspect categories.
func (l AspectLexicon) Known(name string) bool {
	_, ok := l[name]
	return ok
}
