package ability

// Definition models the JSON-facing metadata for a single ability: its
// designer-facing id, persistence code, display name, cast key and
// tunables. The schema generator in cmd/schema does not reflect it (it
// reflects httpapi.CommandSchema only), and the playback dispatcher does not
// consult it: ability handlers receive only the ability id and target.
type Definition struct {
	ID          string         `json:"id" jsonschema:"title=Ability id,pattern=^[a-z_]+$,description=Designer facing identifier for the ability"`
	Code        uint8          `json:"code" jsonschema:"title=Persistence code,minimum=1,maximum=4,description=Stable numeric encoding written by the persistence codec"`
	DisplayName string         `json:"displayName" jsonschema:"description=Name shown on the ability bar"`
	CastKey     string         `json:"castKey" jsonschema:"description=Keyboard digit bound to this ability during capture"`
	Targeted    bool           `json:"targeted" jsonschema:"description=Whether the ability accepts an optional target"`
	Parameters  map[string]int `json:"parameters,omitempty" jsonschema:"description=Designer tunables forwarded to the effect handler"`
}

// Catalog is the full set of ability definitions, keyed by their stable id.
type Catalog []Definition

// DefaultCatalog returns the designer-facing metadata for the closed ability
// set, in their Code order.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "auto_shot", Code: AutoShot.Code(), DisplayName: "Auto Shot", CastKey: "Digit1", Targeted: false},
		{ID: "holy_nova", Code: HolyNova.Code(), DisplayName: "Holy Nova", CastKey: "Digit2", Targeted: false},
		{ID: "poison_shot", Code: PoisonShot.Code(), DisplayName: "Poison Shot", CastKey: "Digit3", Targeted: false},
		{ID: "heal", Code: Heal.Code(), DisplayName: "Heal", CastKey: "Digit4", Targeted: true},
	}
}
