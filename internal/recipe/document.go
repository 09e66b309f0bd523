package recipe

import "slices"

// Document is one version of a recipe: the full content plus its
// version metadata. Versions sharing a family key form a version
// family; exactly one member of a family is the main version.
type Document struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	Ingredients []Ingredient `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`

	// Instructions holds free-text instructions. Steps, when non-empty,
	// is the authoritative ordered step sequence; otherwise the diff
	// layer derives steps from Instructions via its split policy.
	Instructions string   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Steps        []string `json:"steps,omitempty" yaml:"steps,omitempty"`

	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Glassware  string `json:"glassware,omitempty" yaml:"glassware,omitempty"`
	Garnish    string `json:"garnish,omitempty" yaml:"garnish,omitempty"`
	PrepTime   string `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Yields     string `json:"yields,omitempty" yaml:"yields,omitempty"`

	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	FlavorProfile []string `json:"flavor_profile,omitempty" yaml:"flavor_profile,omitempty"`

	Version VersionMeta `json:"version" yaml:"version"`
}

// Ingredient is a single recipe component. Amount is the raw form
// value; "2" and "2.0" are different amounts.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// FieldValue pairs a scalar metadata field name with its raw value.
type FieldValue struct {
	Name  string
	Value string
}

// MetadataFields returns the fixed scalar metadata set in a stable
// order. An empty value means the field is unset; display layers render
// that as "Not set", but the raw value here stays empty.
func (d *Document) MetadataFields() []FieldValue {
	return []FieldValue{
		{Name: "category", Value: d.Category},
		{Name: "glassware", Value: d.Glassware},
		{Name: "garnish", Value: d.Garnish},
		{Name: "prep_time", Value: d.PrepTime},
		{Name: "difficulty", Value: d.Difficulty},
		{Name: "yields", Value: d.Yields},
	}
}

// FamilyKey returns the canonical key of the document's version family.
func (d *Document) FamilyKey() string {
	return Key(d.Name)
}

// Clone returns a deep copy. Stores and the ledger hand out clones so
// callers can never mutate shared state.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Ingredients = slices.Clone(d.Ingredients)
	out.Steps = slices.Clone(d.Steps)
	out.Tags = slices.Clone(d.Tags)
	out.FlavorProfile = slices.Clone(d.FlavorProfile)
	return &out
}

// FormState is the full editor form snapshot captured by autosave: the
// document as currently edited plus the fields touched since the last
// explicit save.
type FormState struct {
	Document Document `json:"document" yaml:"document"`
	Touched  []string `json:"touched,omitempty" yaml:"touched,omitempty"`
}

// Clone returns a deep copy of the form state.
func (s *FormState) Clone() *FormState {
	if s == nil {
		return nil
	}
	out := FormState{Document: *s.Document.Clone(), Touched: slices.Clone(s.Touched)}
	return &out
}
