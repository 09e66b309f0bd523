package compare

import "github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"

// Result is the full comparison of two documents. It is ephemeral:
// computed on demand, rendered, and discarded, never persisted.
type Result struct {
	// VersionA and VersionB are snapshots of the compared documents.
	VersionA *recipe.Document `json:"version_a"`
	VersionB *recipe.Document `json:"version_b"`

	Ingredients  IngredientAnalysis  `json:"ingredients"`
	Instructions InstructionAnalysis `json:"instructions"`

	// Differences covers the fixed scalar metadata set. Raw values are
	// carried even when unset; "Not set" is display-only.
	Differences []FieldDifference `json:"differences,omitempty"`

	Similarity  Similarity `json:"similarity"`
	Recommended Action     `json:"recommended_action"`
}

// IngredientAnalysis buckets ingredients by how they changed between
// version A and version B. Slices are sorted by canonical name key.
type IngredientAnalysis struct {
	// Added ingredients appear only in B.
	Added []recipe.Ingredient `json:"added,omitempty"`
	// Removed ingredients appear only in A.
	Removed []recipe.Ingredient `json:"removed,omitempty"`
	// Modified ingredients appear in both with a differing amount or
	// unit.
	Modified []IngredientModification `json:"modified,omitempty"`
	// Unchanged ingredients appear in both with identical amount and
	// unit (snapshot taken from side A).
	Unchanged []recipe.Ingredient `json:"unchanged,omitempty"`
}

// Total returns the number of distinct ingredient keys across both
// documents.
func (a IngredientAnalysis) Total() int {
	return len(a.Added) + len(a.Removed) + len(a.Modified) + len(a.Unchanged)
}

// IngredientModification records a matched ingredient whose amount or
// unit changed, with per-field before/after deltas keyed "amount" and
// "unit".
type IngredientModification struct {
	Before  recipe.Ingredient     `json:"before"`
	After   recipe.Ingredient     `json:"after"`
	Details map[string]FieldDelta `json:"details"`
}

// FieldDelta is a single field's before/after pair.
type FieldDelta struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// InstructionAnalysis is the positional step diff.
type InstructionAnalysis struct {
	// StepsA and StepsB are the normalized step counts per side.
	StepsA int `json:"steps_a"`
	StepsB int `json:"steps_b"`

	// Changes are positions present on both sides whose text differs.
	Changes []StepChange `json:"changes,omitempty"`
	// Added holds B's surplus steps when B is longer.
	Added []string `json:"added,omitempty"`
	// Removed holds A's surplus steps when A is longer.
	Removed []string `json:"removed,omitempty"`
}

// StepChange is a differing step at one position. Step is 1-based.
type StepChange struct {
	Step   int    `json:"step"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ChangeType classifies a scalar metadata difference.
type ChangeType string

const (
	// ChangeAdded means the field is unset in A and set in B.
	ChangeAdded ChangeType = "added"
	// ChangeRemoved means the field is set in A and unset in B.
	ChangeRemoved ChangeType = "removed"
	// ChangeModified means both sides are set and differ.
	ChangeModified ChangeType = "modified"
)

// FieldDifference is one scalar metadata field that differs.
type FieldDifference struct {
	Field  string     `json:"field"`
	ValueA string     `json:"value_a"`
	ValueB string     `json:"value_b"`
	Change ChangeType `json:"change"`
}

// Similarity holds the weighted score and its components, all in
// [0.0, 1.0].
type Similarity struct {
	Overall        float64 `json:"overall"`
	Ingredient     float64 `json:"ingredient"`
	Instruction    float64 `json:"instruction"`
	Metadata       float64 `json:"metadata"`
	Interpretation string  `json:"interpretation"`
}

// Action is the recommended follow-up after a comparison.
type Action string

const (
	// ActionMergeRecommended : near-identical, nothing lost by merging.
	ActionMergeRecommended Action = "merge_recommended"
	// ActionKeepAsVariation : related but meaningfully different.
	ActionKeepAsVariation Action = "keep_as_variation"
	// ActionSupersede : one side strictly extends the other.
	ActionSupersede Action = "supersede"
	// ActionKeepSeparate : too different to relate.
	ActionKeepSeparate Action = "keep_separate"
)

func (a Action) String() string { return string(a) }
