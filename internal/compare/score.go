package compare

// Weights are the similarity component weights. Score normalizes by
// their sum, so only the ratios matter.
type Weights struct {
	Ingredient  float64 `json:"ingredient" yaml:"ingredient" mapstructure:"ingredient"`
	Instruction float64 `json:"instruction" yaml:"instruction" mapstructure:"instruction"`
	Metadata    float64 `json:"metadata" yaml:"metadata" mapstructure:"metadata"`
}

// DefaultWeights favor ingredient identity over instruction wording
// over metadata.
var DefaultWeights = Weights{Ingredient: 0.5, Instruction: 0.35, Metadata: 0.15}

// Interpretation bucket boundaries.
const (
	verySimilarFloor       = 0.8
	moderatelySimilarFloor = 0.5
)

const metadataFieldCount = 6

// Score derives the component and overall similarity for a diff.
//
// Ingredient similarity is (unchanged + modified/2) over the matched
// key set, 1.0 when both sides are empty: a modified ingredient is
// present on both sides with differing details and counts as half a
// match. Instruction similarity is 1 - changes/max(stepsA, stepsB, 1),
// floored at zero. Metadata similarity is the unchanged fraction of
// the fixed scalar field set.
func Score(r *Result, w Weights) Similarity {
	sim := Similarity{
		Ingredient:  ingredientSimilarity(r.Ingredients),
		Instruction: instructionSimilarity(r.Instructions),
		Metadata:    metadataSimilarity(r.Differences),
	}

	total := w.Ingredient + w.Instruction + w.Metadata
	if total <= 0 {
		w = DefaultWeights
		total = w.Ingredient + w.Instruction + w.Metadata
	}
	sim.Overall = (w.Ingredient*sim.Ingredient + w.Instruction*sim.Instruction + w.Metadata*sim.Metadata) / total
	sim.Interpretation = Interpret(sim.Overall)
	return sim
}

func ingredientSimilarity(a IngredientAnalysis) float64 {
	total := a.Total()
	if total == 0 {
		return 1.0
	}
	return (float64(len(a.Unchanged)) + 0.5*float64(len(a.Modified))) / float64(total)
}

func instructionSimilarity(a InstructionAnalysis) float64 {
	denom := max(a.StepsA, a.StepsB, 1)
	changed := len(a.Changes) + len(a.Added) + len(a.Removed)
	sim := 1.0 - float64(changed)/float64(denom)
	if sim < 0 {
		return 0
	}
	return sim
}

func metadataSimilarity(diffs []FieldDifference) float64 {
	return float64(metadataFieldCount-len(diffs)) / float64(metadataFieldCount)
}

// Interpret buckets an overall score for display.
func Interpret(overall float64) string {
	switch {
	case overall >= verySimilarFloor:
		return "Very Similar"
	case overall >= moderatelySimilarFloor:
		return "Moderately Similar"
	default:
		return "Significantly Different"
	}
}
