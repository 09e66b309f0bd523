package compare

// Recommendation thresholds.
const (
	mergeFloor     = 0.85
	variationFloor = 0.5
)

// Recommend maps a scored diff to a follow-up action. Requires
// r.Similarity to be populated (Documents does this).
//
// The ladder is evaluated top down: merge when near-identical and
// nothing was removed, variation when moderately similar, supersede
// when one side strictly extends the other, keep-separate otherwise.
func Recommend(r *Result) Action {
	overall := r.Similarity.Overall

	if overall >= mergeFloor && len(r.Ingredients.Removed) == 0 {
		return ActionMergeRecommended
	}
	if overall >= variationFloor {
		return ActionKeepAsVariation
	}
	if supersedes(r) {
		return ActionSupersede
	}
	return ActionKeepSeparate
}

// supersedes reports whether one side has strictly more content while
// containing every item of the smaller side unchanged.
func supersedes(r *Result) bool {
	ing := r.Ingredients
	inst := r.Instructions

	contentA := len(ing.Removed) + len(ing.Modified) + len(ing.Unchanged) + inst.StepsA
	contentB := len(ing.Added) + len(ing.Modified) + len(ing.Unchanged) + inst.StepsB

	switch {
	case contentB > contentA:
		// B extends A: nothing of A may be missing or altered.
		return len(ing.Removed) == 0 && len(ing.Modified) == 0 &&
			len(inst.Changes) == 0 && len(inst.Removed) == 0
	case contentA > contentB:
		// A extends B.
		return len(ing.Added) == 0 && len(ing.Modified) == 0 &&
			len(inst.Changes) == 0 && len(inst.Added) == 0
	default:
		return false
	}
}
