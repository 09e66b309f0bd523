package compare

import (
	"sort"
	"strings"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// Documents runs the full pipeline: structural diff, similarity score,
// recommendation. Nil documents are treated as empty.
func Documents(a, b *recipe.Document, opts ...Option) *Result {
	o := newOptions(opts)
	r := diff(a, b, o.split)
	r.Similarity = Score(r, o.weights)
	r.Recommended = Recommend(r)
	return r
}

// Diff computes the structural diff only, leaving Similarity and
// Recommended at their zero values.
func Diff(a, b *recipe.Document, opts ...Option) *Result {
	o := newOptions(opts)
	return diff(a, b, o.split)
}

func diff(a, b *recipe.Document, split StepSplitter) *Result {
	if a == nil {
		a = &recipe.Document{}
	}
	if b == nil {
		b = &recipe.Document{}
	}
	return &Result{
		VersionA:     a.Clone(),
		VersionB:     b.Clone(),
		Ingredients:  diffIngredients(a.Ingredients, b.Ingredients),
		Instructions: diffInstructions(stepsOf(a, split), stepsOf(b, split)),
		Differences:  diffMetadata(a, b),
	}
}

// diffIngredients matches by canonical name key. First occurrence wins
// when a document repeats an ingredient name.
func diffIngredients(a, b []recipe.Ingredient) IngredientAnalysis {
	byKeyA := keyed(a)
	byKeyB := keyed(b)

	var out IngredientAnalysis
	for key, ingB := range byKeyB {
		ingA, ok := byKeyA[key]
		if !ok {
			out.Added = append(out.Added, ingB)
			continue
		}
		details := make(map[string]FieldDelta)
		if ingA.Amount != ingB.Amount {
			details["amount"] = FieldDelta{Before: ingA.Amount, After: ingB.Amount}
		}
		if ingA.Unit != ingB.Unit {
			details["unit"] = FieldDelta{Before: ingA.Unit, After: ingB.Unit}
		}
		if len(details) == 0 {
			out.Unchanged = append(out.Unchanged, ingA)
		} else {
			out.Modified = append(out.Modified, IngredientModification{
				Before:  ingA,
				After:   ingB,
				Details: details,
			})
		}
	}
	for key, ingA := range byKeyA {
		if _, ok := byKeyB[key]; !ok {
			out.Removed = append(out.Removed, ingA)
		}
	}

	sortIngredients(out.Added)
	sortIngredients(out.Removed)
	sortIngredients(out.Unchanged)
	sort.Slice(out.Modified, func(i, j int) bool {
		return recipe.Key(out.Modified[i].Before.Name) < recipe.Key(out.Modified[j].Before.Name)
	})
	return out
}

func keyed(ings []recipe.Ingredient) map[string]recipe.Ingredient {
	m := make(map[string]recipe.Ingredient, len(ings))
	for _, ing := range ings {
		key := recipe.Key(ing.Name)
		if key == "" {
			continue
		}
		if _, ok := m[key]; !ok {
			m[key] = ing
		}
	}
	return m
}

func sortIngredients(ings []recipe.Ingredient) {
	sort.Slice(ings, func(i, j int) bool {
		return recipe.Key(ings[i].Name) < recipe.Key(ings[j].Name)
	})
}

// diffInstructions aligns steps by position. Index i present on both
// sides with differing text is a change; surplus indexes on the longer
// side are additions or removals.
func diffInstructions(stepsA, stepsB []string) InstructionAnalysis {
	out := InstructionAnalysis{StepsA: len(stepsA), StepsB: len(stepsB)}

	shared := min(len(stepsA), len(stepsB))
	for i := 0; i < shared; i++ {
		before := strings.TrimSpace(stepsA[i])
		after := strings.TrimSpace(stepsB[i])
		if before != after {
			out.Changes = append(out.Changes, StepChange{Step: i + 1, Before: before, After: after})
		}
	}
	for i := shared; i < len(stepsB); i++ {
		out.Added = append(out.Added, stepsB[i])
	}
	for i := shared; i < len(stepsA); i++ {
		out.Removed = append(out.Removed, stepsA[i])
	}
	return out
}

// diffMetadata walks the fixed scalar field set in its stable order.
func diffMetadata(a, b *recipe.Document) []FieldDifference {
	fieldsA := a.MetadataFields()
	fieldsB := b.MetadataFields()

	var diffs []FieldDifference
	for i, fa := range fieldsA {
		fb := fieldsB[i]
		if fa.Value == fb.Value {
			continue
		}
		change := ChangeModified
		switch {
		case fa.Value == "":
			change = ChangeAdded
		case fb.Value == "":
			change = ChangeRemoved
		}
		diffs = append(diffs, FieldDifference{
			Field:  fa.Name,
			ValueA: fa.Value,
			ValueB: fb.Value,
			Change: change,
		})
	}
	return diffs
}
