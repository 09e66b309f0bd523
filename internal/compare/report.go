package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// NotSet is the display sentinel for unset scalar metadata. Diff
// records always carry the raw (empty) value; only rendering uses this.
const NotSet = "Not set"

// RenderText renders a human-readable comparison report. Output is
// byte-stable for a given Result: sections appear in fixed order and
// all slices are already sorted by the diff.
func RenderText(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Version A: %s\n", describeSide(r.VersionA))
	fmt.Fprintf(&b, "Version B: %s\n", describeSide(r.VersionB))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Overall similarity: %s (%s)\n", percent(r.Similarity.Overall), r.Similarity.Interpretation)
	fmt.Fprintf(&b, "  ingredients:  %s\n", percent(r.Similarity.Ingredient))
	fmt.Fprintf(&b, "  instructions: %s\n", percent(r.Similarity.Instruction))
	fmt.Fprintf(&b, "  metadata:     %s\n", percent(r.Similarity.Metadata))
	fmt.Fprintf(&b, "Recommended action: %s\n", r.Recommended)

	renderIngredients(&b, r.Ingredients)
	renderInstructions(&b, r.Instructions)
	renderMetadata(&b, r.Differences)

	if len(r.Ingredients.Added)+len(r.Ingredients.Removed)+len(r.Ingredients.Modified) == 0 &&
		len(r.Instructions.Changes)+len(r.Instructions.Added)+len(r.Instructions.Removed) == 0 &&
		len(r.Differences) == 0 {
		b.WriteString("\nNo differences found.\n")
	}

	return b.String()
}

func describeSide(d *recipe.Document) string {
	if d == nil || (d.Name == "" && d.Version.Number == "") {
		return "(empty)"
	}
	if d.Version.Number == "" {
		return d.Name
	}
	return fmt.Sprintf("%s %s", d.Name, d.Version.Number)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func renderIngredients(b *strings.Builder, a IngredientAnalysis) {
	if len(a.Added)+len(a.Removed)+len(a.Modified) == 0 {
		return
	}
	b.WriteString("\nIngredients:\n")
	for _, ing := range a.Added {
		fmt.Fprintf(b, "  + %s\n", describeIngredient(ing))
	}
	for _, ing := range a.Removed {
		fmt.Fprintf(b, "  - %s\n", describeIngredient(ing))
	}
	for _, mod := range a.Modified {
		fmt.Fprintf(b, "  ~ %s: %s\n", mod.Before.Name, describeDeltas(mod.Details))
	}
	if n := len(a.Unchanged); n > 0 {
		fmt.Fprintf(b, "  = %d unchanged\n", n)
	}
}

func describeIngredient(ing recipe.Ingredient) string {
	parts := make([]string, 0, 3)
	if ing.Amount != "" {
		parts = append(parts, ing.Amount)
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	parts = append(parts, ing.Name)
	return strings.Join(parts, " ")
}

func describeDeltas(details map[string]FieldDelta) string {
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		d := details[f]
		parts = append(parts, fmt.Sprintf("%s %s -> %s", f, displayValue(d.Before), displayValue(d.After)))
	}
	return strings.Join(parts, ", ")
}

func renderInstructions(b *strings.Builder, a InstructionAnalysis) {
	if len(a.Changes)+len(a.Added)+len(a.Removed) == 0 {
		return
	}
	b.WriteString("\nSteps:\n")
	for _, c := range a.Changes {
		fmt.Fprintf(b, "  step %d changed:\n", c.Step)
		fmt.Fprintf(b, "    before: %s\n", c.Before)
		fmt.Fprintf(b, "    after:  %s\n", c.After)
	}
	for _, s := range a.Added {
		fmt.Fprintf(b, "  + %s\n", s)
	}
	for _, s := range a.Removed {
		fmt.Fprintf(b, "  - %s\n", s)
	}
}

func renderMetadata(b *strings.Builder, diffs []FieldDifference) {
	if len(diffs) == 0 {
		return
	}
	b.WriteString("\nMetadata:\n")
	for _, d := range diffs {
		fmt.Fprintf(b, "  %s: %s -> %s (%s)\n", d.Field, displayValue(d.ValueA), displayValue(d.ValueB), d.Change)
	}
}

// displayValue substitutes the display sentinel for unset values.
func displayValue(v string) string {
	if v == "" {
		return NotSet
	}
	return v
}
