package compare

import (
	"regexp"
	"strings"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// StepSplitter turns free-text instructions into an ordered step
// sequence. The policy is caller-supplied via WithSplitter; SplitSteps
// is the default.
type StepSplitter func(text string) []string

var numberedStep = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*`)

// SplitSteps is the default split policy:
//
//  1. Numbered lines ("1. Stir", "2) Strain") split at each marker,
//     markers stripped; a multi-line body under one number stays one
//     step.
//  2. Otherwise multi-line text splits per non-empty line.
//  3. Otherwise single-line text splits at sentence terminators, with
//     the terminator kept on the step.
//
// Whitespace-only input yields no steps.
func SplitSteps(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if numberedStep.MatchString(text) {
		return compact(numberedStep.Split(text, -1))
	}

	if strings.ContainsRune(text, '\n') {
		return compact(strings.Split(text, "\n"))
	}

	return compact(sentenceEnd.FindAllString(text, -1))
}

// sentenceEnd captures runs of non-terminator text plus any trailing
// terminators, so "Stir well. Serve" yields "Stir well." and "Serve".
var sentenceEnd = regexp.MustCompile(`[^.!?]+[.!?]*`)

func compact(parts []string) []string {
	var steps []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.Trim(p, ".!?") == "" {
			continue
		}
		steps = append(steps, p)
	}
	return steps
}

// stepsOf normalizes a document to its step sequence: explicit Steps
// when present, the split policy applied to Instructions otherwise.
func stepsOf(d *recipe.Document, split StepSplitter) []string {
	if len(d.Steps) > 0 {
		steps := make([]string, 0, len(d.Steps))
		for _, s := range d.Steps {
			s = strings.TrimSpace(s)
			if s != "" {
				steps = append(steps, s)
			}
		}
		return steps
	}
	return split(d.Instructions)
}
