package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
)

// AssertionError is returned when an assertion fails. It includes the
// family's ledger so a failure message shows what actually happened.
type AssertionError struct {
	Type     string         // Assertion type for categorization
	Expected string         // Human-readable expected outcome
	Actual   string         // Human-readable actual outcome
	Entries  []ledger.Entry // Family ledger for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Entries) > 0 {
		fmt.Fprintf(&buf, "\nFamily ledger:\n")
		for i, entry := range e.Entries {
			fmt.Fprintf(&buf, "  [%d] %-9s %s", i+1, entry.Action, entry.VersionID)
			if entry.PreviousVersionID != "" {
				fmt.Fprintf(&buf, " (from %s)", entry.PreviousVersionID)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// assertLedgerContains checks that the family ledger holds an entry
// matching the assertion's action and, when given, version and previous
// version.
func assertLedgerContains(entries []ledger.Entry, assertion Assertion) error {
	for _, entry := range entries {
		if string(entry.Action) != assertion.Action {
			continue
		}
		if assertion.Version != "" && entry.VersionID != assertion.Version {
			continue
		}
		if assertion.Previous != "" && entry.PreviousVersionID != assertion.Previous {
			continue
		}
		return nil
	}

	expected := fmt.Sprintf("entry with action %s", assertion.Action)
	if assertion.Version != "" {
		expected += fmt.Sprintf(" for version %s", assertion.Version)
	}
	if assertion.Previous != "" {
		expected += fmt.Sprintf(" from %s", assertion.Previous)
	}
	return &AssertionError{
		Type:     AssertLedgerContains,
		Expected: expected,
		Actual:   "no matching entry",
		Entries:  entries,
	}
}

// assertLedgerOrder checks that actions first appear in the ledger in
// the given order. Actions need not be consecutive; intervening entries
// are allowed.
func assertLedgerOrder(entries []ledger.Entry, assertion Assertion) error {
	// First position of each expected action, 1-indexed for readability.
	positions := make(map[string]int)
	for i, entry := range entries {
		action := string(entry.Action)
		for _, expected := range assertion.Actions {
			if action == expected && positions[expected] == 0 {
				positions[expected] = i + 1
			}
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertLedgerOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Entries:  entries,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertLedgerOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (entry %d) should be before %s (entry %d)",
					prev, positions[prev], curr, positions[curr]),
				Entries: entries,
			}
		}
	}

	return nil
}

// assertLedgerCount checks that the action appears exactly Count times
// in the family ledger.
func assertLedgerCount(entries []ledger.Entry, assertion Assertion) error {
	count := 0
	for _, entry := range entries {
		if string(entry.Action) == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertLedgerCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Entries:  entries,
		}
	}

	return nil
}

// assertFinalStatus checks that a version ended the flow in the given
// lifecycle status.
func assertFinalStatus(ctx context.Context, docs store.DocumentStore, assertion Assertion) error {
	doc, err := docs.Get(ctx, assertion.Version)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalStatus,
			Expected: fmt.Sprintf("version %s with status %s", assertion.Version, assertion.Status),
			Actual:   fmt.Sprintf("load failed: %v", err),
		}
	}

	if string(doc.Version.Status) != assertion.Status {
		return &AssertionError{
			Type:     AssertFinalStatus,
			Expected: fmt.Sprintf("version %s with status %s", assertion.Version, assertion.Status),
			Actual:   fmt.Sprintf("status %s", doc.Version.Status),
		}
	}

	return nil
}

// assertMainVersion checks the single-main invariant and that the flag
// sits on the expected version.
func assertMainVersion(ctx context.Context, docs store.DocumentStore, family string, assertion Assertion) error {
	versions, err := docs.ListVersions(ctx, family)
	if err != nil {
		return fmt.Errorf("main_version: list family %q: %w", family, err)
	}

	var mains []string
	for _, doc := range versions {
		if doc.Version.IsMain {
			mains = append(mains, doc.ID)
		}
	}

	if len(mains) != 1 {
		return &AssertionError{
			Type:     AssertMainVersion,
			Expected: fmt.Sprintf("exactly one main version in family %q", family),
			Actual:   fmt.Sprintf("%d main versions: %v", len(mains), mains),
		}
	}
	if mains[0] != assertion.Version {
		return &AssertionError{
			Type:     AssertMainVersion,
			Expected: fmt.Sprintf("main version %s", assertion.Version),
			Actual:   fmt.Sprintf("main version %s", mains[0]),
		}
	}

	return nil
}

// AssertionContext provides the state assertions evaluate against.
type AssertionContext struct {
	Ctx    context.Context
	Docs   store.DocumentStore
	Ledger *ledger.Ledger

	// Refs maps "as" names to the ids the flow minted for them.
	Refs map[string]string
}

// resolveRef maps "$name" to its bound id. Anything else, including an
// unbound reference, passes through unchanged; an unbound reference
// then fails its assertion with a message naming it.
func resolveRef(refs map[string]string, s string) string {
	name, ok := strings.CutPrefix(s, "$")
	if !ok {
		return s
	}
	if id, bound := refs[name]; bound {
		return id
	}
	return s
}

// EvaluateAssertions evaluates all assertions against the final state.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		assertion.Version = resolveRef(actx.Refs, assertion.Version)
		assertion.Previous = resolveRef(actx.Refs, assertion.Previous)
		family := recipe.Key(assertion.Family)

		var err error
		switch assertion.Type {
		case AssertLedgerContains:
			err = assertLedgerContains(actx.Ledger.History(family), assertion)
		case AssertLedgerOrder:
			err = assertLedgerOrder(actx.Ledger.History(family), assertion)
		case AssertLedgerCount:
			err = assertLedgerCount(actx.Ledger.History(family), assertion)
		case AssertFinalStatus:
			err = assertFinalStatus(actx.Ctx, actx.Docs, assertion)
		case AssertMainVersion:
			err = assertMainVersion(actx.Ctx, actx.Docs, family, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
