package ledger

import (
	"fmt"
	"strings"
)

// Action names what happened to a version.
type Action string

const (
	// ActionCreated : a family's root version came into existence.
	ActionCreated Action = "created"
	// ActionModified : substantive edits were saved to a draft.
	ActionModified Action = "modified"
	// ActionPublished : draft → published.
	ActionPublished Action = "published"
	// ActionArchived : published → archived.
	ActionArchived Action = "archived"
	// ActionBranched : a new version was created from a parent.
	ActionBranched Action = "branched"
	// ActionMerged : recorded against the survivor of a merge.
	ActionMerged Action = "merged"
	// ActionRestored : archived → published.
	ActionRestored Action = "restored"
)

// ValidActions defines the allowed action names.
var ValidActions = map[Action]bool{
	ActionCreated:   true,
	ActionModified:  true,
	ActionPublished: true,
	ActionArchived:  true,
	ActionBranched:  true,
	ActionMerged:    true,
	ActionRestored:  true,
}

// ParseAction converts a string to an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !ValidActions[a] {
		return "", fmt.Errorf("unknown ledger action %q", s)
	}
	return a, nil
}

func (a Action) String() string { return string(a) }

// Valid reports whether a is a known action.
func (a Action) Valid() bool { return ValidActions[a] }
