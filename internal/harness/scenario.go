package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// Scenario defines an acceptance test scenario. Scenarios seed a
// library, drive lifecycle operations through the engine, and assert on
// the resulting ledger and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Documents are seeded directly into the store before the flow.
	// Seeds carry explicit ids and do not appear in the ledger or trace.
	Documents []*recipe.Document `yaml:"documents,omitempty"`

	// Flow contains the operations to execute in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the ledger and final state after the flow.
	Assertions []Assertion `yaml:"assertions"`
}

// Flow operation names.
const (
	OpCreateRoot = "create_root"
	OpBranch     = "branch"
	OpPublish    = "publish"
	OpArchive    = "archive"
	OpRestore    = "restore"
	OpMerge      = "merge"
	OpPromote    = "promote"
	OpModify     = "modify"
	OpCompare    = "compare"
)

// FlowStep is one operation in the scenario flow. Op selects the
// operation; the remaining fields are op-specific. String fields that
// name a version accept either a literal id or a "$name" reference
// bound by an earlier step's "as".
type FlowStep struct {
	Op string `yaml:"op"`

	// As binds the id minted by create_root or branch for later steps.
	As string `yaml:"as,omitempty"`

	// Document is the inline document for create_root.
	Document *recipe.Document `yaml:"document,omitempty"`

	// Branch inputs: the base version plus either an explicit number or
	// an increment (patch, minor, major) applied to the base's number.
	Base      string    `yaml:"base,omitempty"`
	Number    string    `yaml:"number,omitempty"`
	Increment string    `yaml:"increment,omitempty"`
	Type      string    `yaml:"type,omitempty"`
	Label     string    `yaml:"label,omitempty"`
	Reason    string    `yaml:"reason,omitempty"`
	Copy      *CopySpec `yaml:"copy,omitempty"` // nil copies everything

	// Version is the target of publish, archive, restore, promote, and
	// modify.
	Version     string   `yaml:"version,omitempty"`
	Description string   `yaml:"description,omitempty"` // publish
	Changes     []string `yaml:"changes,omitempty"`     // modify

	// Merge inputs.
	Survivor string `yaml:"survivor,omitempty"`
	Merged   string `yaml:"merged,omitempty"`

	// Compare inputs.
	A string `yaml:"a,omitempty"`
	B string `yaml:"b,omitempty"`

	// Expect, when present, requires the step to fail with the given
	// code. Absent, the step must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// CopySpec selects which sections a branch copies from its base.
type CopySpec struct {
	Ingredients  bool `yaml:"ingredients"`
	Instructions bool `yaml:"instructions"`
	Metadata     bool `yaml:"metadata"`
}

// ExpectClause names the failure a step must produce.
type ExpectClause struct {
	// Error is the expected failure code, e.g. "invalid_transition".
	Error string `yaml:"error"`
}

// Assertion validates the ledger or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "ledger_contains": a matching entry exists in the family ledger
	// - "ledger_order": actions first appear in the given order
	// - "ledger_count": an action appears exactly Count times
	// - "final_status": a version ends in the given status
	// - "main_version": the family's single main flag sits on a version
	Type string `yaml:"type"`

	// Family is the recipe family, by name or canonical key.
	Family string `yaml:"family,omitempty"`

	// Action is the ledger action (used by ledger_contains, ledger_count).
	Action string `yaml:"action,omitempty"`

	// Version is a version id or $reference.
	Version string `yaml:"version,omitempty"`

	// Previous is the expected previous version id of a ledger_contains
	// match. Empty matches any.
	Previous string `yaml:"previous,omitempty"`

	// Actions is the expected first-occurrence order (ledger_order).
	Actions []string `yaml:"actions,omitempty"`

	// Count is the expected number of occurrences (ledger_count).
	Count int `yaml:"count,omitempty"`

	// Status is the expected lifecycle status (final_status).
	Status string `yaml:"status,omitempty"`
}

// Assertion type constants.
const (
	AssertLedgerContains = "ledger_contains"
	AssertLedgerOrder    = "ledger_order"
	AssertLedgerCount    = "ledger_count"
	AssertFinalStatus    = "final_status"
	AssertMainVersion    = "main_version"
)

// LoadScenario reads and parses a scenario YAML file. Returns an error
// if the file doesn't exist, is malformed, contains unknown fields
// (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, doc := range s.Documents {
		if doc == nil {
			return fmt.Errorf("documents[%d]: document is empty", i)
		}
		if doc.ID == "" {
			return fmt.Errorf("documents[%d]: id is required (flow references seeds by id)", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single flow step based on its operation.
func validateStep(index int, step *FlowStep) error {
	switch step.Op {
	case "":
		return fmt.Errorf("flow[%d]: op is required", index)
	case OpCreateRoot:
		if step.Document == nil {
			return fmt.Errorf("flow[%d]: document is required for create_root", index)
		}
	case OpBranch:
		if step.Base == "" {
			return fmt.Errorf("flow[%d]: base is required for branch", index)
		}
		if step.Number != "" && step.Increment != "" {
			return fmt.Errorf("flow[%d]: number and increment are mutually exclusive", index)
		}
		if step.Increment != "" {
			if _, err := semver.ParseIncrement(step.Increment); err != nil {
				return fmt.Errorf("flow[%d]: %w", index, err)
			}
		}
	case OpPublish, OpArchive, OpRestore, OpPromote:
		if step.Version == "" {
			return fmt.Errorf("flow[%d]: version is required for %s", index, step.Op)
		}
	case OpModify:
		if step.Version == "" {
			return fmt.Errorf("flow[%d]: version is required for modify", index)
		}
		if len(step.Changes) == 0 {
			return fmt.Errorf("flow[%d]: changes list is required for modify", index)
		}
	case OpMerge:
		if step.Survivor == "" || step.Merged == "" {
			return fmt.Errorf("flow[%d]: survivor and merged are required for merge", index)
		}
	case OpCompare:
		if step.A == "" || step.B == "" {
			return fmt.Errorf("flow[%d]: a and b are required for compare", index)
		}
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}

	if step.As != "" && step.Op != OpCreateRoot && step.Op != OpBranch {
		return fmt.Errorf("flow[%d]: as is only valid on create_root and branch", index)
	}
	if step.Expect != nil && step.Expect.Error == "" {
		return fmt.Errorf("flow[%d].expect: error is required", index)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLedgerContains:
		if a.Family == "" || a.Action == "" {
			return fmt.Errorf("assertions[%d]: family and action are required for ledger_contains", index)
		}
	case AssertLedgerOrder:
		if a.Family == "" {
			return fmt.Errorf("assertions[%d]: family is required for ledger_order", index)
		}
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for ledger_order", index)
		}
	case AssertLedgerCount:
		if a.Family == "" || a.Action == "" {
			return fmt.Errorf("assertions[%d]: family and action are required for ledger_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for ledger_count", index)
		}
	case AssertFinalStatus:
		if a.Version == "" || a.Status == "" {
			return fmt.Errorf("assertions[%d]: version and status are required for final_status", index)
		}
	case AssertMainVersion:
		if a.Family == "" || a.Version == "" {
			return fmt.Errorf("assertions[%d]: family and version are required for main_version", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
