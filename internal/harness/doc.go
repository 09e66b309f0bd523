// Package harness provides scenario-driven acceptance testing for the
// version lifecycle engine.
//
// A scenario seeds a document store, drives a sequence of lifecycle
// operations through a real engine, and asserts on the resulting ledger
// and final state. Each run uses a fresh in-memory store with a
// deterministic clock and id sequence, so the same scenario always
// produces the same trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	documents:
//	  - id: v-1
//	    name: Old Fashioned
//	    version: { number: 1.0.0, type: original, status: published, is_main: true }
//	flow:
//	  - op: branch
//	    base: v-1
//	    as: riff
//	    increment: minor
//	    reason: "Rye instead of bourbon"
//	  - op: publish
//	    version: $riff
//	    description: "Switched to rye"
//	  - op: merge
//	    survivor: v-1
//	    merged: $riff
//	    expect:
//	      error: invalid_transition
//	assertions:
//	  - type: ledger_contains
//	    family: Old Fashioned
//	    action: branched
//	    version: $riff
//	  - type: final_status
//	    version: $riff
//	    status: published
//
// Steps that create versions can bind the minted id to a name with
// "as"; later steps and assertions reference it as "$name". Every other
// reference is a literal version id from the seeded documents.
//
// # Operations
//
// The flow supports the full lifecycle surface:
//
//   - create_root: create a family's first version from an inline document
//   - branch: create a new version from a base (number or increment)
//   - publish, archive, restore: lifecycle transitions
//   - promote: move the family's main flag
//   - merge: archive one version into a survivor
//   - modify: record an editor modification in the ledger
//   - compare: diff and score two versions
//
// A step with an expect clause must fail with the named code
// (version_not_found, invalid_transition, duplicate_version_number,
// validation_failed, invalid_version_format, atomic_update_failed);
// any other outcome fails the scenario.
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - ledger_contains: a family's ledger holds a matching entry
//   - ledger_order: actions first appear in the given order
//   - ledger_count: an action appears exactly N times
//   - final_status: a version ends in the given lifecycle status
//   - main_version: a family's single main flag sits on the given version
//
// # Deterministic Testing
//
// All scenarios execute with a deterministic clock (testutil.Clock
// starting at testutil.Epoch) and sequential ids
// (testutil.SequenceIDGenerator), so traces are byte-stable across runs
// and suitable for golden file comparison via RunWithGolden.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/merge.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
