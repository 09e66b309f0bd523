package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes scenario YAML to a temp file and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validScenario = `
name: test_scenario
description: "Branch a riff and publish it"
documents:
  - id: v-1
    name: Old Fashioned
    ingredients:
      - name: Bourbon
        amount: "2"
        unit: oz
    version:
      number: 1.0.0
      type: original
      status: published
      is_main: true
flow:
  - op: branch
    base: v-1
    as: riff
    increment: minor
    reason: "Rye instead of bourbon"
  - op: publish
    version: $riff
    description: "Switched to rye"
assertions:
  - type: ledger_contains
    family: Old Fashioned
    action: branched
    version: $riff
    previous: v-1
  - type: final_status
    version: $riff
    status: published
`

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, validScenario))
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Branch a riff and publish it", scenario.Description)
	require.Len(t, scenario.Documents, 1)
	assert.Equal(t, "v-1", scenario.Documents[0].ID)
	assert.Equal(t, "Old Fashioned", scenario.Documents[0].Name)
	assert.Equal(t, "1.0.0", scenario.Documents[0].Version.Number)
	assert.True(t, scenario.Documents[0].Version.IsMain)

	require.Len(t, scenario.Flow, 2)
	assert.Equal(t, OpBranch, scenario.Flow[0].Op)
	assert.Equal(t, "v-1", scenario.Flow[0].Base)
	assert.Equal(t, "riff", scenario.Flow[0].As)
	assert.Equal(t, "minor", scenario.Flow[0].Increment)
	assert.Equal(t, OpPublish, scenario.Flow[1].Op)
	assert.Equal(t, "$riff", scenario.Flow[1].Version)
	assert.Equal(t, "Switched to rye", scenario.Flow[1].Description)

	require.Len(t, scenario.Assertions, 2)
	assert.Equal(t, AssertLedgerContains, scenario.Assertions[0].Type)
	assert.Equal(t, "branched", scenario.Assertions[0].Action)
	assert.Equal(t, "v-1", scenario.Assertions[0].Previous)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	content := `
name: test
description: "Test"
flow:
  unclosed: [bracket
`
	_, err := LoadScenario(writeScenario(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing_name",
			yaml: `
description: "Test"
flow:
  - op: publish
    version: v-1
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "name is required",
		},
		{
			name: "missing_description",
			yaml: `
name: test
flow:
  - op: publish
    version: v-1
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "description is required",
		},
		{
			name: "missing_flow",
			yaml: `
name: test
description: "Test"
flow: []
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "flow list is required",
		},
		{
			name: "missing_assertions",
			yaml: `
name: test
description: "Test"
flow:
  - op: publish
    version: v-1
assertions: []
`,
			wantErr: "assertions list is required",
		},
		{
			name: "seed_missing_id",
			yaml: `
name: test
description: "Test"
documents:
  - name: Old Fashioned
    version:
      number: 1.0.0
      type: original
      status: draft
flow:
  - op: publish
    version: v-1
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "documents[0]: id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_StepValidation(t *testing.T) {
	tests := []struct {
		name     string
		stepYAML string
		wantErr  string
	}{
		{
			name: "missing_op",
			stepYAML: `
  - version: v-1
`,
			wantErr: "flow[0]: op is required",
		},
		{
			name: "unknown_op",
			stepYAML: `
  - op: demolish
    version: v-1
`,
			wantErr: `unknown op "demolish"`,
		},
		{
			name: "create_root_missing_document",
			stepYAML: `
  - op: create_root
`,
			wantErr: "document is required for create_root",
		},
		{
			name: "branch_missing_base",
			stepYAML: `
  - op: branch
    number: 1.1.0
`,
			wantErr: "base is required for branch",
		},
		{
			name: "branch_number_and_increment",
			stepYAML: `
  - op: branch
    base: v-1
    number: 1.1.0
    increment: minor
`,
			wantErr: "number and increment are mutually exclusive",
		},
		{
			name: "branch_bad_increment",
			stepYAML: `
  - op: branch
    base: v-1
    increment: huge
`,
			wantErr: `unknown increment "huge"`,
		},
		{
			name: "publish_missing_version",
			stepYAML: `
  - op: publish
`,
			wantErr: "version is required for publish",
		},
		{
			name: "modify_missing_changes",
			stepYAML: `
  - op: modify
    version: v-1
`,
			wantErr: "changes list is required for modify",
		},
		{
			name: "merge_missing_merged",
			stepYAML: `
  - op: merge
    survivor: v-1
`,
			wantErr: "survivor and merged are required for merge",
		},
		{
			name: "compare_missing_b",
			stepYAML: `
  - op: compare
    a: v-1
`,
			wantErr: "a and b are required for compare",
		},
		{
			name: "as_on_publish",
			stepYAML: `
  - op: publish
    version: v-1
    as: bound
`,
			wantErr: "as is only valid on create_root and branch",
		},
		{
			name: "expect_missing_error",
			stepYAML: `
  - op: publish
    version: v-1
    expect: {}
`,
			wantErr: "flow[0].expect: error is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `
name: test
description: "Test"
flow:
` + tt.stepYAML + `
assertions:
  - type: final_status
    version: v-1
    status: published
`
			_, err := LoadScenario(writeScenario(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_AssertionValidation(t *testing.T) {
	tests := []struct {
		name          string
		assertionYAML string
		wantErr       string
	}{
		{
			name: "ledger_contains_valid",
			assertionYAML: `
  - type: ledger_contains
    family: Old Fashioned
    action: branched
`,
			wantErr: "",
		},
		{
			name: "ledger_contains_missing_action",
			assertionYAML: `
  - type: ledger_contains
    family: Old Fashioned
`,
			wantErr: "family and action are required for ledger_contains",
		},
		{
			name: "ledger_order_missing_actions",
			assertionYAML: `
  - type: ledger_order
    family: Old Fashioned
`,
			wantErr: "actions list is required for ledger_order",
		},
		{
			name: "ledger_count_zero_allowed",
			assertionYAML: `
  - type: ledger_count
    family: Old Fashioned
    action: merged
    count: 0
`,
			wantErr: "",
		},
		{
			name: "ledger_count_negative",
			assertionYAML: `
  - type: ledger_count
    family: Old Fashioned
    action: merged
    count: -1
`,
			wantErr: "count must be non-negative",
		},
		{
			name: "final_status_missing_status",
			assertionYAML: `
  - type: final_status
    version: v-1
`,
			wantErr: "version and status are required for final_status",
		},
		{
			name: "main_version_missing_family",
			assertionYAML: `
  - type: main_version
    version: v-1
`,
			wantErr: "family and version are required for main_version",
		},
		{
			name: "unknown_type",
			assertionYAML: `
  - type: ledger_holds
    family: Old Fashioned
`,
			wantErr: "unknown assertion type",
		},
		{
			name: "missing_type",
			assertionYAML: `
  - family: Old Fashioned
`,
			wantErr: "type is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `
name: test
description: "Test"
flow:
  - op: publish
    version: v-1
assertions:
` + tt.assertionYAML
			_, err := LoadScenario(writeScenario(t, content))
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "typo_assertion_singular",
			yaml: `
name: test
description: "Test typo"
flow:
  - op: publish
    version: v-1
assertion:
  - type: final_status
    version: v-1
    status: published
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "field assertion not found",
		},
		{
			name: "typo_in_flow_step",
			yaml: `
name: test
description: "Test typo"
flow:
  - op: publish
    versoin: v-1
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "field versoin not found",
		},
		{
			name: "typo_in_seed_document",
			yaml: `
name: test
description: "Test typo"
documents:
  - id: v-1
    name: Old Fashioned
    glas: Rocks
    version:
      number: 1.0.0
      type: original
      status: draft
flow:
  - op: publish
    version: v-1
assertions:
  - type: final_status
    version: v-1
    status: published
`,
			wantErr: "field glas not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOperationConstants(t *testing.T) {
	assert.Equal(t, "create_root", OpCreateRoot)
	assert.Equal(t, "branch", OpBranch)
	assert.Equal(t, "publish", OpPublish)
	assert.Equal(t, "archive", OpArchive)
	assert.Equal(t, "restore", OpRestore)
	assert.Equal(t, "merge", OpMerge)
	assert.Equal(t, "promote", OpPromote)
	assert.Equal(t, "modify", OpModify)
	assert.Equal(t, "compare", OpCompare)
}

func TestAssertionConstants(t *testing.T) {
	assert.Equal(t, "ledger_contains", AssertLedgerContains)
	assert.Equal(t, "ledger_order", AssertLedgerOrder)
	assert.Equal(t, "ledger_count", AssertLedgerCount)
	assert.Equal(t, "final_status", AssertFinalStatus)
	assert.Equal(t, "main_version", AssertMainVersion)
}

// TestLoadExampleScenarios validates the scenario files in
// testdata/scenarios, which double as format documentation.
func TestLoadExampleScenarios(t *testing.T) {
	tests := []struct {
		name           string
		scenarioFile   string
		wantDocuments  int
		wantFlowCount  int
		wantAssertions int
	}{
		{
			name:           "draft_to_published",
			scenarioFile:   "testdata/scenarios/draft_to_published.yaml",
			wantDocuments:  0,
			wantFlowCount:  2,
			wantAssertions: 3,
		},
		{
			name:           "merge_transfers_main",
			scenarioFile:   "testdata/scenarios/merge_transfers_main.yaml",
			wantDocuments:  2,
			wantFlowCount:  1,
			wantAssertions: 4,
		},
		{
			name:           "branch_rejects_duplicate",
			scenarioFile:   "testdata/scenarios/branch_rejects_duplicate.yaml",
			wantDocuments:  2,
			wantFlowCount:  1,
			wantAssertions: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario, err := LoadScenario(tt.scenarioFile)
			require.NoError(t, err)

			assert.Equal(t, tt.name, scenario.Name)
			assert.Len(t, scenario.Documents, tt.wantDocuments)
			assert.Len(t, scenario.Flow, tt.wantFlowCount)
			assert.Len(t, scenario.Assertions, tt.wantAssertions)
		})
	}
}
