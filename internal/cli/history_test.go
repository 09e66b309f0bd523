package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
)

func historyOutput(t *testing.T, dir, format, arg string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format, Library: dir}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{arg})
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestHistoryNewestFirst(t *testing.T) {
	dir := seedLibrary(t)
	writeFile(t, dir, HistoryFile, seedHistory)

	out := historyOutput(t, dir, "text", "Old Fashioned")

	want := "2025-06-01T12:05:00Z  published  v-1\n" +
		"    - Initial recipe\n" +
		"2025-06-01T12:00:00Z  created    v-1\n"
	assert.Equal(t, want, out)
}

func TestHistoryByVersionID(t *testing.T) {
	dir := seedLibrary(t)
	writeFile(t, dir, HistoryFile, seedHistory)

	// Any version id in the family resolves to the family's history.
	out := historyOutput(t, dir, "text", "v-2")
	assert.Contains(t, out, "published")
	assert.Contains(t, out, "created")
}

func TestHistoryShowsBranchOrigin(t *testing.T) {
	dir := seedLibrary(t)
	writeFile(t, dir, HistoryFile, `old fashioned:
  - id: e-3
    version_id: v-2
    action: branched
    timestamp: 2025-06-01T12:10:00Z
    previous_version_id: v-1
    changes:
      - Branched from version 1.0.0
`)

	out := historyOutput(t, dir, "text", "Old Fashioned")
	assert.Equal(t, "2025-06-01T12:10:00Z  branched   v-2  (from v-1)\n    - Branched from version 1.0.0\n", out)
}

func TestHistoryEmptyFamily(t *testing.T) {
	out := historyOutput(t, seedLibrary(t), "text", "Negroni")
	assert.Equal(t, "No history for \"Negroni\"\n", out)
}

func TestHistoryJSON(t *testing.T) {
	dir := seedLibrary(t)
	writeFile(t, dir, HistoryFile, seedHistory)

	out := historyOutput(t, dir, "json", "Old Fashioned")

	var resp struct {
		Status string         `json:"status"`
		Data   []ledger.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, ledger.ActionPublished, resp.Data[0].Action)
	assert.Equal(t, ledger.ActionCreated, resp.Data[1].Action)
}
