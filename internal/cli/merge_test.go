package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// twoPublishedVersions seeds a family where both versions are
// published and mainID holds the main flag.
func twoPublishedVersions(t *testing.T, mainID string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "old-fashioned-1.0.0.yaml", seedDoc("v-1", "1.0.0", "original", "published", mainID == "v-1", "Initial recipe"))
	writeFile(t, dir, "old-fashioned-1.1.0.yaml", seedDoc("v-2", "1.1.0", "variation", "published", mainID == "v-2", "Switched to rye"))
	return dir
}

func TestMergeArchivesMergedVersion(t *testing.T) {
	dir := twoPublishedVersions(t, "v-1")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: dir}
	cmd := NewMergeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1", "v-2"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "✓ merged v-2 into Old Fashioned 1.0.0\n", buf.String())

	lib := openLib(t, dir)
	ctx := context.Background()

	survivor, err := lib.Docs.Get(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusPublished, survivor.Version.Status)
	assert.True(t, survivor.Version.IsMain)

	merged, err := lib.Docs.Get(ctx, "v-2")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusArchived, merged.Version.Status)
	assert.False(t, merged.Version.IsMain)

	entries := lib.Ledger.History("old fashioned")
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.ActionMerged, entries[0].Action)
	assert.Equal(t, "v-1", entries[0].VersionID)
	assert.Equal(t, map[string]string{"merged_version_id": "v-2"}, entries[0].Metadata)
	assert.Equal(t, []string{"Merged version 1.1.0"}, entries[0].Changes)
	assert.Equal(t, ledger.ActionArchived, entries[1].Action)
	assert.Equal(t, "v-2", entries[1].VersionID)
	assert.Equal(t, map[string]string{"merged_into": "v-1"}, entries[1].Metadata)
}

func TestMergeTransfersMainFlag(t *testing.T) {
	dir := twoPublishedVersions(t, "v-2")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: dir}
	cmd := NewMergeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1", "v-2"})
	require.NoError(t, cmd.Execute())

	lib := openLib(t, dir)
	ctx := context.Background()

	survivor, err := lib.Docs.Get(ctx, "v-1")
	require.NoError(t, err)
	assert.True(t, survivor.Version.IsMain, "main flag follows the survivor")

	merged, err := lib.Docs.Get(ctx, "v-2")
	require.NoError(t, err)
	assert.False(t, merged.Version.IsMain)
}

func TestMergeRejectsDraftMerged(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: seedLibrary(t)}
	cmd := NewMergeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1", "v-2"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [invalid_transition]")
}

func TestMergeUnknownVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: seedLibrary(t)}
	cmd := NewMergeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1", "v-nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}
