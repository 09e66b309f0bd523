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

func TestPublishWithDescription(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old-fashioned-1.0.0.yaml", seedDoc("v-1", "1.0.0", "original", "draft", true, ""))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: dir}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1", "--description", "Tuned the dilution"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "✓ published Old Fashioned 1.0.0\n", buf.String())

	lib := openLib(t, dir)
	doc, err := lib.Docs.Get(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusPublished, doc.Version.Status)
	assert.Equal(t, "Tuned the dilution", doc.Version.ChangeDescription)

	entries := lib.Ledger.History("old fashioned")
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.ActionPublished, entries[0].Action)
	assert.Equal(t, []string{"Tuned the dilution"}, entries[0].Changes)
}

func TestPublishSeededDescription(t *testing.T) {
	dir := seedLibrary(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: dir}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-2"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "✓ published Old Fashioned 1.1.0\n", buf.String())

	lib := openLib(t, dir)
	doc, err := lib.Docs.Get(context.Background(), "v-2")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusPublished, doc.Version.Status)

	entries := lib.Ledger.History("old fashioned")
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Switched to rye"}, entries[0].Changes)
}

func TestPublishRequiresDescription(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old-fashioned-1.0.0.yaml", seedDoc("v-1", "1.0.0", "original", "draft", true, ""))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: dir}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [validation_failed]")
	assert.Contains(t, buf.String(), "version.change_description")

	// Nothing was written back.
	doc, err := openLib(t, dir).Docs.Get(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, recipe.StatusDraft, doc.Version.Status)
}

func TestPublishRejectsPublished(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: seedLibrary(t)}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeTransition)
	assert.Contains(t, buf.String(), "does not transition")
}

func TestPublishUnknownID(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Library: seedLibrary(t)}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"v-nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
