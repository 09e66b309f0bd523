package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/testutil"
)

func TestCreateRootDefaults(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	in := oldFashioned("")
	in.Version = recipe.VersionMeta{}
	root, err := eng.CreateRoot(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "id-0001", root.ID)
	assert.Equal(t, "1.0.0", root.Version.Number)
	assert.Equal(t, recipe.TypeOriginal, root.Version.Type)
	assert.Equal(t, recipe.StatusDraft, root.Version.Status)
	assert.True(t, root.Version.IsMain)
	assert.Empty(t, root.Version.ParentID)
	assert.Equal(t, testutil.Epoch, root.Version.CreatedAt)
	assert.Equal(t, "tester", root.Version.AuthorID)

	history := eng.History(root.FamilyKey())
	require.Len(t, history, 1)
	assert.Equal(t, ledger.ActionCreated, history[0].Action)
	assert.Equal(t, root.ID, history[0].VersionID)
}

func TestCreateRootKeepsProvidedIDAndCanonicalizesNumber(t *testing.T) {
	ctx := context.Background()
	eng, docs, _ := newTestEngine(t)

	in := oldFashioned("root-1")
	in.Version.Number = "2.1"
	root, err := eng.CreateRoot(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "root-1", root.ID)
	assert.Equal(t, "2.1.0", root.Version.Number)

	stored, err := docs.Get(ctx, "root-1")
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", stored.Version.Number)
}

func TestCreateRootRejectsMalformedNumber(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	in := oldFashioned("")
	in.Version.Number = "abc"
	_, err := eng.CreateRoot(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, semver.ErrInvalidFormat)
}

func TestCreateRootRejectsEmptyName(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.CreateRoot(context.Background(), &recipe.Document{Name: "   "})
	require.Error(t, err)
	var verr recipe.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestCreateRootRejectsExistingFamily(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	_, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	// Case-folded name collides with the existing family.
	second := oldFashioned("")
	second.Name = "OLD FASHIONED"
	_, err = eng.CreateRoot(ctx, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has")
}

func TestCreateVersionFullCopy(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	in := oldFashioned("")
	in.Instructions = "Stir with ice. Strain over a large cube."
	in.Category = "Classic"
	in.Tags = []string{"whiskey"}
	root, err := eng.CreateRoot(ctx, in)
	require.NoError(t, err)

	branch, err := eng.CreateVersion(ctx, root.ID, recipe.VersionMeta{Number: "1.1.0"}, FullCopy)
	require.NoError(t, err)

	assert.Equal(t, root.Name, branch.Name)
	assert.Equal(t, root.Ingredients, branch.Ingredients)
	assert.Equal(t, root.Instructions, branch.Instructions)
	assert.Equal(t, "Classic", branch.Category)
	assert.Equal(t, []string{"whiskey"}, branch.Tags)
}

func TestCreateVersionCopyNothing(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	in := oldFashioned("")
	in.Instructions = "Stir with ice."
	in.Category = "Classic"
	root, err := eng.CreateRoot(ctx, in)
	require.NoError(t, err)

	branch, err := eng.CreateVersion(ctx, root.ID, recipe.VersionMeta{Number: "1.1.0"}, BranchOptions{})
	require.NoError(t, err)

	assert.Equal(t, root.Name, branch.Name)
	assert.Empty(t, branch.Ingredients)
	assert.Empty(t, branch.Instructions)
	assert.Empty(t, branch.Category)
	assert.Empty(t, branch.Tags)
}

func TestCreateVersionForcesDraftNonMain(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	root, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	meta := recipe.VersionMeta{
		Number: "1.1.0",
		Status: recipe.StatusPublished,
		IsMain: true,
	}
	branch, err := eng.CreateVersion(ctx, root.ID, meta, FullCopy)
	require.NoError(t, err)

	assert.Equal(t, recipe.StatusDraft, branch.Version.Status)
	assert.False(t, branch.Version.IsMain)
	assert.Equal(t, root.ID, branch.Version.ParentID)
	assert.Equal(t, recipe.TypeVariation, branch.Version.Type)
}

func TestCreateVersionAppendsBranchedEntry(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	root, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	meta := recipe.VersionMeta{Number: "1.1.0", BranchReason: "Smoky take for winter"}
	branch, err := eng.CreateVersion(ctx, root.ID, meta, FullCopy)
	require.NoError(t, err)

	history := eng.History(root.FamilyKey())
	require.Len(t, history, 2)
	entry := history[1]
	assert.Equal(t, ledger.ActionBranched, entry.Action)
	assert.Equal(t, branch.ID, entry.VersionID)
	assert.Equal(t, root.ID, entry.PreviousVersionID)
	assert.Equal(t, []string{"Branched from version 1.0.0", "Smoky take for winter"}, entry.Changes)
}

func TestCreateVersionDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	root, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	_, err = eng.CreateVersion(ctx, root.ID, recipe.VersionMeta{Number: "1.0.0"}, FullCopy)
	require.Error(t, err)
	assert.ErrorIs(t, err, recipe.ErrDuplicateVersionNumber)

	// "1.0" is the same number as "1.0.0".
	_, err = eng.CreateVersion(ctx, root.ID, recipe.VersionMeta{Number: "1.0"}, FullCopy)
	require.Error(t, err)
	assert.ErrorIs(t, err, recipe.ErrDuplicateVersionNumber)
}

func TestCreateVersionMalformedNumber(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	root, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	_, err = eng.CreateVersion(ctx, root.ID, recipe.VersionMeta{Number: "one.two"}, FullCopy)
	require.Error(t, err)
	assert.ErrorIs(t, err, semver.ErrInvalidFormat)
}

func TestCreateVersionMissingBase(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.CreateVersion(context.Background(), "ghost", recipe.VersionMeta{Number: "1.1.0"}, FullCopy)
	require.Error(t, err)
	assert.ErrorIs(t, err, recipe.ErrVersionNotFound)
}

func TestCreateVersionChainsNextNumbers(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	root, err := eng.CreateRoot(ctx, oldFashioned(""))
	require.NoError(t, err)

	number := root.Version.Number
	current := root
	for _, want := range []string{"1.0.1", "1.0.2", "1.0.3"} {
		number, err = semver.Next(number, semver.Patch)
		require.NoError(t, err)
		assert.Equal(t, want, number)

		current, err = eng.CreateVersion(ctx, current.ID, recipe.VersionMeta{Number: number}, FullCopy)
		require.NoError(t, err)
		assert.Equal(t, want, current.Version.Number)
	}
}
