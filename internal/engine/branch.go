package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// BranchOptions selects which parts of the base document a branch
// copies. The zero value copies nothing; FullCopy copies everything.
// The recipe name is always carried over: a branch stays in its
// family.
type BranchOptions struct {
	CopyIngredients  bool `json:"copy_ingredients" yaml:"copy_ingredients"`
	CopyInstructions bool `json:"copy_instructions" yaml:"copy_instructions"`
	CopyMetadata     bool `json:"copy_metadata" yaml:"copy_metadata"`
}

// FullCopy copies ingredients, instructions, and metadata from the
// base document.
var FullCopy = BranchOptions{CopyIngredients: true, CopyInstructions: true, CopyMetadata: true}

// CreateRoot creates a family's first version from the given document.
//
// The version number defaults to 1.0.0 and the type to original; the
// status is forced to draft, the parent cleared, and the main flag set,
// since the sole version of a family is its main version. An id is
// minted when the document has none. Appends a created entry.
func (e *Engine) CreateRoot(ctx context.Context, doc *recipe.Document) (*recipe.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("create root: nil document")
	}
	doc = doc.Clone()

	if recipe.Key(doc.Name) == "" {
		return nil, recipe.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if doc.Version.Number == "" {
		doc.Version.Number = "1.0.0"
	}
	number, err := semver.Parse(doc.Version.Number)
	if err != nil {
		return nil, fmt.Errorf("create root %q: %w", doc.Name, err)
	}
	if doc.Version.Type == "" {
		doc.Version.Type = recipe.TypeOriginal
	}

	family := doc.FamilyKey()
	existing, err := e.docs.ListVersions(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("create root %q: list family: %w", doc.Name, err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("create root %q: family already has %d version(s), branch from one instead", doc.Name, len(existing))
	}

	if doc.ID == "" {
		doc.ID = e.ids.NewID()
	}
	doc.Version.Number = number.String()
	doc.Version.Status = recipe.StatusDraft
	doc.Version.IsMain = true
	doc.Version.ParentID = ""
	doc.Version.CreatedAt = e.source.Now()
	doc.Version.AuthorID = e.source.AuthorID()

	if errs := doc.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("create root %q: %w", doc.Name, joinValidation(errs))
	}

	if err := e.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("create root %q: %w", doc.Name, err)
	}

	entry := e.newEntry(doc.ID, ledger.ActionCreated)
	if err := e.ledger.Append(family, entry); err != nil {
		return nil, err
	}

	slog.Info("root version created",
		"version_id", doc.ID,
		"family", family,
		"number", doc.Version.Number,
	)
	return doc, nil
}

// CreateVersion branches a new version from an existing one.
//
// The caller supplies the version metadata; the number must parse and
// be unused within the family. An empty type defaults to variation.
// The new version always starts as a non-main draft with ParentID set
// to the base. Appends a branched entry linking back to the base.
func (e *Engine) CreateVersion(ctx context.Context, baseID string, meta recipe.VersionMeta, opts BranchOptions) (*recipe.Document, error) {
	base, err := e.docs.Get(ctx, baseID)
	if err != nil {
		return nil, fmt.Errorf("branch: %w", err)
	}

	number, err := semver.Parse(meta.Number)
	if err != nil {
		return nil, fmt.Errorf("branch from %s: %w", baseID, err)
	}
	if meta.Type == "" {
		meta.Type = recipe.TypeVariation
	}

	family := base.FamilyKey()
	siblings, err := e.docs.ListVersions(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("branch from %s: list family: %w", baseID, err)
	}
	for _, sib := range siblings {
		sv, err := semver.Parse(sib.Version.Number)
		if err == nil && sv.Compare(number) == 0 {
			return nil, &DuplicateNumberError{Family: family, Number: number.String()}
		}
	}

	next := &recipe.Document{
		ID:   e.ids.NewID(),
		Name: base.Name,
	}
	if opts.CopyIngredients {
		next.Ingredients = slices.Clone(base.Ingredients)
	}
	if opts.CopyInstructions {
		next.Instructions = base.Instructions
		next.Steps = slices.Clone(base.Steps)
	}
	if opts.CopyMetadata {
		next.Category = base.Category
		next.Glassware = base.Glassware
		next.Garnish = base.Garnish
		next.PrepTime = base.PrepTime
		next.Difficulty = base.Difficulty
		next.Yields = base.Yields
		next.Tags = slices.Clone(base.Tags)
		next.FlavorProfile = slices.Clone(base.FlavorProfile)
	}

	meta.Number = number.String()
	meta.Status = recipe.StatusDraft
	meta.IsMain = false
	meta.ParentID = baseID
	meta.CreatedAt = e.source.Now()
	meta.AuthorID = e.source.AuthorID()
	next.Version = meta

	if errs := next.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("branch from %s: %w", baseID, joinValidation(errs))
	}

	if err := e.docs.Put(ctx, next); err != nil {
		return nil, fmt.Errorf("branch from %s: %w", baseID, err)
	}

	entry := e.newEntry(next.ID, ledger.ActionBranched)
	entry.PreviousVersionID = baseID
	entry.Changes = []string{fmt.Sprintf("Branched from version %s", base.Version.Number)}
	if meta.BranchReason != "" {
		entry.Changes = append(entry.Changes, meta.BranchReason)
	}
	if err := e.ledger.Append(family, entry); err != nil {
		return nil, err
	}

	slog.Info("version branched",
		"version_id", next.ID,
		"parent_id", baseID,
		"family", family,
		"number", meta.Number,
		"type", meta.Type,
	)
	return next, nil
}
