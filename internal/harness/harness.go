package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/engine"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/testutil"
)

// DefaultAuthor is the author id stamped on every operation the harness
// runs.
const DefaultAuthor = "harness"

// Harness executes one scenario against a fresh engine.
type Harness struct {
	docs   *store.MemoryDocumentStore
	ledger *ledger.Ledger
	engine *engine.Engine

	// refs maps "as" names to the ids minted for them.
	refs map[string]string
	seq  int64
}

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh in-memory store and ledger, a
// deterministic clock starting at testutil.Epoch, and a sequential id
// generator, so reruns produce byte-identical traces. Seeded documents
// are written directly to the store and appear in neither the ledger
// nor the trace.
//
// Flow steps run through the real engine. A step without an expect
// clause must succeed; a step with one must fail with the named code.
// Any other outcome records an error, marks the result failed, and
// halts the flow; assertions still run against whatever state the flow
// reached. The returned error is reserved for malformed scenarios, such
// as an invalid seed document or a reference no step bound.
func Run(scenario *Scenario) (*Result, error) {
	docs := store.NewMemoryDocumentStore()
	led := ledger.New()
	clock := testutil.NewClock(time.Time{}, 0)
	ids := testutil.NewSequenceIDGenerator("")
	eng := engine.New(docs, led, testutil.NewSource(DefaultAuthor, clock), ids)

	h := &Harness{
		docs:   docs,
		ledger: led,
		engine: eng,
		refs:   make(map[string]string),
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.seedDocuments(ctx, scenario.Documents); err != nil {
		return nil, err
	}
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, err
	}

	actx := &AssertionContext{
		Ctx:    ctx,
		Docs:   docs,
		Ledger: led,
		Refs:   h.refs,
	}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// seedDocuments validates and stores the scenario's seed documents.
func (h *Harness) seedDocuments(ctx context.Context, docs []*recipe.Document) error {
	for _, doc := range docs {
		if errs := doc.Validate(); len(errs) > 0 {
			return fmt.Errorf("seed document %q: %v", doc.ID, errs[0])
		}
		if err := h.docs.Put(ctx, doc); err != nil {
			return fmt.Errorf("seed document %q: %w", doc.ID, err)
		}
	}
	return nil
}

// executeFlow runs the flow steps in order, recording each operation
// and its outcome in the trace and checking expect clauses. Returns an
// error only for scenario defects; engine failures land in the result.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		resolved, err := h.resolveStep(step)
		if err != nil {
			return fmt.Errorf("flow[%d] %s: %w", i, step.Op, err)
		}

		result.AddOperation(resolved.Op, stepParams(&resolved), h.nextSeq())

		payload, opErr := h.apply(ctx, &resolved)
		if opErr != nil {
			code := failureCode(opErr)
			result.AddOutcome(code, nil, h.nextSeq())
			if resolved.Expect == nil {
				result.AddError(fmt.Sprintf("flow[%d] %s: unexpected failure %s: %v", i, resolved.Op, code, opErr))
				return nil
			}
			if resolved.Expect.Error != code {
				result.AddError(fmt.Sprintf("flow[%d] %s: expected failure %s, got %s: %v", i, resolved.Op, resolved.Expect.Error, code, opErr))
				return nil
			}
			continue
		}

		result.AddOutcome(StatusOK, payload, h.nextSeq())
		if resolved.Expect != nil {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected failure %s, but the operation succeeded", i, resolved.Op, resolved.Expect.Error))
			return nil
		}
	}
	return nil
}

// apply dispatches one resolved step to the engine and builds its
// outcome payload.
func (h *Harness) apply(ctx context.Context, step *FlowStep) (map[string]any, error) {
	switch step.Op {
	case OpCreateRoot:
		return h.applyCreateRoot(ctx, step)
	case OpBranch:
		return h.applyBranch(ctx, step)
	case OpPublish:
		if step.Description != "" {
			if err := h.setChangeDescription(ctx, step.Version, step.Description); err != nil {
				return nil, err
			}
		}
		doc, err := h.engine.Publish(ctx, step.Version)
		if err != nil {
			return nil, err
		}
		return map[string]any{"version": doc.ID, "status": string(doc.Version.Status)}, nil
	case OpArchive:
		doc, err := h.engine.Archive(ctx, step.Version)
		if err != nil {
			return nil, err
		}
		return map[string]any{"version": doc.ID, "status": string(doc.Version.Status)}, nil
	case OpRestore:
		doc, err := h.engine.Restore(ctx, step.Version)
		if err != nil {
			return nil, err
		}
		return map[string]any{"version": doc.ID, "status": string(doc.Version.Status)}, nil
	case OpPromote:
		doc, err := h.engine.SetMain(ctx, step.Version)
		if err != nil {
			return nil, err
		}
		return map[string]any{"version": doc.ID, "main": true}, nil
	case OpMerge:
		survivor, err := h.engine.Merge(ctx, step.Survivor, step.Merged)
		if err != nil {
			return nil, err
		}
		return map[string]any{"survivor": survivor.ID, "merged": step.Merged}, nil
	case OpModify:
		if err := h.engine.RecordModification(ctx, step.Version, step.Changes); err != nil {
			return nil, err
		}
		return map[string]any{"version": step.Version, "changes": len(step.Changes)}, nil
	case OpCompare:
		res, err := h.engine.Compare(ctx, step.A, step.B)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"overall":     res.Similarity.Overall,
			"recommended": string(res.Recommended),
		}, nil
	}
	return nil, fmt.Errorf("unknown op %q", step.Op)
}

func (h *Harness) applyCreateRoot(ctx context.Context, step *FlowStep) (map[string]any, error) {
	doc, err := h.engine.CreateRoot(ctx, step.Document)
	if err != nil {
		return nil, err
	}
	h.bind(step.As, doc.ID)
	return map[string]any{"version": doc.ID, "number": doc.Version.Number}, nil
}

func (h *Harness) applyBranch(ctx context.Context, step *FlowStep) (map[string]any, error) {
	number := step.Number
	if number == "" {
		base, err := h.docs.Get(ctx, step.Base)
		if err != nil {
			return nil, fmt.Errorf("branch: %w", err)
		}
		number, err = semver.Next(base.Version.Number, effectiveIncrement(step))
		if err != nil {
			return nil, err
		}
	}

	meta := recipe.VersionMeta{
		Number:       number,
		Name:         step.Label,
		Type:         recipe.VersionType(step.Type),
		BranchReason: step.Reason,
	}

	opts := engine.FullCopy
	if step.Copy != nil {
		opts = engine.BranchOptions{
			CopyIngredients:  step.Copy.Ingredients,
			CopyInstructions: step.Copy.Instructions,
			CopyMetadata:     step.Copy.Metadata,
		}
	}

	doc, err := h.engine.CreateVersion(ctx, step.Base, meta, opts)
	if err != nil {
		return nil, err
	}
	h.bind(step.As, doc.ID)
	return map[string]any{"version": doc.ID, "number": doc.Version.Number}, nil
}

// setChangeDescription writes the publish description onto the stored
// draft so Publish finds it, mirroring how an editor fills the field
// before publishing.
func (h *Harness) setChangeDescription(ctx context.Context, versionID, description string) error {
	doc, err := h.docs.Get(ctx, versionID)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	doc.Version.ChangeDescription = description
	if err := h.docs.Put(ctx, doc); err != nil {
		return fmt.Errorf("publish %s: %w", versionID, err)
	}
	return nil
}

// resolveStep returns a copy of the step with every $reference replaced
// by its bound id.
func (h *Harness) resolveStep(step FlowStep) (FlowStep, error) {
	fields := []*string{&step.Base, &step.Version, &step.Survivor, &step.Merged, &step.A, &step.B}
	for _, f := range fields {
		resolved, err := h.resolve(*f)
		if err != nil {
			return step, err
		}
		*f = resolved
	}
	return step, nil
}

// resolve maps "$name" to the id bound for name. Anything else passes
// through as a literal id.
func (h *Harness) resolve(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "$")
	if !ok {
		return s, nil
	}
	id, bound := h.refs[name]
	if !bound {
		return "", fmt.Errorf("unbound reference $%s", name)
	}
	return id, nil
}

func (h *Harness) bind(name, id string) {
	if name != "" {
		h.refs[name] = id
	}
}

func (h *Harness) nextSeq() int64 {
	h.seq++
	return h.seq
}

// stepParams builds the trace parameters for an operation event from a
// resolved step.
func stepParams(step *FlowStep) map[string]any {
	params := make(map[string]any)
	switch step.Op {
	case OpCreateRoot:
		params["name"] = step.Document.Name
		if step.Document.Version.Number != "" {
			params["number"] = step.Document.Version.Number
		}
	case OpBranch:
		params["base"] = step.Base
		if step.Number != "" {
			params["number"] = step.Number
		} else {
			params["increment"] = string(effectiveIncrement(step))
		}
	case OpPublish:
		params["version"] = step.Version
		if step.Description != "" {
			params["description"] = step.Description
		}
	case OpArchive, OpRestore, OpPromote:
		params["version"] = step.Version
	case OpModify:
		params["version"] = step.Version
		params["changes"] = step.Changes
	case OpMerge:
		params["survivor"] = step.Survivor
		params["merged"] = step.Merged
	case OpCompare:
		params["a"] = step.A
		params["b"] = step.B
	}
	return params
}

// effectiveIncrement returns the increment a branch step uses when no
// explicit number is given. Validation guarantees the field parses.
func effectiveIncrement(step *FlowStep) semver.Increment {
	if step.Increment == "" {
		return semver.Minor
	}
	inc, err := semver.ParseIncrement(step.Increment)
	if err != nil {
		return semver.Minor
	}
	return inc
}

// failureCode maps an engine error to the code scenario expect clauses
// name. The codes mirror the CLI's error codes, so scenario authors and
// CLI users see one taxonomy.
func failureCode(err error) string {
	var verr recipe.ValidationError
	switch {
	case errors.Is(err, recipe.ErrVersionNotFound):
		return "version_not_found"
	case errors.Is(err, recipe.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, recipe.ErrDuplicateVersionNumber):
		return "duplicate_version_number"
	case errors.Is(err, recipe.ErrAtomicityViolation):
		return "atomic_update_failed"
	case errors.Is(err, semver.ErrInvalidFormat):
		return "invalid_version_format"
	case errors.As(err, &verr):
		return "validation_failed"
	}
	return "error"
}
