// Package schema validates recipe documents against an embedded CUE
// schema. It gates file-sourced documents (library YAML) before any
// engine operation touches them; in-process invariants stay with the
// recipe and engine packages.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

//go:embed document.cue
var documentCUE string

// Issue is one schema violation, located by its dotted field path.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Validate checks a parsed document against the schema. Returns all
// violations found (does not fail-fast); nil means the document
// conforms.
func Validate(doc *recipe.Document) []Issue {
	if doc == nil {
		return []Issue{{Message: "document is nil"}}
	}

	ctx := cuecontext.New()
	def := mustSchema(ctx)

	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return issuesFrom(err)
	}
	if err := def.Unify(v).Validate(cue.Concrete(false)); err != nil {
		return issuesFrom(err)
	}
	return nil
}

// ValidateBytes checks raw YAML against the schema before it is parsed
// into a document. Unlike Validate it also catches unknown fields
// (typos) and missing required fields, since nothing has been through
// Go's lossy unmarshalling yet. filename is used in positions only.
func ValidateBytes(filename string, data []byte) []Issue {
	ctx := cuecontext.New()
	def := mustSchema(ctx)

	f, err := cueyaml.Extract(filename, data)
	if err != nil {
		return issuesFrom(err)
	}
	v := ctx.BuildFile(f)
	if err := v.Err(); err != nil {
		return issuesFrom(err)
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return issuesFrom(err)
	}
	return nil
}

// mustSchema compiles the embedded schema. The schema ships with the
// binary; failing to compile it is a build defect, not a runtime
// condition.
func mustSchema(ctx *cue.Context) cue.Value {
	v := ctx.CompileString(documentCUE, cue.Filename("document.cue"))
	def := v.LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		panic(fmt.Sprintf("schema: embedded document.cue: %v", err))
	}
	return def
}

// issuesFrom flattens a CUE error list into issues.
func issuesFrom(err error) []Issue {
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(issues) == 0 && err != nil {
		issues = append(issues, Issue{Message: err.Error()})
	}
	return issues
}
