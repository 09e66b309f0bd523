package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/engine"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/identity"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/schema"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
)

// HistoryFile is the ledger snapshot kept alongside the recipe files.
const HistoryFile = "history.yaml"

var errNoRecipeFiles = errors.New("no recipe files found")

// Library is the CLI's per-invocation working set: a directory of
// recipe YAML files (one version per file) plus a history snapshot,
// loaded into memory up front and written back after mutations.
type Library struct {
	Dir    string
	Docs   *store.MemoryDocumentStore
	Ledger *ledger.Ledger

	// files maps version ids to the basename they were loaded from, so
	// edits rewrite the same file.
	files map[string]string
}

// InvalidDocumentError reports schema violations in a recipe file. It
// blocks every command except validate, which renders the full issue
// list instead.
type InvalidDocumentError struct {
	File   string
	Issues []schema.Issue
}

func (e *InvalidDocumentError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Issues[0])
	}
	return fmt.Sprintf("%s: %s (and %d more issue(s))", e.File, e.Issues[0], len(e.Issues)-1)
}

// OpenLibrary loads every recipe file in dir plus the history
// snapshot. Files must pass schema validation; the first invalid file
// aborts the load.
func OpenLibrary(ctx context.Context, dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library: %w", &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	lib := &Library{
		Dir:    dir,
		Docs:   store.NewMemoryDocumentStore(),
		Ledger: ledger.New(),
		files:  make(map[string]string),
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == HistoryFile || !isRecipeFile(name) {
			continue
		}
		doc, err := ReadDocumentFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, ok := lib.files[doc.ID]; ok {
			return nil, fmt.Errorf("library %s: %s and %s share id %s", dir, prev, name, doc.ID)
		}
		if err := lib.Docs.Put(ctx, doc); err != nil {
			return nil, fmt.Errorf("library %s: load %s: %w", dir, name, err)
		}
		lib.files[doc.ID] = name
	}

	if err := lib.loadHistory(); err != nil {
		return nil, err
	}
	return lib, nil
}

// ReadDocumentFile loads one recipe YAML file, schema-validating the
// raw bytes before unmarshalling.
func ReadDocumentFile(path string) (*recipe.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	name := filepath.Base(path)
	if issues := schema.ValidateBytes(name, data); len(issues) > 0 {
		return nil, &InvalidDocumentError{File: name, Issues: issues}
	}
	var doc recipe.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &doc, nil
}

func isRecipeFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func (l *Library) loadHistory() error {
	data, err := os.ReadFile(filepath.Join(l.Dir, HistoryFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	var snapshot map[string][]ledger.Entry
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("parse %s: %w", HistoryFile, err)
	}
	l.Ledger = ledger.Load(snapshot)
	return nil
}

// Resolve turns a command argument into a document: a path to an
// existing file wins, otherwise the argument is treated as a version
// id in the library.
func (l *Library) Resolve(ctx context.Context, arg string) (*recipe.Document, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return ReadDocumentFile(arg)
	}
	return l.Docs.Get(ctx, arg)
}

// NewEngine builds an engine over the library's working set. The
// author recorded on ledger entries comes from BIRCH_AUTHOR when set.
func (l *Library) NewEngine(opts *RootOptions) *engine.Engine {
	source := identity.SystemSource{Author: os.Getenv("BIRCH_AUTHOR")}
	return engine.New(l.Docs, l.Ledger, source, identity.UUIDv7Generator{}, engine.WithWeights(opts.weights()))
}

// SaveDocument writes doc back to its file, or to a new slug-named
// file for a version created this invocation.
func (l *Library) SaveDocument(doc *recipe.Document) error {
	name, ok := l.files[doc.ID]
	if !ok {
		name = documentFileName(doc)
		l.files[doc.ID] = name
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc.ID, err)
	}
	path := filepath.Join(l.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write recipe: %w", err)
	}
	return nil
}

// SaveFamily writes every version of a family plus the history
// snapshot. Mutating commands route through here so multi-version
// operations (merge, promote) never leave a member stale on disk.
func (l *Library) SaveFamily(ctx context.Context, familyKey string) error {
	docs, err := l.Docs.ListVersions(ctx, familyKey)
	if err != nil {
		return fmt.Errorf("save family %s: %w", familyKey, err)
	}
	for _, doc := range docs {
		if err := l.SaveDocument(doc); err != nil {
			return err
		}
	}
	return l.SaveHistory()
}

// SaveHistory writes the ledger snapshot to history.yaml.
func (l *Library) SaveHistory() error {
	data, err := yaml.Marshal(l.Ledger.Snapshot())
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	path := filepath.Join(l.Dir, HistoryFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// documentFileName derives a stable file name for a freshly created
// version, e.g. "old-fashioned-1.1.0.yaml".
func documentFileName(doc *recipe.Document) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, doc.Name)
	slug = strings.Trim(slug, "-")
	return fmt.Sprintf("%s-%s.yaml", slug, doc.Version.Number)
}
