package loader

import (
	"context"
	"fmt"
	"log/slog"

	"specview/internal/spec"
	"specview/internal/xmldoc"

	"github.com/viant/afs"
)

const tagFunctions = "functions"

// Result is the outcome of one load. Each load owns its calls and statistics.
type Result struct {
	Source string       `yaml:"source,omitempty"`
	Found  bool         `yaml:"found"`
	Digest uint64       `yaml:"digest"`
	Calls  []*spec.Call `yaml:"calls"`
	Stats  spec.Stats   `yaml:"stats"`
	// ParseError is set when the document was present but not well-formed.
	ParseError error `yaml:"-"`
}

// Call returns the first call with the given name, or nil.
func (r *Result) Call(name string) *spec.Call {
	if r == nil {
		return nil
	}
	for _, call := range r.Calls {
		if call.Name == name {
			return call
		}
	}
	return nil
}

// LoadString builds the call list of a raw document. It never fails:
// malformed input yields an empty result with ParseError set.
func LoadString(raw string) *Result {
	result := &Result{
		Found:  true,
		Digest: spec.Digest([]byte(raw)),
		Calls:  []*spec.Call{},
	}

	root, err := xmldoc.ParseString(Normalize(raw))
	if err != nil {
		result.ParseError = err
		return result
	}
	for _, el := range root.Child(tagFunctions).Children() {
		result.Calls = append(result.Calls, spec.NewCall(el, &result.Stats))
	}
	return result
}

// Loader reads specification documents through an abstract file system, so
// sources can be local paths or any URL scheme afs supports.
type Loader struct {
	fs afs.Service
}

// New creates a loader backed by the default afs service.
func New() *Loader {
	return NewWithService(afs.New())
}

// NewWithService creates a loader over the given afs service.
func NewWithService(fs afs.Service) *Loader {
	return &Loader{fs: fs}
}

// Load reads and builds the document at URL. A missing or unreachable
// document is not an error: it yields an empty result.
func (l *Loader) Load(ctx context.Context, URL string) (*Result, error) {
	exists, err := l.fs.Exists(ctx, URL)
	if err != nil {
		slog.Warn("load.unavailable", "source", URL, "err", err)
		return &Result{Source: URL, Calls: []*spec.Call{}}, nil
	}
	if !exists {
		slog.Debug("load.not_found", "source", URL)
		return &Result{Source: URL, Calls: []*spec.Call{}}, nil
	}

	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}

	result := LoadString(string(data))
	result.Source = URL
	if result.ParseError != nil {
		slog.Warn("load.malformed", "source", URL, "err", result.ParseError)
	}
	slog.Debug("load.done", "source", URL, "calls", len(result.Calls),
		"max_args", result.Stats.MaxArgumentCount,
		"max_ops", result.Stats.MaxOperationCount,
		"max_analyses", result.Stats.MaxAnalysisCount)
	return result, nil
}
