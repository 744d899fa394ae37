// Package schema is the validation gate in front of persistence: it
// compiles the site-config JSON Schema and turns violations into
// structured field errors.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed site-config.schema.json
var defaultSchema []byte

//go:embed samples/*.json
var sampleFS embed.FS

const resourceURL = "site-config.schema.json"

// FieldError is one schema violation: the JSON pointer of the failing
// instance location and the validator's message.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries the full structured list of violations for
// one document.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "document failed schema validation"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return "document failed schema validation: " + strings.Join(parts, "; ")
}

// DefaultSchema returns the schema document bundled with the binary.
func DefaultSchema() []byte {
	return defaultSchema
}

// EnsureFile writes the bundled schema to path if no file exists
// there yet, so a fresh deployment starts with a working gate while
// still allowing live edits to the file afterwards.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat schema %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create schema dir: %w", err)
	}
	if err := os.WriteFile(path, defaultSchema, 0o644); err != nil {
		return fmt.Errorf("write schema %s: %w", path, err)
	}
	return nil
}

// Samples returns the bundled example documents keyed by file name.
func Samples() (map[string][]byte, error) {
	entries, err := fs.ReadDir(sampleFS, "samples")
	if err != nil {
		return nil, err
	}
	samples := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		data, err := sampleFS.ReadFile("samples/" + entry.Name())
		if err != nil {
			return nil, err
		}
		samples[entry.Name()] = data
	}
	return samples, nil
}

// SampleNames returns the bundled sample file names in sorted order.
func SampleNames() ([]string, error) {
	samples, err := Samples()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Compile builds a validator from a raw schema document.
func Compile(data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// Check validates a decoded document against a compiled schema and
// converts violations into a *ValidationError.
func Check(compiled *jsonschema.Schema, doc any) error {
	err := compiled.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		fields := make([]FieldError, 0, 4)
		flatten(ve, &fields)
		return &ValidationError{Fields: fields}
	}
	return err
}

// flatten walks to the leaf causes; intermediate nodes only repeat
// that a subschema failed.
func flatten(ve *jsonschema.ValidationError, out *[]FieldError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, FieldError{
			Path:    ve.InstanceLocation,
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		flatten(cause, out)
	}
}

// Gate validates documents against the schema file at a fixed path.
// The file is consulted on every call so edits take effect without a
// restart, but the compiled validator is cached keyed by the file's
// modification time and only recompiled on change.
type Gate struct {
	path string

	mu       sync.Mutex
	modTime  time.Time
	size     int64
	compiled *jsonschema.Schema
}

func NewGate(path string) *Gate {
	return &Gate{path: path}
}

// Validate runs doc (a JSON-decoded value) through the current
// schema. Schema violations come back as *ValidationError; anything
// else is an infrastructure failure.
func (g *Gate) Validate(doc any) error {
	compiled, err := g.load()
	if err != nil {
		return err
	}
	return Check(compiled, doc)
}

func (g *Gate) load() (*jsonschema.Schema, error) {
	info, err := os.Stat(g.path)
	if err != nil {
		return nil, fmt.Errorf("stat schema %s: %w", g.path, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.compiled != nil && info.ModTime().Equal(g.modTime) && info.Size() == g.size {
		return g.compiled, nil
	}

	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", g.path, err)
	}
	compiled, err := Compile(data)
	if err != nil {
		return nil, err
	}
	g.compiled = compiled
	g.modTime = info.ModTime()
	g.size = info.Size()
	return compiled, nil
}
