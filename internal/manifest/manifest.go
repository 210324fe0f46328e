// Package manifest holds the deployment checklist compiled into readycheck
// and parses checklist documents.
package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
	"github.com/Aman-CERP/readycheck/internal/readiness"
)

// CurrentVersion is the only document version understood by Parse.
const CurrentVersion = 1

//go:embed default.yaml
var defaultManifest []byte

// Loaders accepted in the loader field.
var knownLoaders = map[string]bool{"python": true, "go": true}

// Document is the YAML form of a checklist.
type Document struct {
	Version      int     `yaml:"version"`
	Requirements []Entry `yaml:"requirements"`
}

// Entry is one checklist line. Exactly one of File and Module is set.
type Entry struct {
	File        string `yaml:"file,omitempty"`
	Module      string `yaml:"module,omitempty"`
	Loader      string `yaml:"loader,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Default returns the built-in checklist.
func Default() ([]readiness.RequirementItem, error) {
	return Parse(defaultManifest)
}

// Raw returns the built-in checklist document as embedded.
func Raw() []byte {
	out := make([]byte, len(defaultManifest))
	copy(out, defaultManifest)
	return out
}

// Parse decodes a checklist document. Unknown fields, entries that set both
// or neither of file/module, blank targets and unknown loaders are rejected.
// An empty requirements list is valid.
func Parse(data []byte) ([]readiness.RequirementItem, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, rerrors.ManifestError("parse checklist", err)
	}

	if doc.Version != CurrentVersion {
		return nil, rerrors.ManifestError(fmt.Sprintf("unsupported checklist version %d (want %d)", doc.Version, CurrentVersion), nil)
	}

	items := make([]readiness.RequirementItem, 0, len(doc.Requirements))
	for i, e := range doc.Requirements {
		item, err := e.item()
		if err != nil {
			return nil, rerrors.ManifestError(fmt.Sprintf("requirements[%d]: %v", i, err), err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (e Entry) item() (readiness.RequirementItem, error) {
	file := strings.TrimSpace(e.File)
	module := strings.TrimSpace(e.Module)

	switch {
	case file != "" && module != "":
		return readiness.RequirementItem{}, fmt.Errorf("set either file or module, not both")
	case file != "":
		if e.Loader != "" {
			return readiness.RequirementItem{}, fmt.Errorf("loader is only valid for modules")
		}
		return readiness.FileExists(file).WithDescription(e.Description), nil
	case module != "":
		item := readiness.ModuleImportable(module).WithDescription(e.Description)
		if e.Loader != "" {
			if !knownLoaders[e.Loader] {
				return readiness.RequirementItem{}, fmt.Errorf("unknown loader %q", e.Loader)
			}
			item = item.WithLoader(e.Loader)
		}
		return item, nil
	default:
		return readiness.RequirementItem{}, fmt.Errorf("file or module is required")
	}
}
