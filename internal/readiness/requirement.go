package readiness

import "fmt"

// Kind identifies what a requirement asserts.
type Kind int

const (
	// KindFileExists asserts a filesystem entry exists.
	KindFileExists Kind = iota
	// KindModuleImportable asserts a module loads without raising.
	KindModuleImportable
)

// DefaultLoader is the loader used by ModuleImportable items that name none.
const DefaultLoader = "python"

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindFileExists:
		return "file"
	case KindModuleImportable:
		return "module"
	default:
		return "unknown"
	}
}

// RequirementItem is one declared deployment precondition.
// Values are immutable; the With* methods return modified copies.
type RequirementItem struct {
	Kind   Kind
	Target string

	// Description is shown in verbose output only.
	Description string
	// Loader names the loader for KindModuleImportable items.
	Loader string
}

// FileExists declares that path must exist relative to the checked directory.
func FileExists(path string) RequirementItem {
	return RequirementItem{Kind: KindFileExists, Target: path}
}

// ModuleImportable declares that the named module must load with the default loader.
func ModuleImportable(name string) RequirementItem {
	return RequirementItem{Kind: KindModuleImportable, Target: name, Loader: DefaultLoader}
}

// WithDescription returns a copy of the item with a human description.
func (r RequirementItem) WithDescription(desc string) RequirementItem {
	r.Description = desc
	return r
}

// WithLoader returns a copy of the item that is loaded by the named loader.
func (r RequirementItem) WithLoader(name string) RequirementItem {
	r.Loader = name
	return r
}

// String renders the item the way it appears in logs, e.g. file:Dockerfile.
func (r RequirementItem) String() string {
	if r.Kind == KindModuleImportable && r.Loader != "" && r.Loader != DefaultLoader {
		return fmt.Sprintf("%s(%s):%s", r.Kind, r.Loader, r.Target)
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.Target)
}
