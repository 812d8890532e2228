package manifest

import (
	"fmt"
	"strings"
)

// DependencyKind tags which reference a DependencyDeclaration carries.
type DependencyKind string

const (
	KindModule   DependencyKind = "module"
	KindExternal DependencyKind = "external"
)

// ModuleReference names a sibling module in the same project tree.
type ModuleReference struct {
	Name string
}

// ExternalPackageReference identifies a third-party plugin or library.
// Version is kept verbatim, including snapshot and dynamic versions.
type ExternalPackageReference struct {
	Coordinate string
	Version    string
}

// String renders the reference in group:artifact:version notation.
func (r ExternalPackageReference) String() string {
	if r.Version == "" {
		return r.Coordinate
	}
	return r.Coordinate + ":" + r.Version
}

// DependencyDeclaration is a tagged reference to either a module or an
// external package, plus an optional audit reason.
type DependencyDeclaration struct {
	Kind     DependencyKind
	Module   ModuleReference
	External ExternalPackageReference
	Reason   string
}

// Module declares a dependency on a sibling module.
func Module(name string) DependencyDeclaration {
	return DependencyDeclaration{Kind: KindModule, Module: ModuleReference{Name: name}}
}

// External declares a dependency on a third-party package.
func External(coordinate, version string) DependencyDeclaration {
	return DependencyDeclaration{
		Kind:     KindExternal,
		External: ExternalPackageReference{Coordinate: coordinate, Version: version},
	}
}

// Because returns a copy of d annotated with reason.
func (d DependencyDeclaration) Because(reason string) DependencyDeclaration {
	d.Reason = reason
	return d
}

// ID is the bare identifier of the reference: the module name or the
// package coordinate, without surrounding whitespace.
func (d DependencyDeclaration) ID() string {
	switch d.Kind {
	case KindModule:
		return strings.TrimSpace(d.Module.Name)
	case KindExternal:
		return strings.TrimSpace(d.External.Coordinate)
	default:
		return ""
	}
}

// Key is the identity used for deduplication. Kinds are namespaced so a
// module and a package sharing an identifier stay distinct.
func (d DependencyDeclaration) Key() string {
	return string(d.Kind) + ":" + d.ID()
}

func (d DependencyDeclaration) String() string {
	switch d.Kind {
	case KindModule:
		return fmt.Sprintf("project(:%s)", d.Module.Name)
	case KindExternal:
		return d.External.String()
	default:
		return fmt.Sprintf("<invalid %q>", string(d.Kind))
	}
}

// BuildUnit is the static declaration of one module being configured.
// Dependencies are kept in declaration order; that order is the classpath
// order handed to the build orchestrator.
type BuildUnit struct {
	Name           string
	Description    string
	AppliedPlugins []string
	Dependencies   []DependencyDeclaration
}

// EffectiveDependencySet is the deduplicated, ordered result of resolving a
// BuildUnit.
type EffectiveDependencySet struct {
	Unit         string
	Description  string
	Plugins      []string
	Dependencies []DependencyDeclaration
}

// AsBuildUnit turns the set back into a unit declaration.
func (s EffectiveDependencySet) AsBuildUnit() BuildUnit {
	return BuildUnit{
		Name:           s.Unit,
		Description:    s.Description,
		AppliedPlugins: append([]string(nil), s.Plugins...),
		Dependencies:   append([]DependencyDeclaration(nil), s.Dependencies...),
	}
}

// Collapse records a duplicate declaration that was folded into an earlier
// entry.
type Collapse struct {
	Key            string
	FirstIndex     int
	DuplicateIndex int
	// ReasonAdopted is set when the earlier entry had no reason and took
	// this one's.
	ReasonAdopted bool
}
