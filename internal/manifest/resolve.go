package manifest

import (
	"strings"
)

// Resolve computes the effective dependency set of unit.
//
// Declarations are scanned in order. A key seen before keeps its first
// position; the earlier entry only takes the later reason when it had none.
// The first malformed declaration aborts resolution with a *DeclarationError.
func Resolve(unit BuildUnit) (EffectiveDependencySet, error) {
	set, _, err := Explain(unit)
	return set, err
}

// Explain is Resolve plus a record of every duplicate that was collapsed.
func Explain(unit BuildUnit) (EffectiveDependencySet, []Collapse, error) {
	if len(unit.AppliedPlugins) == 0 {
		return EffectiveDependencySet{}, nil, &DeclarationError{
			Kind:   ErrEmptyPluginList,
			Unit:   unit.Name,
			Index:  -1,
			Detail: "a unit must apply at least one plugin",
		}
	}

	deps := make([]DependencyDeclaration, 0, len(unit.Dependencies))
	type seenAt struct{ out, decl int }
	positions := make(map[string]seenAt, len(unit.Dependencies))
	var collapsed []Collapse

	for i, dep := range unit.Dependencies {
		if err := validate(unit.Name, i, dep); err != nil {
			return EffectiveDependencySet{}, nil, err
		}

		key := dep.Key()
		first, seen := positions[key]
		if !seen {
			positions[key] = seenAt{out: len(deps), decl: i}
			deps = append(deps, dep)
			continue
		}

		c := Collapse{Key: key, FirstIndex: first.decl, DuplicateIndex: i}
		if deps[first.out].Reason == "" && dep.Reason != "" {
			deps[first.out].Reason = dep.Reason
			c.ReasonAdopted = true
		}
		collapsed = append(collapsed, c)
	}

	return EffectiveDependencySet{
		Unit:         unit.Name,
		Description:  unit.Description,
		Plugins:      append([]string(nil), unit.AppliedPlugins...),
		Dependencies: deps,
	}, collapsed, nil
}

func validate(unitName string, index int, dep DependencyDeclaration) error {
	fail := func(kind error, detail string) error {
		return &DeclarationError{Kind: kind, Unit: unitName, Index: index, Key: dep.Key(), Detail: detail}
	}

	switch dep.Kind {
	case KindModule:
		name := dep.ID()
		if name == "" {
			return fail(ErrInvalidCoordinate, "module name is empty")
		}
		if name == unitName {
			return fail(ErrSelfReference, "a unit cannot depend on itself")
		}
	case KindExternal:
		if dep.ID() == "" {
			return fail(ErrInvalidCoordinate, "package coordinate is empty")
		}
		if strings.TrimSpace(dep.External.Version) == "" {
			return fail(ErrInvalidCoordinate, "package version is empty")
		}
	default:
		return fail(ErrInvalidCoordinate, "dependency is neither a module nor an external package")
	}
	return nil
}
