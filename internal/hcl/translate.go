// This file contains the logic for translating HCL schema structs into the
// format-agnostic declaration model.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/manifest"
	"github.com/specialistvlad/manifold/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// catalogEvalContext exposes catalog entries to expressions as
// `catalog.<name>`.
func catalogEvalContext(catalog map[string]string) *hcl.EvalContext {
	entries := make(map[string]cty.Value, len(catalog))
	for name, version := range catalog {
		entries[name] = cty.StringVal(version)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"catalog": cty.ObjectVal(entries),
		},
	}
}

// translateUnit converts the HCL unit schema into a manifest.BuildUnit.
func (l *Loader) translateUnit(ctx context.Context, s *schema.Unit, evalCtx *hcl.EvalContext) (manifest.BuildUnit, error) {
	logger := ctxlog.FromContext(ctx)

	unit := manifest.BuildUnit{
		Name:           manifest.ModuleName(s.Name),
		Description:    s.Description,
		AppliedPlugins: append([]string(nil), s.Plugins...),
		Dependencies:   make([]manifest.DependencyDeclaration, 0, len(s.Dependencies)),
	}

	for i, d := range s.Dependencies {
		dep, err := translateDependency(d, evalCtx)
		if err != nil {
			return manifest.BuildUnit{}, fmt.Errorf("unit %q, dependency #%d: %w", s.Name, i, err)
		}
		unit.Dependencies = append(unit.Dependencies, dep)
	}

	logger.Debug("Translated unit.", "unit", unit.Name, "plugins", len(unit.AppliedPlugins), "dependencies", len(unit.Dependencies))
	return unit, nil
}

func translateDependency(d *schema.Dependency, evalCtx *hcl.EvalContext) (manifest.DependencyDeclaration, error) {
	switch manifest.DependencyKind(d.Kind) {
	case manifest.KindModule:
		if d.Version != nil && !isNullExpr(d.Version) {
			return manifest.DependencyDeclaration{}, fmt.Errorf("module %q cannot declare a version", d.ID)
		}
		return manifest.Module(manifest.ModuleName(d.ID)).Because(d.Because), nil

	case manifest.KindExternal:
		ref, err := manifest.ParseExternalNotation(d.ID)
		if err != nil {
			// Malformed coordinates are left for the resolver to reject.
			ref = manifest.ExternalPackageReference{Coordinate: d.ID}
		}
		if d.Version != nil && !isNullExpr(d.Version) {
			var version string
			if diags := gohcl.DecodeExpression(d.Version, evalCtx, &version); diags.HasErrors() {
				return manifest.DependencyDeclaration{}, fmt.Errorf("external %q version: %w", d.ID, diags)
			}
			ref.Version = version
		}
		return manifest.External(ref.Coordinate, ref.Version).Because(d.Because), nil

	default:
		return manifest.DependencyDeclaration{}, fmt.Errorf("unknown dependency kind %q (want %q or %q)", d.Kind, manifest.KindModule, manifest.KindExternal)
	}
}

// isNullExpr reports whether an optional attribute was omitted. gohcl fills
// missing optional expressions with a synthetic null literal.
func isNullExpr(expr hcl.Expression) bool {
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
