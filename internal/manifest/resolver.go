package manifest

import "context"

// Resolver computes a Result for a single BuildUnit.
type Resolver interface {
	Resolve(ctx context.Context, unit BuildUnit) (Result, error)
}

// Result is what a Resolver hands back to the orchestrator.
type Result struct {
	Set       EffectiveDependencySet
	Collapsed []Collapse
}

// DefaultResolver resolves units with Explain. A cancelled context stops it
// before any work is done.
type DefaultResolver struct{}

func NewDefault() *DefaultResolver {
	return &DefaultResolver{}
}

func (r *DefaultResolver) Resolve(ctx context.Context, unit BuildUnit) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	set, collapsed, err := Explain(unit)
	if err != nil {
		return Result{}, err
	}
	return Result{Set: set, Collapsed: collapsed}, nil
}
