package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/manifest"
	"github.com/specialistvlad/manifold/internal/report"
	"github.com/specialistvlad/manifold/internal/semver"
	"golang.org/x/sync/errgroup"
)

// Run resolves the selected units, reports the successful ones and returns an
// error joining every unit that failed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	units, err := a.selectUnits()
	if err != nil {
		return err
	}
	if len(units) == 0 {
		a.logger.Warn("No build units declared, nothing to resolve.")
		return nil
	}

	results, errs := a.resolveAll(ctx, units)

	var resolved []manifest.Result
	var failed []error
	for i := range units {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		a.inspect(results[i])
		resolved = append(resolved, results[i])
	}
	a.logger.Info("Resolution finished.", "resolved", len(resolved), "failed", len(failed))

	format, _ := report.ParseFormat(a.config.Format)
	if err := report.Render(a.outW, format, resolved, report.Options{Explain: a.config.Explain}); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if a.config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d units failed to resolve: %w", len(failed), len(units), errors.Join(failed...))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) selectUnits() ([]manifest.BuildUnit, error) {
	if a.config.Unit == "" {
		return a.model.Units, nil
	}
	name := manifest.ModuleName(a.config.Unit)
	unit, ok := a.model.Unit(name)
	if !ok {
		return nil, fmt.Errorf("unit %q is not declared in %v", name, a.config.UnitPaths)
	}
	return []manifest.BuildUnit{unit}, nil
}

// resolveAll resolves units on a bounded pool. Units are independent, so a
// declaration error in one never stops the others; results keep unit order.
func (a *App) resolveAll(ctx context.Context, units []manifest.BuildUnit) ([]manifest.Result, []error) {
	results := make([]manifest.Result, len(units))
	errs := make([]error, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			logger := ctxlog.FromContext(gctx).With("unit", unit.Name)
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}

			start := time.Now()
			res, err := a.resolver.Resolve(gctx, unit)
			elapsed := time.Since(start)
			if err != nil {
				logger.Error("Unit failed to resolve.", "error", err)
				a.metrics.ObserveFailed(elapsed, manifest.KindName(err))
				errs[i] = err
				return nil
			}

			logger.Debug("Unit resolved.", "dependencies", len(res.Set.Dependencies), "collapsed", len(res.Collapsed), "elapsed", elapsed)
			a.metrics.ObserveResolved(elapsed, len(res.Collapsed))
			results[i] = res
			return nil
		})
	}
	// Per-unit errors are kept in errs; Wait only reports cancellation.
	_ = g.Wait()
	return results, errs
}

// inspect logs advisory findings for a resolved set. None of them change
// the result.
func (a *App) inspect(res manifest.Result) {
	logger := a.logger.With("unit", res.Set.Unit)

	for _, c := range res.Collapsed {
		logger.Info("Duplicate dependency collapsed.", "key", c.Key, "first_index", c.FirstIndex, "duplicate_index", c.DuplicateIndex)
	}

	for _, d := range res.Set.Dependencies {
		switch d.Kind {
		case manifest.KindExternal:
			stability := semver.Classify(d.External.Version)
			if stability.Unstable() {
				logger.Warn("External dependency is not pinned to a release version.", "coordinate", d.External.Coordinate, "version", d.External.Version, "stability", stability)
				a.metrics.ObserveUnstable(string(stability))
			}
		case manifest.KindModule:
			if _, ok := a.model.Unit(d.ID()); !ok {
				logger.Debug("Module reference is not declared in the loaded tree.", "module", d.ID())
			}
		}
	}
}
