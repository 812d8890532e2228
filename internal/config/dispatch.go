package config

import (
	"context"
	"fmt"

	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/fsutil"
)

// Dispatcher routes declaration files to the loader registered for their
// extension and merges the results into one Model. Units from the first
// registered loader come first; each loader sees its files in path order.
type Dispatcher struct {
	loaders []Loader
}

// NewDispatcher builds a Dispatcher. Earlier loaders win extension clashes.
func NewDispatcher(loaders ...Loader) *Dispatcher {
	return &Dispatcher{loaders: loaders}
}

func (d *Dispatcher) Extensions() []string {
	var exts []string
	for _, l := range d.loaders {
		exts = append(exts, l.Extensions()...)
	}
	return exts
}

func (d *Dispatcher) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, d.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no declaration files found in %v", paths)
	}

	batches := make([][]string, len(d.loaders))
	for _, f := range files {
		idx := -1
		for i, l := range d.loaders {
			if fsutil.HasExtension(f, l.Extensions()...) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("no loader registered for %s", f)
		}
		batches[idx] = append(batches[idx], f)
	}

	model := NewModel()
	for i, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		logger.Debug("Dispatching declaration files.", "loader", fmt.Sprintf("%T", d.loaders[i]), "count", len(batch))
		part, err := d.loaders[i].Load(ctx, batch...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}
	logger.Debug("Declarations loaded.", "files", len(model.Files), "units", len(model.Units))
	return model, nil
}
