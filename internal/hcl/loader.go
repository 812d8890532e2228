package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/manifold/internal/config"
	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/fsutil"
	"github.com/specialistvlad/manifold/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

type parsedFile struct {
	path string
	root schema.File
}

// Load parses every .hcl file under paths. Catalog blocks from all files are
// gathered first so units may reference entries declared in any file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := config.NewModel()
	parsed := make([]parsedFile, 0, len(files))

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, c := range root.Catalogs {
			if err := l.collectCatalog(c, file, model); err != nil {
				return nil, err
			}
		}
		parsed = append(parsed, parsedFile{path: file, root: root})
		model.Files = append(model.Files, file)
	}

	evalCtx := catalogEvalContext(model.Catalog)
	for _, pf := range parsed {
		for _, u := range pf.root.Units {
			unit, err := l.translateUnit(ctx, u, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", pf.path, err)
			}
			if err := model.AddUnit(unit, pf.path); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "units", len(model.Units), "catalog_entries", len(model.Catalog))
	return model, nil
}

func (l *Loader) collectCatalog(c *schema.Catalog, file string, model *config.Model) error {
	attrs, diags := c.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("invalid catalog block in %s: %w", file, diags)
	}
	for name, attr := range attrs {
		var version string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &version); diags.HasErrors() {
			return fmt.Errorf("catalog entry %q in %s: %w", name, file, diags)
		}
		if err := model.AddCatalogEntry(name, version, file); err != nil {
			return err
		}
	}
	return nil
}

var _ config.Loader = (*Loader)(nil)
