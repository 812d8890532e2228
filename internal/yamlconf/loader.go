// Package yamlconf provides the YAML implementation of the config.Loader
// interface.
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/specialistvlad/manifold/internal/config"
	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/fsutil"
	"github.com/specialistvlad/manifold/internal/manifest"
	"gopkg.in/yaml.v3"
)

type document struct {
	Catalog map[string]string `yaml:"catalog"`
	Units   []unitDoc         `yaml:"units"`
}

type unitDoc struct {
	Name         string          `yaml:"name"`
	Description  string          `yaml:"description"`
	Plugins      []string        `yaml:"plugins"`
	Dependencies []dependencyDoc `yaml:"dependencies"`
}

type dependencyDoc struct {
	Module   string  `yaml:"module"`
	External string  `yaml:"external"`
	Version  *string `yaml:"version"` // nil when omitted or null
	Because  string  `yaml:"because"`
}

var catalogRef = regexp.MustCompile(`\$\{catalog\.([A-Za-z0-9_-]+)\}`)

// Loader reads declaration files written in YAML.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load decodes every YAML file under paths. Like the HCL loader, catalogs
// from all files are merged before any `${catalog.x}` reference is expanded.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	docs := make([]document, 0, len(files))
	for _, file := range files {
		doc, err := decodeFile(file)
		if err != nil {
			return nil, err
		}
		for name, version := range doc.Catalog {
			if err := model.AddCatalogEntry(name, version, file); err != nil {
				return nil, err
			}
		}
		docs = append(docs, doc)
		model.Files = append(model.Files, file)
	}

	for i, doc := range docs {
		for _, ud := range doc.Units {
			unit, err := translateUnit(ud, model.Catalog)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", files[i], err)
			}
			if err := model.AddUnit(unit, files[i]); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("YAML loading complete.", "units", len(model.Units), "catalog_entries", len(model.Catalog))
	return model, nil
}

func decodeFile(path string) (document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return document{}, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return doc, nil
}

func translateUnit(ud unitDoc, catalog map[string]string) (manifest.BuildUnit, error) {
	unit := manifest.BuildUnit{
		Name:           manifest.ModuleName(ud.Name),
		Description:    ud.Description,
		AppliedPlugins: append([]string(nil), ud.Plugins...),
		Dependencies:   make([]manifest.DependencyDeclaration, 0, len(ud.Dependencies)),
	}

	for i, dd := range ud.Dependencies {
		dep, err := translateDependency(dd, catalog)
		if err != nil {
			return manifest.BuildUnit{}, fmt.Errorf("unit %q, dependency #%d: %w", ud.Name, i, err)
		}
		unit.Dependencies = append(unit.Dependencies, dep)
	}
	return unit, nil
}

func translateDependency(dd dependencyDoc, catalog map[string]string) (manifest.DependencyDeclaration, error) {
	switch {
	case dd.Module != "" && dd.External != "":
		return manifest.DependencyDeclaration{}, fmt.Errorf("declares both module %q and external %q", dd.Module, dd.External)
	case dd.Module != "":
		if dd.Version != nil {
			return manifest.DependencyDeclaration{}, fmt.Errorf("module %q cannot declare a version", dd.Module)
		}
		return manifest.Module(manifest.ModuleName(dd.Module)).Because(dd.Because), nil
	case dd.External != "":
		ref, err := manifest.ParseExternalNotation(dd.External)
		if err != nil {
			ref = manifest.ExternalPackageReference{Coordinate: dd.External}
		}
		if dd.Version != nil {
			version, err := expandCatalog(*dd.Version, catalog)
			if err != nil {
				return manifest.DependencyDeclaration{}, fmt.Errorf("external %q version: %w", dd.External, err)
			}
			ref.Version = version
		}
		return manifest.External(ref.Coordinate, ref.Version).Because(dd.Because), nil
	default:
		return manifest.DependencyDeclaration{}, errors.New("declares neither module nor external")
	}
}

func expandCatalog(s string, catalog map[string]string) (string, error) {
	var missing []string
	out := catalogRef.ReplaceAllStringFunc(s, func(m string) string {
		name := catalogRef.FindStringSubmatch(m)[1]
		v, ok := catalog[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown catalog entries %v", missing)
	}
	return out, nil
}

var _ config.Loader = (*Loader)(nil)
