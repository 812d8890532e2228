package config

import (
	"fmt"

	"github.com/specialistvlad/manifold/internal/manifest"
)

// Model is the unified, format-agnostic representation of every build unit
// declared in a project tree.
type Model struct {
	// Units keeps file order, then in-file declaration order.
	Units []manifest.BuildUnit
	// Catalog holds named versions that declarations may reference.
	Catalog map[string]string
	// Files lists the declaration files that were read, in load order.
	Files []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Catalog: make(map[string]string)}
}

// Unit looks up a unit by name.
func (m *Model) Unit(name string) (manifest.BuildUnit, bool) {
	for _, u := range m.Units {
		if u.Name == name {
			return u, true
		}
	}
	return manifest.BuildUnit{}, false
}

// AddUnit appends u, rejecting a name already present in the tree.
func (m *Model) AddUnit(u manifest.BuildUnit, source string) error {
	if u.Name == "" {
		return fmt.Errorf("%s: unit name is empty", source)
	}
	if _, exists := m.Unit(u.Name); exists {
		return fmt.Errorf("%s: unit %q is declared more than once", source, u.Name)
	}
	m.Units = append(m.Units, u)
	return nil
}

// AddCatalogEntry records a named version, rejecting redefinitions.
func (m *Model) AddCatalogEntry(name, version, source string) error {
	if prev, exists := m.Catalog[name]; exists {
		return fmt.Errorf("%s: catalog entry %q already defined as %q", source, name, prev)
	}
	m.Catalog[name] = version
	return nil
}

// Merge appends other into m using the same uniqueness rules.
func (m *Model) Merge(other *Model) error {
	for name, version := range other.Catalog {
		if err := m.AddCatalogEntry(name, version, "catalog"); err != nil {
			return err
		}
	}
	for _, u := range other.Units {
		if err := m.AddUnit(u, "tree"); err != nil {
			return err
		}
	}
	m.Files = append(m.Files, other.Files...)
	return nil
}
