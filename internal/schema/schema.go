// Package schema holds the HCL decoding targets for declaration files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of a declaration file.
type File struct {
	Catalogs []*Catalog `hcl:"catalog,block"`
	Units    []*Unit    `hcl:"unit,block"`
}

// Catalog is a `catalog` block: a flat set of named version strings.
type Catalog struct {
	Body hcl.Body `hcl:",remain"`
}

// Unit represents a `unit` block, the declaration of one build module.
type Unit struct {
	Name         string        `hcl:"name,label"`
	Description  string        `hcl:"description,optional"`
	Plugins      []string      `hcl:"plugins,optional"`
	Dependencies []*Dependency `hcl:"dependency,block"`
}

// Dependency represents a `dependency "<kind>" "<id>"` block. Version is kept
// as an expression so it can reference the catalog.
type Dependency struct {
	Kind    string         `hcl:"kind,label"`
	ID      string         `hcl:"id,label"`
	Version hcl.Expression `hcl:"version,optional"`
	Because string         `hcl:"because,optional"`
}
