// Package config defines the format-agnostic declaration model for a project
// tree, along with the Loader interface that concrete formats implement.
//
// The `config.Model` is the single source of truth for the app package.
// Concrete implementations, such as for HCL and YAML, are provided in
// separate packages.
package config
