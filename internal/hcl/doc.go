// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for parsing declaration files, evaluating
// catalog references and translating the result into the format-agnostic
// model.
package hcl
