// Package hclconfig provides the HCL implementation of the config.Loader
// interface. It parses a single configuration file, evaluates expressions
// against an `env` map and a `cwd` string, and translates the result into
// the format-agnostic config.Model.
package hclconfig
