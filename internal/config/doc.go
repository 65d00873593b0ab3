// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from a file.
//
// The `config.Model` carries run-wide settings and project descriptors. It is
// merged with command line flags by the app package. Concrete loaders, such
// as the HCL one, live in separate packages.
package config
