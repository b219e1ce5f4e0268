// Package config defines the format-agnostic configuration model, the Loader
// interface implemented by each configuration format, and the Configuration
// services handed to components while they are built.
//
// Concrete loaders, such as for HCL and YAML, are provided in separate
// packages.
package config
