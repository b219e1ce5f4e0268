// Package registry provides the central "glue" for the component system.
//
// The Registry maps the element names used in configuration (e.g. "console")
// to the descriptors of the compiled Go components that can be built from
// them. Component packages add themselves through the Module interface.
//
// During application startup the registry is populated and then validated
// against the conversion handlers, so that a component declaring an input no
// handler can resolve is rejected before any configuration is read.
package registry
