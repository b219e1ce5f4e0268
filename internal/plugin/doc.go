// SPDX-License-Identifier: MIT
//
// Package plugin declares how a buildable component describes itself to the
// construction engine.
//
// A component is registered as a Descriptor: an element name (plus optional
// aliases), the Go type it produces, and up to two construction strategies.
//
//   - Builder path: a zero-argument NewBuilder function returning a Builder.
//     The engine binds every InputSpec the builder declares and then calls
//     Build to obtain the instance.
//
//   - Factory path: a Factory whose Params are bound positionally and passed
//     to Fn as an argument slice.
//
// A descriptor may carry both; the builder path is always tried first. Inputs
// are declared explicitly through InputSpec values instead of being
// discovered from struct tags, so the engine never has to introspect a
// builder to find out what it needs.
package plugin
