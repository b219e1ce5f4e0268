// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: load the
// configuration, materialize every component in it and report what could not
// be built, decoupled from any specific entrypoint like a CLI or server.
package app
