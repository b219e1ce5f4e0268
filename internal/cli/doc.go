// Package cli turns command-line arguments into an app.Config. Usage errors
// and help requests are reported through ExitError and the shouldExit flag
// so that main decides the process exit code.
package cli
