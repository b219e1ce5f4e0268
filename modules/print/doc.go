// Package print provides console output components: a console writer and the
// layout it formats messages with.
package print
