// Package consumption tracks which parts of a configuration node were claimed
// by some input during one build attempt, and turns the leftovers into
// diagnostics.
//
// A Tracker is created for exactly one build attempt and must not be shared:
// it is deliberately unsynchronized.
package consumption
