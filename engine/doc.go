// Package engine wires the layout pipeline's components together
// behind a single entry point, RecalculateMap, and carries the
// functional-option configuration (Settings), the synchronous progress
// callback, and the minimal logging seam the rest of the module is
// silent about.
//
// Settings follows the teacher builder package's default-then-apply
// option pattern (DefaultSettings, then each Option in order).
package engine
