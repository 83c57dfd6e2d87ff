// Package localsearch relocates stations to shorten and straighten
// their incident routes once an initial layout has been found.
//
// The scan-and-accept loop follows the teacher's tsp.TwoOpt: candidates
// are evaluated in a fixed, deterministic order and the first strictly
// improving move is taken immediately rather than searching for the
// single best move, trading optimality for speed and determinism the
// same way two_opt.go does.
package localsearch
