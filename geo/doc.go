// Package geo provides the integer grid primitives the layout engine
// routes and contracts over: a node on the octilinear grid, the eight
// directions a station or route segment may point in, and the distance
// and angle calculations the cost function and router depend on.
//
// Nothing in this package allocates beyond its return values, and
// nothing in it is safe or unsafe for concurrent use in any way that
// matters — every function is pure.
package geo
