// Package kernel provides the shared domain primitives of the dispatch system:
// the UUID identifier value object and the Clock abstraction that every
// time-dependent rule reads from.
package kernel
