// Package grid holds the immutable mirror grid a beam travels through.
//
// A Grid is built once from rows of text and never mutated afterwards, so a
// single instance can be shared by any number of concurrent simulation runs
// without locking. Coordinates are zero-based with the origin in the top-left
// corner; x grows to the right and y grows downwards.
//
// The package also defines the two closed enumerations every other package
// works with: Symbol, the content of a cell, and Direction, the heading of a
// beam.
package grid
