// Package query holds the pure filter, sort and aggregate helpers applied to
// an in-memory snapshot of a store. Nothing here touches the disk, and no
// function modifies its input slice.
package query
