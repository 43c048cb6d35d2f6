// Package jsonstore is JSON-backed storage: one human-readable file per
// record type, rewritten whole on every mutation.
//
// Writes go to a sibling temp file that is renamed over the target, so a
// reader never sees a half-written store. A single-permit Guard serializes
// every logical operation of a Repository, including the full
// read-modify-write span of Add, Update and Delete. Nothing here coordinates
// between processes; one process is assumed to own the file.
package jsonstore
