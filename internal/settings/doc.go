// Package settings persists small named values (the chosen vault folder, the
// OMDb API key) across runs.
//
// Store is the capability the rest of the program depends on. FileStore keeps
// the values in a TOML document with owner-only permissions and serializes
// read-modify-write cycles across processes with an advisory lock file.
// MemoryStore backs tests.
package settings
