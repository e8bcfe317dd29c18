// Package history persists a record of every note movielog writes.
//
// Entries live in a small SQLite database (WAL mode, embedded migrations) in
// the state directory. The logbook appends to it after each save; the
// `history` command reads it back newest first.
package history
