// Package logbook implements the movielog workflows on top of the catalog,
// vault, note, settings, and history packages.
//
// Service.Fetch looks a title up in OMDb. Service.Save renders a record and
// writes it into the vault, resolving name collisions through the configured
// conflict policy (ask, overwrite, copy, cancel). The remaining methods manage
// the persisted vault path and API key. Every operation returns a Result with
// a human-readable message alongside an error classified with the services
// markers, so the CLI can print the message and pick an exit code.
package logbook
