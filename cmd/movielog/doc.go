// Package main hosts the movielog CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into logbook calls:
// catalog lookups, note previews, saving into the vault, and the settings and
// history utilities around them. Configuration resolution, logger setup, and
// the conflict prompt are wired here once so subcommands stay declarative.
//
// Add behavior to the internal packages first and surface it here.
package main
