// Package services holds the small shared pieces every movielog component
// leans on: context helpers that stamp the running operation, title, and
// correlation ID for logging, and the error markers plus Wrap helper used to
// classify failures into user-facing outcomes and CLI exit codes.
package services
