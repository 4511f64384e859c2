// Package cli parses beamgrid's command-line arguments into an app.Config and
// maps bad input to process exit codes.
package cli
