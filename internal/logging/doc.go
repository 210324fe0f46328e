// Package logging provides opt-in file-based logging with rotation for readycheck.
// When the --debug flag is set, structured JSON logs are written to
// ~/.readycheck/logs/ so a failed deploy check can be investigated later.
//
// Without --debug nothing is logged: the checklist printed on stdout is the
// whole user-facing output.
package logging
