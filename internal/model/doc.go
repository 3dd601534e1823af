// Package model defines the domain data structures shared by the tuner, the
// CLI and the desktop UI: supported tuning frequencies and output formats,
// tuning requests, conversion jobs and their status enum.
package model
