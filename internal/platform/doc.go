// Package platform contains OS integration and external tooling glue:
// filesystem helpers, media duration probing via ffprobe, and OS open/reveal.
package platform
