// Package tuner implements the batch pitch-shift pipeline: it discovers audio
// files under a file or directory root, builds one conversion job per file and
// runs FFmpeg's rubberband filter for each, writing results into a
// frequency-named sibling directory such as "432Hz".
package tuner
