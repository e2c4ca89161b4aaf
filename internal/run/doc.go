// Package run drives generation end to end: load packages, select records,
// extract annotations, aggregate groups, synthesize and render the union,
// then write the files or compare them with what is on disk.
package run
