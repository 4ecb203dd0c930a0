// Package recolor tints the grey areas of an image in parallel.
//
// The image is split into horizontal strips by Partition, each strip is
// transformed by its own work unit on a taskrunner.Runner, and every unit
// writes only its own rows of a shared destination grid. The source grid is
// read by all units and written by none, so no locking is needed.
//
// # Transform
//
// A pixel is a shade of grey when its red, green and blue channels are all
// within 30 of each other. Grey pixels get red +10, green -80 and blue -20,
// clamped to 0-255. Other pixels are copied unchanged. Output samples are
// fully opaque.
//
// # Remainder Rows
//
// Strips are height/workers rows tall. With RemainderToLast (the default)
// the last strip absorbs the leftover rows, so the result never depends on
// the worker count. RemainderDrop leaves the last height%workers rows
// unwritten (zero samples), matching the behaviour of earlier releases.
package recolor
