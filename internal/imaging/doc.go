// Package imaging is the raster boundary of the recolor tool: it turns image
// files into PixelGrid values and PixelGrid values back into files.
//
// All processing happens on PixelGrid, a row-major raster of packed 32-bit
// samples. Decoding, non-premultiplied conversion and file encoding use
// disintegration/imaging; in-memory PNG encoding uses bild's imgio package.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles are half-open: Min is inclusive, Max is exclusive
//
// # Sample Layout
//
// A Sample packs one pixel as 0xAARRGGBB: alpha in the most significant
// byte, blue in the least significant byte. Decoded input is always stored
// fully opaque; alpha in the source file is ignored.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. PixelGrid has no locking:
// any number of goroutines may read a grid nobody writes, and goroutines may
// write the same grid only at disjoint pixels.
//
// # Error Handling
//
// File problems are reported as IOFailureError; bad dimensions, coordinates
// or encoder settings as InvalidArgumentError. Both come from the
// internal/errors package and can be matched with errors.Is.
package imaging
