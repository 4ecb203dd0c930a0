package imaging

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// Decode reads the image at path and converts it into a PixelGrid.
//
// Decoding goes through disintegration/imaging, so any format it registers
// (JPEG, PNG, GIF, TIFF, BMP) is accepted. EXIF orientation is not applied:
// the grid matches the stored raster.
//
// # Errors
//
//   - IOFailureError with Op "open" if the file cannot be opened
//   - IOFailureError with Op "decode" if the contents are not a supported image
func Decode(path string) (*PixelGrid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		op := "decode"
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			op = "open"
		}
		return nil, errors.NewIOFailure(op, path, err)
	}

	grid, err := FromImage(img)
	if err != nil {
		return nil, errors.NewIOFailure("decode", path, err)
	}
	return grid, nil
}

// ImageCache provides thread-safe caching of decoded grids to avoid redundant disk reads.
//
// The cache stores decoded PixelGrid values keyed by their file path. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// grid without disk I/O. Cached grids are shared and must be treated as
// read-only; the recolor engine only ever reads its source.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached grids remain in memory until explicitly removed via Evict() or Clear().
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*PixelGrid
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*PixelGrid),
	}
}

// Load retrieves a grid from the cache or decodes it from disk if not cached.
//
// The grid is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (*PixelGrid, error) {
	c.mu.RLock()
	if grid, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return grid, nil
	}
	c.mu.RUnlock()

	grid, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = grid
	c.mu.Unlock()

	return grid, nil
}

// Len returns the number of cached grids.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all grids from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*PixelGrid)
	c.mu.Unlock()
}

// Evict removes a specific grid from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "tiff", "bmp", or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	grid, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIOFailure("stat", path, err)
	}

	return &ImageInfo{
		Width:         grid.Width,
		Height:        grid.Height,
		Format:        FormatFromPath(path),
		FileSizeBytes: stat.Size(),
	}, nil
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".tif", ".tiff":
		return "tiff"
	case ".bmp":
		return "bmp"
	default:
		return "unknown"
	}
}
