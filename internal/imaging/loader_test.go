package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestDecode(t *testing.T) {
	imgPath := createTestImage(t, 40, 30, color.RGBA{128, 64, 32, 255})
	defer os.Remove(imgPath)

	grid, err := Decode(imgPath)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if grid.Width != 40 || grid.Height != 30 {
		t.Errorf("unexpected dimensions: got %dx%d, want 40x30", grid.Width, grid.Height)
	}
	if grid.At(39, 29) != Pack(128, 64, 32) {
		t.Errorf("At(39,29): got %s", grid.At(39, 29))
	}
}

func TestDecode_TranslucentPixelsKeepColour(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 225, 225, 0})
	img.SetNRGBA(1, 0, color.NRGBA{200, 100, 100, 128})

	path := filepath.Join(t.TempDir(), "translucent.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	grid, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := grid.At(0, 0); got != Pack(255, 225, 225) {
		t.Errorf("fully transparent pixel: got %s, want #FFFFE1E1", got)
	}
	if got := grid.At(1, 0); got != Pack(200, 100, 100) {
		t.Errorf("half transparent pixel: got %s, want #FFC86464", got)
	}
}

func TestDecode_NonExistent(t *testing.T) {
	_, err := Decode("/nonexistent/path/to/image.png")
	if !errors.IsIOFailure(err) {
		t.Fatalf("expected io failure, got %v", err)
	}

	var ioErr *errors.IOFailureError
	if !errors.As(err, &ioErr) || ioErr.Op != "open" {
		t.Errorf("expected open failure, got %v", err)
	}
}

func TestDecode_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Decode(path)
	var ioErr *errors.IOFailureError
	if !errors.As(err, &ioErr) || ioErr.Op != "decode" {
		t.Errorf("expected decode failure, got %v", err)
	}
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	grid1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if grid1.Width != 100 || grid1.Height != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", grid1.Width, grid1.Height)
	}

	// Second load should return cached grid
	grid2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if grid1 != grid2 {
		t.Error("second Load did not return cached grid")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
	if cache.Len() != 0 {
		t.Error("failed load must not be cached")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	a := createTestImage(t, 10, 10, color.RGBA{0, 255, 0, 255})
	b := createTestImage(t, 10, 10, color.RGBA{0, 0, 255, 255})
	defer os.Remove(a)
	defer os.Remove(b)

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	cache.Evict(a)
	cache.mu.RLock()
	_, exists := cache.images[a]
	cache.mu.RUnlock()
	if exists {
		t.Error("Evict did not remove image from cache")
	}

	// Should not panic
	cache.Evict("/nonexistent/path")

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load failed: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 64, 48, color.RGBA{1, 2, 3, 255})
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.png":        "png",
		"a.JPG":        "jpeg",
		"dir/a.jpeg":   "jpeg",
		"a.gif":        "gif",
		"a.tiff":       "tiff",
		"a.bmp":        "bmp",
		"a.webp":       "unknown",
		"no-extension": "unknown",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q): got %s, want %s", path, got, want)
		}
	}
}
