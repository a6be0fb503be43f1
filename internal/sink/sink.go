// Package sink persists rendered rasters. The pipeline only chooses names;
// where and how the images end up is decided by the Sink implementation.
package sink

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/semaphore"
)

// Sink stores an image under a caller chosen name. Names may contain
// slashes.
type Sink interface {
	Save(name string, img image.Image) error
}

// Supported encodings.
const (
	PNG  = "png"
	TIFF = "tiff"
)

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("sink: unsupported format %q", format)
	}
}

// Dir writes every image into a directory. For every entry in Previews an
// additional copy, scaled to that height, is written as <name>_<height>.
type Dir struct {
	Path     string
	Format   string
	Previews []uint
}

// Save encodes img to <Path>/<name>.<Format>, creating parent directories.
func (d Dir) Save(name string, img image.Image) error {
	if err := d.write(name, img); err != nil {
		return err
	}

	for _, size := range d.Previews {
		preview := resize.Resize(0, size, img, resize.MitchellNetravali)
		if err := d.write(fmt.Sprintf("%s_%d", name, size), preview); err != nil {
			return err
		}
	}

	return nil
}

func (d Dir) extension() string {
	if d.Format == "" {
		return PNG
	}
	return d.Format
}

func (d Dir) write(name string, img image.Image) error {
	filePath := filepath.Join(d.Path, filepath.FromSlash(name)+"."+d.extension())

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}

	out, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if err := Encode(out, img, d.Format); err != nil {
		out.Close()
		os.Remove(filePath)
		return fmt.Errorf("encoding %s: %w", filePath, err)
	}

	return out.Close()
}

// Named pairs an image with the name it is saved under.
type Named struct {
	Name  string
	Image image.Image
}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// SaveAll saves all images concurrently, at most one per CPU at a time, and
// returns the first error encountered.
func SaveAll(s Sink, images []Named) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, n := range images {
		if err := sem.Acquire(context.Background(), 1); err != nil {
			return err
		}

		wg.Add(1)
		go func(n Named) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.Save(n.Name, n.Image); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("saving %s: %w", n.Name, err)
				}
				mu.Unlock()
			}
		}(n)
	}

	wg.Wait()
	return firstErr
}
