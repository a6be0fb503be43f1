package dem

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read reads a digital elevation model from given path. Paths ending in .gz
// are decompressed on the fly.
func Read(path string) (*ElevationGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer gz.Close()

		reader = gz
	}

	grid, err := ParseEsriASCIIRaster(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return grid, nil
}
