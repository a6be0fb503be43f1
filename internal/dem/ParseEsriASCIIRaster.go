package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxLineLength = 64 * 1024 * 1024

// cells are preallocated up to this count, larger grids grow on append
const maxPrealloc = 1 << 22

// header collects the header keys of an ESRI ASCII grid
type header struct {
	ncols, nrows     int
	hasCols, hasRows bool
	cellSize         float64
	noData           float64
	hasNoData        bool

	xll, yll    float64
	xllIsCenter bool
	yllIsCenter bool
}

// ParseEsriASCIIRaster parses an ESRI ASCII grid.
//
// Leading lines whose first token is not a number are header lines of the
// form "<key> <value>". Only ncols, nrows, cellsize, nodata_value and the
// lower left corner/center keys are consulted, all case-sensitive; any other
// key is ignored. Every remaining token is a cell value in row-major order.
// Values equal to nodata_value are stored as NaN.
func ParseEsriASCIIRaster(reader io.Reader) (*ElevationGrid, error) {

	hdr := header{cellSize: 1.0}
	stillIsHeader := true
	lineNo := 0
	var cells []float64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		if stillIsHeader && !isNumber(fields[0]) {
			if err := parseHeaderLine(fields, &hdr); err != nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid header %q", fields[0]), Err: err}
			}
			continue
		}

		if stillIsHeader { // this is the first data line
			stillIsHeader = false

			if err := hdr.validate(); err != nil {
				return nil, err
			}
			cells = make([]float64, 0, min(hdr.ncols*hdr.nrows, maxPrealloc))
		}

		for _, field := range fields {
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid cell value %q", field), Err: err}
			}
			if hdr.hasNoData && f == hdr.noData {
				f = math.NaN()
			}
			cells = append(cells, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Msg: "reading grid", Err: err}
	}

	// a file without any data line still has to declare its shape
	if stillIsHeader {
		if err := hdr.validate(); err != nil {
			return nil, err
		}
	}

	grid, err := NewElevationGrid(hdr.ncols, hdr.nrows, hdr.cellSize, cells)
	if err != nil {
		return nil, err
	}

	grid.Xcorner = hdr.xll
	if hdr.xllIsCenter {
		grid.Xcorner -= hdr.cellSize / 2
	}
	grid.Ycorner = hdr.yll
	if hdr.yllIsCenter {
		grid.Ycorner -= hdr.cellSize / 2
	}

	return grid, nil
}

func (h *header) validate() error {
	if !h.hasCols {
		return &ParseError{Msg: "ncols is missing"}
	}
	if !h.hasRows {
		return &ParseError{Msg: "nrows is missing"}
	}
	if h.ncols > math.MaxInt/h.nrows {
		return &ParseError{Msg: fmt.Sprintf("grid of %dx%d cells is too large", h.ncols, h.nrows)}
	}
	return nil
}

func parseHeaderLine(fields []string, hdr *header) error {
	switch fields[0] {
	case "ncols", "nrows", "cellsize", "nodata_value",
		"xllcorner", "yllcorner", "xllcenter", "yllcenter":
	default:
		// unknown keys are ignored
		return nil
	}

	if len(fields) != 2 {
		return fmt.Errorf("header line must have exactly two fields, got %d", len(fields))
	}

	switch fields[0] {
	case "ncols", "nrows":
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		if i <= 0 {
			return fmt.Errorf("%s must be greater than 0", fields[0])
		}
		if fields[0] == "ncols" {
			hdr.ncols, hdr.hasCols = i, true
		} else {
			hdr.nrows, hdr.hasRows = i, true
		}

	case "cellsize":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if !(f > 0.0) {
			return fmt.Errorf("cellsize must be greater than 0")
		}
		hdr.cellSize = f

	case "nodata_value":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		hdr.noData, hdr.hasNoData = f, true

	default:
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		switch fields[0] {
		case "xllcorner":
			hdr.xll, hdr.xllIsCenter = f, false
		case "xllcenter":
			hdr.xll, hdr.xllIsCenter = f, true
		case "yllcorner":
			hdr.yll, hdr.yllIsCenter = f, false
		case "yllcenter":
			hdr.yll, hdr.yllIsCenter = f, true
		}
	}

	return nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
