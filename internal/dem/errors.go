package dem

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every error caused by malformed grid text.
var ErrParse = errors.New("dem: malformed grid")

// ErrShapeMismatch is matched when the number of cell values does not equal
// ncols * nrows.
var ErrShapeMismatch = errors.New("dem: cell count does not match grid shape")

// ErrEmptyRange is returned when a grid holds no valid (non NaN) cell, so no
// value range can be derived from it.
var ErrEmptyRange = errors.New("dem: grid has no valid cells")

// ParseError describes a malformed header or data token.
type ParseError struct {
	Line int // 1 based, 0 if the error is not tied to a line
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("dem: line %d: %s", e.Line, msg)
	}
	return "dem: " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeMismatchError is returned when the data section holds more or fewer
// values than the header declares.
type ShapeMismatchError struct {
	Width, Height int
	Got           int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("dem: expected %d cells (%dx%d), got %d", e.Width*e.Height, e.Width, e.Height, e.Got)
}

// Is reports a match for ErrShapeMismatch and, because a truncated data
// section is a malformed file as well, for ErrParse.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch || target == ErrParse
}
