package universe

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroDimension is returned when a grid dimension is zero.
	ErrZeroDimension = errors.New("universe: width and height must be positive")

	// ErrFractionalDisplay is returned by PaintCells when the square size or
	// spacing is not a whole, non-negative number of pixels.
	ErrFractionalDisplay = errors.New("universe: pixel rendering needs integral square size and spacing")
)

// ImageDataError is returned when a pixel buffer length does not match its
// declared dimensions.
type ImageDataError struct {
	Len    int
	Width  int
	Height int
}

func (e *ImageDataError) Error() string {
	return fmt.Sprintf("universe: image data of %d bytes does not match %dx%d RGBA", e.Len, e.Width, e.Height)
}
