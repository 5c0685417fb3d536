package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidGeometry is returned for geometry strings not in WIDTHxHEIGHT+X+Y form.
var ErrInvalidGeometry = errors.New("invalid geometry")

var geometryPattern = regexp.MustCompile(`^(\d+)x(\d+)\+(\d+)\+(\d+)$`)

// Geometry is a window size and position in screen pixels.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ParseGeometry parses an X11-style "800x600+10+20" geometry string.
func ParseGeometry(s string) (Geometry, error) {
	m := geometryPattern.FindStringSubmatch(s)
	if m == nil {
		return Geometry{}, fmt.Errorf("%w %q (expected WIDTHxHEIGHT+X+Y)", ErrInvalidGeometry, s)
	}

	var nums [4]int
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Geometry{}, fmt.Errorf("%w %q: %v", ErrInvalidGeometry, s, err)
		}
		nums[i] = n
	}
	if nums[0] == 0 || nums[1] == 0 {
		return Geometry{}, fmt.Errorf("%w %q: width and height must be positive", ErrInvalidGeometry, s)
	}

	return Geometry{
		Width:  nums[0],
		Height: nums[1],
		X:      nums[2],
		Y:      nums[3],
	}, nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}
