package tiling

import (
	"fmt"
	"strings"
)

// Axis selects the dimension a split divides.
type Axis int

const (
	// AxisHorizontal halves the width; the new pane is placed to the right.
	AxisHorizontal Axis = iota
	// AxisVertical halves the height; the new pane is placed below.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

func (a Axis) short() string {
	if a == AxisVertical {
		return "v"
	}
	return "h"
}

// ParseAxis accepts "horizontal"/"h"/"x" and "vertical"/"v"/"y".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "x":
		return AxisHorizontal, nil
	case "vertical", "v", "y":
		return AxisVertical, nil
	}
	return AxisHorizontal, fmt.Errorf("unknown split axis %q", s)
}

// Coord addresses a grid cell.
type Coord struct {
	Row int
	Col int
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Rect is a rectangle of grid cells anchored at its top-left corner.
type Rect struct {
	Row    int
	Col    int
	Width  int
	Height int
}

// Origin returns the top-left cell.
func (r Rect) Origin() Coord {
	return Coord{Row: r.Row, Col: r.Col}
}

func (r Rect) Area() int {
	return r.Width * r.Height
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(c Coord) bool {
	return c.Row >= r.Row && c.Row < r.Row+r.Height &&
		c.Col >= r.Col && c.Col < r.Col+r.Width
}

// Overlaps reports whether the two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.Col < o.Col+o.Width && o.Col < r.Col+r.Width &&
		r.Row < o.Row+o.Height && o.Row < r.Row+r.Height
}

// extent returns the size of the rectangle along the axis.
func (r Rect) extent(a Axis) int {
	if a == AxisVertical {
		return r.Height
	}
	return r.Width
}

// canSplit reports whether the rectangle has at least two cells along the axis.
func (r Rect) canSplit(a Axis) bool {
	return r.extent(a) >= 2
}

// splittable reports whether the rectangle can be split along any axis.
func (r Rect) splittable() bool {
	return r.Width > 1 || r.Height > 1
}

// split divides the rectangle in two along the axis. The first half keeps the
// origin and extent/2 cells; the second half receives the remainder so odd
// extents never lose a cell.
func (r Rect) split(a Axis) (first, second Rect) {
	first, second = r, r
	switch a {
	case AxisVertical:
		first.Height = r.Height / 2
		second.Row = r.Row + first.Height
		second.Height = r.Height - first.Height
	default:
		first.Width = r.Width / 2
		second.Col = r.Col + first.Width
		second.Width = r.Width - first.Width
	}
	return first, second
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d:%dx%d", r.Row, r.Col, r.Width, r.Height)
}

// side names the edge of a rectangle that grows during a merge.
type side int

const (
	sideLeft side = iota
	sideRight
	sideTop
	sideBottom
)

// mergeSide returns the edge of the kept subtree that faces the removed
// child, given the axis of their parent split.
func mergeSide(a Axis, removedFirst bool) side {
	switch {
	case a == AxisVertical && removedFirst:
		return sideTop
	case a == AxisVertical:
		return sideBottom
	case removedFirst:
		return sideLeft
	default:
		return sideRight
	}
}

// along reports whether growth on s runs along the split axis a.
func (s side) along(a Axis) bool {
	if a == AxisVertical {
		return s == sideTop || s == sideBottom
	}
	return s == sideLeft || s == sideRight
}

// grow extends r over the freed rectangle on the given side.
func (r Rect) grow(s side, freed Rect) Rect {
	switch s {
	case sideLeft:
		r.Col = freed.Col
		r.Width += freed.Width
	case sideRight:
		r.Width += freed.Width
	case sideTop:
		r.Row = freed.Row
		r.Height += freed.Height
	case sideBottom:
		r.Height += freed.Height
	}
	return r
}
