package sim

import (
	"fmt"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
)

// ShapeKind identifies a falling piece shape.
type ShapeKind uint8

const (
	ShapeI ShapeKind = iota
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeT
	ShapeZ
	ShapeTrio
	shapeCount
)

// Shape is the immutable matrix and color for one kind.
type Shape struct {
	Name   string
	Matrix [][]bool // Row-major, true for occupied cells
	Color  core.Color
}

// Width returns the number of matrix columns.
func (s Shape) Width() int {
	if len(s.Matrix) == 0 {
		return 0
	}
	return len(s.Matrix[0])
}

// Height returns the number of matrix rows.
func (s Shape) Height() int {
	return len(s.Matrix)
}

// Occupied returns the (row, col) of every occupied cell in row-major order.
func (s Shape) Occupied() [][2]int {
	out := make([][2]int, 0, 4)
	for row, line := range s.Matrix {
		for col, on := range line {
			if on {
				out = append(out, [2]int{row, col})
			}
		}
	}
	return out
}

var catalog = [shapeCount]Shape{
	ShapeI:    {Name: "I", Matrix: matrix("####"), Color: core.ColorCyan},
	ShapeJ:    {Name: "J", Matrix: matrix("#..", "###"), Color: core.ColorBlue},
	ShapeL:    {Name: "L", Matrix: matrix("..#", "###"), Color: core.ColorOrange},
	ShapeO:    {Name: "O", Matrix: matrix("##", "##"), Color: core.ColorYellow},
	ShapeS:    {Name: "S", Matrix: matrix(".##", "##."), Color: core.ColorGreen},
	ShapeT:    {Name: "T", Matrix: matrix(".#.", "###"), Color: core.ColorMagenta},
	ShapeZ:    {Name: "Z", Matrix: matrix("##.", ".##"), Color: core.ColorRed},
	ShapeTrio: {Name: "Trio", Matrix: matrix("#", "#", "#"), Color: core.ColorWhite},
}

func matrix(rows ...string) [][]bool {
	m := make([][]bool, len(rows))
	for i, r := range rows {
		m[i] = make([]bool, len(r))
		for j := range r {
			m[i][j] = r[j] == '#'
		}
	}
	return m
}

// Kinds returns every shape kind in catalog order.
func Kinds() []ShapeKind {
	out := make([]ShapeKind, shapeCount)
	for i := range out {
		out[i] = ShapeKind(i)
	}
	return out
}

// Shape returns the catalog entry for the kind.
func (k ShapeKind) Shape() Shape {
	if k >= shapeCount {
		return Shape{}
	}
	return catalog[k]
}

// String returns the shape name.
func (k ShapeKind) String() string {
	if k >= shapeCount {
		return fmt.Sprintf("ShapeKind(%d)", k)
	}
	return catalog[k].Name
}

// ValidateCatalog checks that every shape fits within the given column count.
func ValidateCatalog(columns int) error {
	for _, k := range Kinds() {
		s := k.Shape()
		if s.Width() == 0 || s.Height() == 0 {
			return config.ValidationError{
				Code:    "EMPTY_SHAPE",
				Message: fmt.Sprintf("shape %s has no cells", s.Name),
			}
		}
		if s.Width() > columns {
			return config.ValidationError{
				Code:    "SHAPE_TOO_WIDE",
				Message: fmt.Sprintf("shape %s is %d columns wide but the field has %d", s.Name, s.Width(), columns),
			}
		}
	}
	return nil
}
