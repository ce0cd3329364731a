package sim

import (
	"math"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Piece is an active falling shape. X is grid aligned; Y is continuous.
type Piece struct {
	Kind  ShapeKind
	X, Y  float64
	Color core.Color
}

// CellBoxes returns the bounding box of every occupied cell.
func (p Piece) CellBoxes(cell float64) []core.Box {
	occ := p.Kind.Shape().Occupied()
	out := make([]core.Box, len(occ))
	for i, rc := range occ {
		out[i] = core.NewBox(p.X+float64(rc[1])*cell, p.Y+float64(rc[0])*cell, cell, cell)
	}
	return out
}

// Blocks converts the piece into grid-aligned blocks, snapping Y down to the
// nearest grid line.
func (p Piece) Blocks(cell float64) []Block {
	snapped := math.Floor(p.Y/cell) * cell
	occ := p.Kind.Shape().Occupied()
	out := make([]Block, len(occ))
	for i, rc := range occ {
		out[i] = Block{
			X:     p.X + float64(rc[1])*cell,
			Y:     snapped + float64(rc[0])*cell,
			Color: p.Color,
		}
	}
	return out
}

// Faller advances falling pieces and settles them into the pile.
type Faller struct {
	FieldH    float64
	Cell      float64
	Tolerance Tolerance
	Lethal    bool // False in training: piece contact never crushes
}

// FallResult reports what happened to the pieces during one tick.
type FallResult struct {
	Settled []Piece
	Crushed bool
}

// Advance moves every piece down by speed, tests it against the player, the
// floor and the pile, and merges settled pieces into the pile. Pieces settled
// earlier in the same call count as pile for later ones. The returned slice
// holds the pieces still falling.
func (f Faller) Advance(pieces []Piece, speed float64, pile *Pile, player core.Box) ([]Piece, FallResult) {
	var res FallResult
	active := pieces[:0]

	for _, pc := range pieces {
		pc.Y += speed
		cells := pc.CellBoxes(f.Cell)

		settled := false
		for _, c := range cells {
			if f.Lethal && f.Tolerance.crushes(c, player) {
				res.Crushed = true
			}
			if c.Bottom() >= f.FieldH {
				settled = true
			}
		}

		if !settled {
			settled = f.touchesPile(cells, pile)
		}

		if settled {
			pile.Add(pc.Blocks(f.Cell)...)
			res.Settled = append(res.Settled, pc)
			continue
		}
		active = append(active, pc)
	}
	return active, res
}

func (f Faller) touchesPile(cells []core.Box, pile *Pile) bool {
	for _, b := range pile.blocks {
		bb := b.Box(f.Cell)
		for _, c := range cells {
			if restsOn(c, bb) {
				return true
			}
		}
	}
	return false
}
