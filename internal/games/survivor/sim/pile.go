package sim

import (
	"math"
	"math/bits"
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Block is one settled grid cell.
type Block struct {
	X, Y  float64
	Color core.Color
}

// Box returns the block's bounding box for the given cell size.
func (b Block) Box(cell float64) core.Box {
	return core.NewBox(b.X, b.Y, cell, cell)
}

// Pile owns the settled blocks and tracks which columns of each row are filled.
type Pile struct {
	blocks  []Block
	rows    *intmap.Map[int, uint64] // row index -> occupied column mask
	columns int
	cell    float64
}

// NewPile creates an empty pile for a field of the given width.
func NewPile(columns int, cell float64) *Pile {
	return &Pile{
		blocks:  make([]Block, 0, 64),
		rows:    intmap.New[int, uint64](32),
		columns: columns,
		cell:    cell,
	}
}

// Len returns the number of settled blocks.
func (p *Pile) Len() int {
	return len(p.blocks)
}

// Blocks returns a copy of the settled blocks.
func (p *Pile) Blocks() []Block {
	out := make([]Block, len(p.blocks))
	copy(out, p.blocks)
	return out
}

// Add merges blocks into the pile.
func (p *Pile) Add(blocks ...Block) {
	for _, b := range blocks {
		p.blocks = append(p.blocks, b)
		p.mark(b)
	}
}

// Reset removes every block.
func (p *Pile) Reset() {
	p.blocks = p.blocks[:0]
	p.rows.Clear()
}

func (p *Pile) rowOf(y float64) int {
	return int(math.Floor(y / p.cell))
}

func (p *Pile) colOf(x float64) int {
	return int(math.Floor(x / p.cell))
}

func (p *Pile) mark(b Block) {
	row := p.rowOf(b.Y)
	mask, _ := p.rows.Get(row)
	p.rows.Put(row, mask|1<<uint(p.colOf(b.X)))
}

// full reports whether every column of the row is occupied.
func (p *Pile) full(row int) bool {
	mask, ok := p.rows.Get(row)
	return ok && bits.OnesCount64(mask) == p.columns
}

// ReachesY reports whether any block's top is at or above y.
func (p *Pile) ReachesY(y float64) bool {
	for _, b := range p.blocks {
		if b.Y <= y {
			return true
		}
	}
	return false
}

// ClearFullRows removes every full row and compacts the pile downward.
// Each remaining block drops one cell per cleared row below it. The player,
// if given, drops one cell per cleared row below its top edge.
// Returns the number of cleared rows; with no full row nothing changes.
func (p *Pile) ClearFullRows(player *Player) int {
	var cleared []float64
	seen := make(map[int]bool)
	for _, b := range p.blocks {
		row := p.rowOf(b.Y)
		if seen[row] {
			continue
		}
		seen[row] = true
		if p.full(row) {
			cleared = append(cleared, float64(row)*p.cell)
		}
	}
	if len(cleared) == 0 {
		return 0
	}
	sort.Float64s(cleared)

	below := func(y float64) int {
		n := 0
		for _, rowY := range cleared {
			if y < rowY {
				n++
			}
		}
		return n
	}

	kept := p.blocks[:0]
	for _, b := range p.blocks {
		if p.full(p.rowOf(b.Y)) {
			continue
		}
		b.Y += float64(below(b.Y)) * p.cell
		kept = append(kept, b)
	}
	p.blocks = kept

	p.rows.Clear()
	for _, b := range p.blocks {
		p.mark(b)
	}

	if player != nil {
		player.Y += float64(below(player.Y)) * p.cell
	}
	return len(cleared)
}
