package sim

import "github.com/vovakirdan/block-survivor/internal/core"

// Player is the controlled body. Jumping is true while airborne.
type Player struct {
	X, Y          float64
	Width, Height float64
	VX, VY        float64
	Jumping       bool
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Grounded reports whether the player can jump.
func (p Player) Grounded() bool {
	return !p.Jumping
}

// Input is the held state of the movement controls for one tick.
type Input struct {
	Left, Right, Jump bool
}

// Active reports whether any control is held.
func (in Input) Active() bool {
	return in.Left || in.Right || in.Jump
}

// Kinematics integrates the player body against the field and the pile.
type Kinematics struct {
	Gravity     float64
	JumpImpulse float64
	MoveSpeed   float64
	FieldW      float64
	FieldH      float64
	Cell        float64
	Tolerance   Tolerance
}

// Move runs one tick of player movement. It returns true when a jump started.
func (k Kinematics) Move(p *Player, in Input, pile *Pile) bool {
	switch {
	case in.Left:
		p.VX = -k.MoveSpeed
	case in.Right:
		p.VX = k.MoveSpeed
	default:
		p.VX = 0
	}
	k.moveHorizontal(p, pile)

	// Gravity first so the jump tick leaves exactly the impulse
	p.VY += k.Gravity
	jumped := false
	if in.Jump && p.Grounded() {
		p.VY = k.JumpImpulse
		p.Jumping = true
		jumped = true
	}

	k.moveVertical(p, pile)
	return jumped
}

func (k Kinematics) moveHorizontal(p *Player, pile *Pile) {
	if p.VX == 0 {
		return
	}
	cur := p.Box()
	nx := core.ClampF(p.X+p.VX, 0, k.FieldW-p.Width)
	next := cur.Translate(nx-p.X, 0)
	for _, b := range pile.blocks {
		bb := b.Box(k.Cell)
		if !k.Tolerance.walls(next, bb) {
			continue
		}
		// A body sunk into a block may only move toward the nearer way out
		if k.Tolerance.walls(cur, bb) && exitX(next, bb) < exitX(cur, bb) {
			continue
		}
		return
	}
	p.X = nx
}

func (k Kinematics) moveVertical(p *Player, pile *Pile) {
	ny := p.Y + p.VY
	if ny+p.Height > k.FieldH {
		p.Y = k.FieldH - p.Height
		p.VY = 0
		p.Jumping = false
		return
	}

	cur := p.Box()
	next := core.NewBox(p.X, ny, p.Width, p.Height)
	falling := p.VY >= 0
	var hit core.Box
	found := false
	for _, b := range pile.blocks {
		bb := b.Box(k.Cell)
		if !next.Overlaps(bb) {
			continue
		}
		// Blocks the body is already sunk into are left for the player to walk out of
		if falling && bb.Top() < cur.Bottom()-k.Tolerance.StandBand {
			continue
		}
		if !falling && bb.Bottom() > cur.Top()+k.Tolerance.StandBand {
			continue
		}
		if !found || (falling && bb.Top() < hit.Top()) || (!falling && bb.Bottom() > hit.Bottom()) {
			hit = bb
			found = true
		}
	}

	if !found {
		p.Y = ny
		p.Jumping = true
		return
	}
	if falling {
		p.Y = hit.Top() - p.Height
		p.Jumping = false
	} else {
		p.Y = hit.Bottom()
	}
	p.VY = 0
}

// Stand re-grounds a player resting on a block top within the stand band.
// It returns true when the player was snapped.
func (k Kinematics) Stand(p *Player, pile *Pile) bool {
	var top float64
	found := false
	box := p.Box()
	for _, b := range pile.blocks {
		bb := b.Box(k.Cell)
		if !k.Tolerance.stands(box, bb, p.VY) {
			continue
		}
		if !found || bb.Top() < top {
			top = bb.Top()
			found = true
		}
	}
	if !found {
		return false
	}
	p.Y = top - p.Height
	p.VY = 0
	p.Jumping = false
	return true
}
