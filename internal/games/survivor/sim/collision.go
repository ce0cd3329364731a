package sim

import "github.com/vovakirdan/block-survivor/internal/core"

// Tolerance is the collision slack applied by the oracle variants.
type Tolerance struct {
	CrushInset float64 // Shrinks a falling cell on every side before the crush test
	StandBand  float64 // How far below a block top the player's feet may sink and still stand
	WallBand   float64 // Vertical overlap a wall may have with the player without blocking it
}

// crushes reports whether a falling cell hits the player.
func (t Tolerance) crushes(cell, player core.Box) bool {
	return cell.Inset(t.CrushInset, t.CrushInset).Overlaps(player)
}

// walls reports whether a block stops horizontal movement of the player box.
// Overlap within the wall band at the player's head or feet is ignored so the
// player can slide across block edges.
func (t Tolerance) walls(player, block core.Box) bool {
	return player.Inset(0, t.WallBand).Overlaps(block)
}

// exitX is the shortest horizontal distance that takes the player clear of
// the block, through either side.
func exitX(player, block core.Box) float64 {
	return min(player.Right()-block.Left(), block.Right()-player.Left())
}

// stands reports whether the player's feet rest on the block top within the
// stand band while not moving upward.
func (t Tolerance) stands(player, block core.Box, vy float64) bool {
	if vy < 0 || !player.OverlapsX(block) {
		return false
	}
	return player.Bottom() >= block.Top() && player.Bottom() <= block.Top()+t.StandBand
}

// restsOn reports whether a falling cell has reached a settled block.
// The bottom edge uses >= so a cell exactly on a grid line counts as contact.
func restsOn(cell, block core.Box) bool {
	return cell.Left() < block.Right() && cell.Right() > block.Left() &&
		cell.Bottom() >= block.Top() && cell.Top() < block.Bottom()
}
