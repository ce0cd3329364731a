package survivor

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
)

// Visual characters for rendering
const (
	BlockChar   = '█'
	PieceChar   = '▓'
	PlayerLeft  = '▐'
	PlayerRight = '▌'
	OffTopChar  = '^'
)

// Each grid cell is drawn two characters wide to keep cells roughly square.
const cellChars = 2

const hudWidth = 24

var printer = message.NewPrinter(language.English)

// layout places the boxed field and the HUD panel on the screen.
type layout struct {
	fieldX, fieldY int
	fieldW, fieldH int
	hudX           int
	minW, minH     int
	tooSmall       bool
}

func layoutFor(snap sim.Snapshot, dst *core.Screen) layout {
	l := layout{
		fieldW: snap.Columns*cellChars + 2,
		fieldH: snap.Rows + 2,
	}
	l.minW = l.fieldW + hudWidth + 1
	l.minH = l.fieldH
	l.tooSmall = dst.Width() < l.minW || dst.Height() < l.minH

	l.fieldX = (dst.Width() - l.minW) / 2
	l.fieldY = (dst.Height() - l.fieldH) / 2
	l.hudX = l.fieldX + l.fieldW + 2
	return l
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Cannot start session", core.ColorRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		}
		return
	}

	snap := g.session.Snapshot()
	l := layoutFor(snap, dst)
	if l.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", l.minW, l.minH))
		return
	}

	g.renderField(dst, snap, l)
	g.renderHUD(dst, snap, l)
	g.renderOverlay(dst, snap)
}

// renderField draws the border, pile, falling pieces and player.
func (g *Game) renderField(dst *core.Screen, snap sim.Snapshot, l layout) {
	border := core.ColorGray
	switch {
	case snap.Flash:
		border = core.ColorBrightRed
	case snap.IdleWarning > 0:
		border = core.ColorYellow
	}
	dst.DrawBoxColored(core.NewRect(l.fieldX, l.fieldY, l.fieldW, l.fieldH), border)

	for _, b := range snap.Blocks {
		g.drawCell(dst, l, snap, b.X, b.Y, BlockChar, b.Color)
	}
	for _, pc := range snap.Pieces {
		for _, c := range pc.Cells {
			// Falling cells snap to the nearest row on screen
			y := math.Floor(c.Y/snap.Cell+0.5) * snap.Cell
			g.drawCell(dst, l, snap, c.X, y, PieceChar, pc.Color)
		}
	}
	g.drawPlayer(dst, l, snap)
}

func (g *Game) drawCell(dst *core.Screen, l layout, snap sim.Snapshot, x, y float64, ch rune, c core.Color) {
	col := int(math.Floor(x / snap.Cell))
	row := int(math.Floor(y / snap.Cell))
	if col < 0 || col >= snap.Columns || row < 0 || row >= snap.Rows {
		return
	}
	sx := l.fieldX + 1 + col*cellChars
	sy := l.fieldY + 1 + row
	for i := range cellChars {
		dst.SetColored(sx+i, sy, ch, c)
	}
}

// drawPlayer draws the player at half-cell horizontal resolution.
func (g *Game) drawPlayer(dst *core.Screen, l layout, snap sim.Snapshot) {
	p := snap.Player
	half := snap.Cell / cellChars
	x := core.Clamp(int(math.Floor(p.X/half)), 0, snap.Columns*cellChars-2)
	row := int(math.Floor((p.Y + p.Height/2) / snap.Cell))

	color := core.ColorBrightWhite
	if snap.IdleWarning > 0 && snap.Tick/8%2 == 0 {
		color = core.ColorBrightYellow
	}

	sx := l.fieldX + 1 + x
	if row < 0 {
		dst.SetColored(sx, l.fieldY, OffTopChar, core.ColorBrightRed)
		dst.SetColored(sx+1, l.fieldY, OffTopChar, core.ColorBrightRed)
		return
	}
	row = min(row, snap.Rows-1)
	dst.SetColored(sx, l.fieldY+1+row, PlayerLeft, color)
	dst.SetColored(sx+1, l.fieldY+1+row, PlayerRight, color)
}

// renderHUD draws the side panel.
func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot, l layout) {
	x := l.hudX
	y := l.fieldY

	line := func(text string, c core.Color) {
		if y < dst.Height() {
			dst.DrawTextColored(x, y, text, c)
		}
		y++
	}

	line("BLOCK SURVIVOR", core.ColorBrightCyan)
	y++

	switch snap.Mode {
	case sim.ModeAdventure:
		line(fmt.Sprintf("Level %d/%d", snap.Level, len(g.cfg.Levels)), core.ColorBrightWhite)
		line(snap.LevelLabel, core.ColorCyan)
	case sim.ModeTraining:
		line("Training", core.ColorBrightWhite)
	default:
		line("Free play", core.ColorBrightWhite)
	}

	label := string(snap.Difficulty)
	if tier, ok := g.cfg.Difficulty.Tier(snap.Difficulty); ok {
		label = tier.Label
	}
	line(fmt.Sprintf("%s [%s]", label, snap.Letter), core.ColorDefault)
	y++

	line(printer.Sprintf("Score: %d", snap.Score), core.ColorBrightYellow)
	if snap.Mode == sim.ModeAdventure {
		line(fmt.Sprintf("Time:  %d:%02d", snap.TimeLeft/60, snap.TimeLeft%60), core.ColorBrightWhite)
	}
	line(printer.Sprintf("Spawn: %.2fs", snap.Rates.SpawnIntervalMs/1000), core.ColorGray)
	line(printer.Sprintf("Fall:  %.1f", snap.Rates.FallSpeed), core.ColorGray)
	y++

	if snap.IdleWarning > 0 {
		line("MOVE OR BE ERASED!", core.ColorBrightRed)
		line(strings.Repeat("!", int(math.Ceil(snap.IdleWarning*float64(hudWidth-2)))), core.ColorRed)
		y++
	}
	if snap.Prompt != "" {
		for _, w := range wrap(snap.Prompt, hudWidth-2) {
			line(w, core.ColorBrightGreen)
		}
		y++
	}

	y = max(y, l.fieldY+l.fieldH-4)
	line("A/D move  SPACE jump", core.ColorGray)
	line("P pause  R restart", core.ColorGray)
	line("Q quit", core.ColorGray)
}

// renderOverlay draws pause and end-of-session messages.
func (g *Game) renderOverlay(dst *core.Screen, snap sim.Snapshot) {
	if g.paused {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}
	if snap.Phase == sim.PhaseRunning {
		return
	}

	title := "GAME OVER"
	switch snap.Reason {
	case sim.ReasonCrushed:
		title = "CRUSHED!"
	case sim.ReasonCeilingOut:
		title = "OUT OF BOUNDS"
	case sim.ReasonInactivity:
		title = "ERASED FOR STANDING STILL"
	case sim.ReasonTimeUp:
		title = "LEVEL CLEAR!"
	case sim.ReasonTrainingComplete:
		title = "TRAINING COMPLETE"
	}
	subtitle := printer.Sprintf("Score: %d  |  Press R to restart", snap.Score)
	g.drawCenteredBox(dst, title, subtitle)
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := runewidth.StringWidth(title)
	subtitleW := runewidth.StringWidth(subtitle)
	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}

// wrap splits text into lines of at most width cells on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = word
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
