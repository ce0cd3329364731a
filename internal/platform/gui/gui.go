// Package gui runs Block Survivor in a window with Ebitengine.
// Unlike the terminal, the window reports real key state, so movement is
// read directly from held keys.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/platform/results"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

// HUD panel width in logical pixels.
const hudWidth = 220

var printer = message.NewPrinter(language.English)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	fieldColor      = color.RGBA{28, 28, 40, 255}
	gridColor       = color.RGBA{36, 36, 52, 255}
	flashColor      = color.RGBA{120, 24, 24, 255}
	warnColor       = color.RGBA{200, 160, 0, 255}
)

// CueSink receives the presentational cues raised by each tick.
type CueSink interface {
	Play(c core.Cue)
}

// Options configures the window.
type Options struct {
	Player string
	Sound  CueSink
	Scale  float64 // Window size relative to the field, default 1
}

// App implements ebiten.Game around a survivor game.
type App struct {
	game       *survivor.Game
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	state      core.GameState
	scoreSaved bool
	snap       sim.Snapshot
	hasSnap    bool
}

// NewApp creates the windowed frontend.
func NewApp(game *survivor.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *App {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	a := &App{game: game, store: store, config: cfg, opts: opts}
	a.reset()
	return a
}

func (a *App) reset() {
	a.game.Reset(a.config)
	a.state = a.game.State()
	a.scoreSaved = false
	a.snap, a.hasSnap = a.game.Snapshot()
}

// frame builds the input frame from the current keyboard state.
func frame() core.InputFrame {
	in := core.NewInputFrame()
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Set(core.ActionLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Set(core.ActionRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Set(core.ActionJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	return in
}

// Update advances the game by one tick.
func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if a.state.GameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			a.config.Seed = time.Now().UnixNano()
			a.reset()
		}
	}

	result := a.game.Step(frame())
	a.state = result.State
	if a.opts.Sound != nil {
		for _, c := range result.Cues {
			a.opts.Sound.Play(c)
		}
	}
	if a.state.GameOver && !a.scoreSaved {
		//nolint:errcheck // Best-effort save, game continues regardless
		results.Save(a.store, a.game, a.opts.Player, a.state)
		a.scoreSaved = true
	}

	a.snap, a.hasSnap = a.game.Snapshot()
	return nil
}

// Draw renders the field and the HUD.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if !a.hasSnap {
		msg := "Cannot start session"
		if err := a.game.Err(); err != nil {
			msg += "\n" + err.Error()
		}
		ebitenutil.DebugPrintAt(screen, msg, 16, 16)
		return
	}

	s := a.snap
	fw, fh := float32(s.FieldW), float32(s.FieldH)

	bg := fieldColor
	if s.Flash {
		bg = flashColor
	}
	vector.DrawFilledRect(screen, 0, 0, fw, fh, bg, false)
	for c := 1; c < s.Columns; c++ {
		x := float32(float64(c) * s.Cell)
		vector.StrokeLine(screen, x, 0, x, fh, 1, gridColor, false)
	}

	cell := float32(s.Cell)
	for _, b := range s.Blocks {
		drawCell(screen, float32(b.X), float32(b.Y), cell, b.Color)
	}
	for _, p := range s.Pieces {
		for _, c := range p.Cells {
			drawCell(screen, float32(c.X), float32(c.Y), cell, p.Color)
		}
	}

	pl := s.Player
	playerColor := color.RGBA{240, 240, 240, 255}
	if s.IdleWarning > 0 && s.Tick/8%2 == 0 {
		playerColor = color.RGBA{255, 220, 60, 255}
	}
	vector.DrawFilledRect(screen, float32(pl.X), float32(pl.Y), float32(pl.Width), float32(pl.Height), playerColor, false)

	if s.IdleWarning > 0 {
		vector.StrokeRect(screen, 1, 1, fw-2, fh-2, 3, warnColor, false)
	}

	a.drawHUD(screen, s)
}

// drawCell draws one unit block with a darker outline.
func drawCell(dst *ebiten.Image, x, y, size float32, c core.Color) {
	r, g, b := c.RGB()
	vector.DrawFilledRect(dst, x, y, size, size, color.RGBA{r, g, b, 255}, false)
	vector.StrokeRect(dst, x+1, y+1, size-2, size-2, 2, color.RGBA{r / 2, g / 2, b / 2, 255}, false)
}

func (a *App) drawHUD(screen *ebiten.Image, s sim.Snapshot) {
	x := int(s.FieldW) + 16
	y := 16
	line := func(text string) {
		ebitenutil.DebugPrintAt(screen, text, x, y)
		y += 16
	}

	line("BLOCK SURVIVOR")
	y += 8
	switch s.Mode {
	case sim.ModeAdventure:
		line(fmt.Sprintf("Level %d: %s", s.Level, s.LevelLabel))
		line(fmt.Sprintf("Time  %d:%02d", s.TimeLeft/60, s.TimeLeft%60))
	case sim.ModeTraining:
		line("Training")
	default:
		line("Free play")
	}
	line(fmt.Sprintf("Difficulty [%s]", s.Letter))
	line(printer.Sprintf("Score %d", s.Score))
	y += 8

	if s.Prompt != "" {
		line(s.Prompt)
	}
	if s.IdleWarning > 0 {
		line("MOVE OR BE ERASED!")
	}
	if a.state.Paused {
		line("PAUSED")
	}
	if s.Phase.Terminal() {
		line(s.Reason.String())
		line("R restart  ESC quit")
	}

	y = int(s.FieldH) - 56
	line("A/D move")
	line("SPACE jump  P pause")
	line("Q quit")
}

// Layout keeps the logical screen at field size plus the HUD panel.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.logicalSize()
}

func (a *App) logicalSize() (int, int) {
	if !a.hasSnap {
		return 640, 480
	}
	return int(a.snap.FieldW) + hudWidth, int(a.snap.FieldH)
}

// Run opens the window and blocks until it is closed.
func Run(game *survivor.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	app := NewApp(game, store, cfg, opts)

	w, h := app.logicalSize()
	ebiten.SetWindowSize(int(float64(w)*app.opts.Scale), int(float64(h)*app.opts.Scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
