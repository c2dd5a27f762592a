package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/welltris/palette"
	"github.com/plus3/welltris/session"
	"github.com/plus3/welltris/well"
)

const (
	CellSize     = 28
	BoardX       = 40
	BoardY       = 40
	ScreenWidth  = BoardX*2 + well.Width*CellSize + 180
	ScreenHeight = BoardY*2 + (well.Height-well.SpawnRows)*CellSize
)

// Bindings are checked in order so that a hard drop pressed together with a
// move lands after the move.
var keymap = []struct {
	key ebiten.Key
	cmd session.Command
}{
	{ebiten.KeyArrowLeft, session.MoveLeft},
	{ebiten.KeyArrowRight, session.MoveRight},
	{ebiten.KeyArrowUp, session.RotateCW},
	{ebiten.KeyX, session.RotateCW},
	{ebiten.KeyZ, session.RotateCCW},
	{ebiten.KeyArrowDown, session.SoftDrop},
	{ebiten.KeySpace, session.HardDrop},
}

// Keys that repeat while held.
var repeating = map[ebiten.Key]bool{
	ebiten.KeyArrowLeft:  true,
	ebiten.KeyArrowRight: true,
	ebiten.KeyArrowDown:  true,
}

const (
	repeatDelay = 12 // ticks
	repeatRate  = 3  // ticks
)

const (
	previewCount    = 3
	previewCellSize = 14
)

type Game struct {
	session   *session.Session
	scheduler *session.Scheduler
	stats     *session.Stats
	debug     *DebugUI // nil unless -debug

	paused bool
	step   bool
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.BeginFrame()
		defer g.debug.EndFrame()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.debug != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.Visible = !g.debug.Visible
	}

	if g.debug == nil || !g.debug.WantsKeyboard() {
		g.handleInput()
	}

	if !g.paused || g.step {
		g.scheduler.Once(1.0 / float64(ebiten.TPS()))
		g.step = false
	}

	if g.debug != nil {
		g.debug.Render(g)
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	for _, binding := range keymap {
		if pressed(binding.key) {
			g.session.Enqueue(binding.cmd)
		}
	}
}

func pressed(key ebiten.Key) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	if !repeating[key] {
		return false
	}
	d := inpututil.KeyPressDuration(key)
	return d > repeatDelay && (d-repeatDelay)%repeatRate == 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	vector.StrokeRect(screen, BoardX-2, BoardY-2, well.Width*CellSize+4, (well.Height-well.SpawnRows)*CellSize+4, 2, color.Gray{Y: 128}, false)

	for r, row := range g.session.Well.VisibleRows() {
		for c, code := range row {
			drawCell(screen, r, c, palette.RGBA(code))
		}
	}

	if ghost, ok := g.session.Ghost(); ok {
		drawPiece(screen, ghost, palette.Ghost(ghost.Kind.Code()))
	}
	if g.session.Active != nil {
		drawPiece(screen, *g.session.Active, palette.RGBA(g.session.Active.Kind.Code()))
	}

	state := g.session.State
	hud := fmt.Sprintf("LEVEL  %d\nLINES  %d\nPIECES %d\nTETRIS %d",
		state.Level, state.LinesCleared, state.PiecesLocked, g.stats.Clears(4))
	ebitenutil.DebugPrintAt(screen, hud, BoardX+well.Width*CellSize+24, BoardY)

	ebitenutil.DebugPrintAt(screen, "NEXT", BoardX+well.Width*CellSize+24, BoardY+90)
	for i, kind := range g.session.Upcoming(previewCount) {
		drawPreview(screen, kind, BoardX+well.Width*CellSize+24, BoardY+110+i*(well.ShapeSize*previewCellSize+8))
	}

	switch {
	case state.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nPress R to restart", BoardX+60, BoardY+(well.Height-well.SpawnRows)*CellSize/2)
	case g.paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", BoardX+110, BoardY+(well.Height-well.SpawnRows)*CellSize/2)
	}

	if g.debug != nil {
		g.debug.Draw(screen)
	}
}

// drawPreview draws a kind in its spawn rotation with its top-left at x, y.
func drawPreview(screen *ebiten.Image, kind well.Kind, x, y int) {
	clr := palette.RGBA(kind.Code())
	for _, cell := range kind.Shape(0).Cells() {
		px := float32(x + cell.Col*previewCellSize)
		py := float32(y + cell.Row*previewCellSize)
		vector.DrawFilledRect(screen, px+1, py+1, previewCellSize-2, previewCellSize-2, clr, false)
	}
}

// drawCell draws one cell given in visible-row coordinates.
func drawCell(screen *ebiten.Image, row, col int, clr color.Color) {
	x := float32(BoardX + col*CellSize)
	y := float32(BoardY + row*CellSize)
	vector.DrawFilledRect(screen, x+1, y+1, CellSize-2, CellSize-2, clr, false)
}

func drawPiece(screen *ebiten.Image, piece well.Piece, clr color.Color) {
	for _, cell := range piece.Shape().Cells() {
		row := piece.Position.Row + cell.Row - well.SpawnRows
		col := piece.Position.Col + cell.Col
		if row < 0 {
			continue
		}
		drawCell(screen, row, col, clr)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width := ScreenWidth
	if g.debug != nil {
		width += DebugPanelWidth
		g.debug.Layout(width, ScreenHeight)
	}
	return width, ScreenHeight
}

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the piece bag.")
	level := flag.Int("level", 1, "Starting level, also used on restart.")
	lockDelay := flag.Duration("lock-delay", 500*time.Millisecond, "How long a resting piece may still move before it locks.")
	debug := flag.Bool("debug", false, "Enable the debug overlay (toggle with F1).")
	flag.Parse()

	config := session.DefaultConfig()
	config.StartLevel = *level
	config.LockDelay = lockDelay.Seconds()
	config.Logger = log.Default()
	if *level < 1 {
		log.Fatalf("welltris: -level must be at least 1, got %d", *level)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("welltris: invalid settings: %v", err)
	}

	s := session.New(config, session.NewBagSupplier(*seed))
	game := &Game{
		session:   s,
		scheduler: session.NewGameScheduler(s),
		stats:     session.NewStats(),
	}
	game.scheduler.Subscribe(game.stats.Record)

	if *debug {
		game.debug = newDebugUI("welltris", ScreenWidth+DebugPanelWidth, ScreenHeight, true)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("welltris")
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("welltris: %v", err)
		os.Exit(1)
	}
}
