package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/welltris/palette"
	"github.com/plus3/welltris/session"
	"github.com/plus3/welltris/well"
)

const (
	boardX = 2
	boardY = 1
	// Each cell is two terminal columns wide so the well looks square.
	cellWidth = 2

	previewCount = 3
)

type Game struct {
	screen    tcell.Screen
	session   *session.Session
	scheduler *session.Scheduler
	stats     *session.Stats
	paused    bool
}

func NewGame(s *session.Session) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()

	g := &Game{
		screen:    screen,
		session:   s,
		scheduler: session.NewGameScheduler(s),
		stats:     session.NewStats(),
	}
	g.scheduler.Subscribe(g.stats.Record)
	return g, nil
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

// handleInput maps a terminal event to session commands. It returns false
// when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.session.Enqueue(session.MoveLeft)
		case tcell.KeyRight:
			g.session.Enqueue(session.MoveRight)
		case tcell.KeyDown:
			g.session.Enqueue(session.SoftDrop)
		case tcell.KeyUp:
			g.session.Enqueue(session.RotateCW)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				g.session.Enqueue(session.HardDrop)
			case 'z':
				g.session.Enqueue(session.RotateCCW)
			case 'x':
				g.session.Enqueue(session.RotateCW)
			case 'p':
				g.paused = !g.paused
			case 'r':
				g.session.Reset()
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) draw() {
	g.screen.Clear()

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	rows := well.Height - well.SpawnRows
	for y := 0; y <= rows; y++ {
		g.screen.SetContent(boardX-1, boardY+y, '│', nil, border)
		g.screen.SetContent(boardX+well.Width*cellWidth, boardY+y, '│', nil, border)
	}
	for x := boardX - 1; x <= boardX+well.Width*cellWidth; x++ {
		g.screen.SetContent(x, boardY+rows, '─', nil, border)
	}

	for r, row := range g.session.Well.VisibleRows() {
		for c, code := range row {
			if code != well.Empty {
				g.drawCell(r, c, '█', cellStyle(code))
			}
		}
	}

	if ghost, ok := g.session.Ghost(); ok {
		g.drawPiece(ghost, '░', cellStyle(ghost.Kind.Code()))
	}
	if g.session.Active != nil {
		g.drawPiece(*g.session.Active, '█', cellStyle(g.session.Active.Kind.Code()))
	}

	state := g.session.State
	hudX := boardX + well.Width*cellWidth + 3
	lines := []string{
		fmt.Sprintf("LEVEL  %d", state.Level),
		fmt.Sprintf("LINES  %d", state.LinesCleared),
		fmt.Sprintf("PIECES %d", state.PiecesLocked),
		fmt.Sprintf("TETRIS %d", g.stats.Clears(4)),
	}
	switch {
	case state.GameOver:
		lines = append(lines, "", "GAME OVER", "r restart, q quit")
	case g.paused:
		lines = append(lines, "", "PAUSED")
	}
	for i, line := range lines {
		g.drawText(hudX, boardY+i, line, tcell.StyleDefault)
	}

	nextY := boardY + len(lines) + 1
	g.drawText(hudX, nextY, "NEXT", tcell.StyleDefault)
	for i, kind := range g.session.Upcoming(previewCount) {
		style := cellStyle(kind.Code())
		for _, cell := range kind.Shape(0).Cells() {
			x := hudX + cell.Col*cellWidth
			y := nextY + 1 + i*3 + cell.Row
			for j := 0; j < cellWidth; j++ {
				g.screen.SetContent(x+j, y, '█', nil, style)
			}
		}
	}

	g.screen.Show()
}

func cellStyle(code well.Cell) tcell.Style {
	c := palette.RGBA(code)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (g *Game) drawCell(row, col int, ch rune, style tcell.Style) {
	x := boardX + col*cellWidth
	for i := 0; i < cellWidth; i++ {
		g.screen.SetContent(x+i, boardY+row, ch, nil, style)
	}
}

func (g *Game) drawPiece(piece well.Piece, ch rune, style tcell.Style) {
	for _, cell := range piece.Shape().Cells() {
		row := piece.Position.Row + cell.Row - well.SpawnRows
		if row < 0 {
			continue
		}
		g.drawCell(row, piece.Position.Col+cell.Col, ch, style)
	}
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		g.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (g *Game) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !g.paused {
				g.scheduler.Once(dt)
			}
			g.draw()
		}
	}
}

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the piece bag.")
	fps := flag.Int("fps", 60, "Ticks per second.")
	level := flag.Int("level", 1, "Starting level, also used on restart.")
	logFile := flag.String("log", "", "Write session log to this file.")
	flag.Parse()

	config := session.DefaultConfig()
	config.StartLevel = *level
	if *level < 1 {
		log.Fatalf("welltris-term: -level must be at least 1, got %d", *level)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("welltris-term: invalid settings: %v", err)
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		config.Logger = log.New(f, "welltris ", log.LstdFlags)
	}

	game, err := NewGame(session.New(config, session.NewBagSupplier(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run(time.Second / time.Duration(max(*fps, 1)))
}
