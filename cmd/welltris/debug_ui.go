package main

import (
	"fmt"
	"sort"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/welltris/palette"
	"github.com/plus3/welltris/session"
	"github.com/plus3/welltris/well"
)

const (
	latencyHistorySize = 120
	// DebugPanelWidth is added to the right of the board when the overlay
	// is enabled.
	DebugPanelWidth = 400
)

// DebugUI is a Dear ImGui overlay showing scheduler timings, session tallies
// and tick controls. F1 toggles it.
type DebugUI struct {
	backend *ebitenbackend.EbitenBackend
	Visible bool

	// Per-system latency history in milliseconds, a ring indexed by offset.
	latency map[string][]float32
	offset  int
}

// newDebugUI creates the game window through the ImGui backend.
func newDebugUI(title string, width, height int, visible bool) *DebugUI {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &DebugUI{
		backend: backend,
		Visible: visible,
		latency: make(map[string][]float32),
	}
}

func (d *DebugUI) BeginFrame() {
	d.backend.BeginFrame()
}

func (d *DebugUI) EndFrame() {
	d.backend.EndFrame()
}

func (d *DebugUI) Draw(screen *ebiten.Image) {
	d.backend.Draw(screen)
}

func (d *DebugUI) Layout(width, height int) {
	d.backend.Layout(width, height)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus, in which
// case key presses are not game input.
func (d *DebugUI) WantsKeyboard() bool {
	return d.Visible && imgui.CurrentIO().WantCaptureKeyboard()
}

// Render records the latest scheduler timings and, when visible, builds
// this frame's windows. Call it between BeginFrame and EndFrame.
func (d *DebugUI) Render(g *Game) {
	stats := g.scheduler.Stats()
	d.sample(stats)
	if !d.Visible {
		return
	}

	d.systemsWindow(stats)
	d.sessionWindow(g)
	d.controlWindow(g)
}

func (d *DebugUI) sample(stats session.SchedulerStats) {
	for _, sys := range stats.Systems {
		if d.latency[sys.Name] == nil {
			d.latency[sys.Name] = make([]float32, latencyHistorySize)
		}
		d.latency[sys.Name][d.offset] = float32(sys.LastDuration.Microseconds()) / 1000.0
	}
	d.offset = (d.offset + 1) % latencyHistorySize
}

// history returns a system's latency samples oldest first.
func (d *DebugUI) history(name string) []float32 {
	ring := d.latency[name]
	samples := make([]float32, latencyHistorySize)
	copy(samples, ring[d.offset:])
	copy(samples[latencyHistorySize-d.offset:], ring[:d.offset])
	return samples
}

func (d *DebugUI) systemsWindow(stats session.SchedulerStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(ScreenWidth+10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 300), imgui.CondOnce)

	if imgui.BeginV("System Performance", nil, 0) {
		imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
		imgui.Separator()

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()

				imgui.TableNextColumn()
				imgui.Text(sys.Name)

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
			}
			imgui.EndTable()
		}

		imgui.Separator()
		imgui.Text("System Latency (ms)")

		// Stable order for the graphs.
		names := make([]string, 0, len(d.latency))
		for name := range d.latency {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			samples := d.history(name)
			imgui.Text(name)
			imgui.PlotLinesFloatPtr("##"+name, &samples[0], int32(len(samples)))
		}

		imgui.End()
	}
}

func (d *DebugUI) sessionWindow(g *Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(ScreenWidth+10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 230), imgui.CondOnce)

	if imgui.BeginV("Session", nil, 0) {
		state := g.session.State
		imgui.Text(fmt.Sprintf("Level: %d  Lines: %d  Pieces: %d", state.Level, state.LinesCleared, state.PiecesLocked))
		imgui.Text(fmt.Sprintf("Fall Speed: %.2f rows/s", g.session.FallSpeed()))
		imgui.Text(fmt.Sprintf("Timers: fall %.2f  lock %.2f  spawn %.2f", state.FallTimer, state.LockTimer, state.SpawnTimer))
		if g.session.Active != nil {
			imgui.Text(fmt.Sprintf("Active: %s", g.session.Active))
		}
		imgui.Separator()

		imgui.Text(fmt.Sprintf("Games: %d  Highest Level: %d", g.stats.Games, g.stats.HighestLevel))
		imgui.Text("Clears:")
		imgui.Indent()
		for _, lines := range []int{1, 2, 3, 4} {
			imgui.Text(fmt.Sprintf("%d row: %d", lines, g.stats.Clears(lines)))
		}
		imgui.Unindent()

		imgui.Text("Spawns:")
		imgui.Indent()
		for _, kind := range well.Kinds {
			c := palette.RGBA(kind.Code())
			imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(
				float32(c.R)/255.0,
				float32(c.G)/255.0,
				float32(c.B)/255.0,
				1.0,
			))
			imgui.Text(fmt.Sprintf("■ %s: %d", kind, g.stats.Spawns(kind)))
			imgui.PopStyleColor()
		}
		imgui.Unindent()

		imgui.End()
	}
}

func (d *DebugUI) controlWindow(g *Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(ScreenWidth+10, 560), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 70), imgui.CondOnce)

	if imgui.BeginV("Control", nil, 0) {
		if g.paused {
			if imgui.Button("Resume") {
				g.paused = false
			}
			imgui.SameLine()
			if imgui.Button("1 Tick") {
				g.step = true
			}
			imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
		} else {
			if imgui.Button("Pause") {
				g.paused = true
			}
			imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
		}

		if imgui.Button("Restart") {
			g.session.Reset()
		}

		imgui.End()
	}
}
