package tui

import (
	"testing"

	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/gdamore/tcell/v2"
)

func newTestUI(t *testing.T) (*UI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.DefaultSessionConfig()
	cfg.Queue.Seed = 3
	session, err := game.NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return New(screen, session), screen
}

func readCell(screen tcell.SimulationScreen, p grid.Point) string {
	x := gridOriginX + p.X*cellColumns
	y := gridOriginY + p.Y
	a, _, _, _ := screen.GetContent(x, y)
	b, _, _, _ := screen.GetContent(x+1, y)
	return string([]rune{a, b})
}

func TestDrawGrid(t *testing.T) {
	ui, screen := newTestUI(t)
	if err := ui.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if got := readCell(screen, grid.Pt(2, 3)); got != "BS" {
		t.Errorf("base cell = %q, want BS", got)
	}
	if got := readCell(screen, grid.Pt(0, 0)); got != ".." {
		t.Errorf("empty cell = %q, want ..", got)
	}
}

func TestScreenToGrid(t *testing.T) {
	ui, _ := newTestUI(t)

	tests := []struct {
		name      string
		x, y      int
		want      grid.Point
		wantValid bool
	}{
		{"第一个格子", gridOriginX, gridOriginY, grid.Pt(0, 0), true},
		{"格子第二列", gridOriginX + 1, gridOriginY, grid.Pt(0, 0), true},
		{"格子之间的空白", gridOriginX + 2, gridOriginY, grid.Point{}, false},
		{"最后一个格子", gridOriginX + 4*cellColumns, gridOriginY + 6, grid.Pt(4, 6), true},
		{"地图右侧", gridOriginX + 5*cellColumns, gridOriginY, grid.Point{}, false},
		{"标题行", gridOriginX, 0, grid.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ui.ScreenToGrid(tt.x, tt.y)
			if ok != tt.wantValid || (ok && got != tt.want) {
				t.Errorf("ScreenToGrid(%d, %d) = %v, %v", tt.x, tt.y, got, ok)
			}
		})
	}
}

func TestMouseClickPlacesResource(t *testing.T) {
	ui, screen := newTestUI(t)
	snap, _ := ui.session.Snapshot(1)
	want := snap.Upcoming[0]

	x, y := gridOriginX+2*cellColumns, gridOriginY+2
	if _, err := ui.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	// 按住不放不会重复点击
	if _, err := ui.HandleEvent(tcell.NewEventMouse(x, y+1, tcell.Button1, tcell.ModNone)); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	if kind, _ := ui.session.Cell(grid.Pt(2, 2)); kind != want {
		t.Fatalf("cell (2, 2) = %v, want %v", kind, want)
	}
	if kind, _ := ui.session.Cell(grid.Pt(2, 3)); kind != types.Base {
		t.Fatalf("drag must not click again, base cell = %v", kind)
	}

	if err := ui.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if got := readCell(screen, grid.Pt(2, 2)); got != want.Code() {
		t.Errorf("placed cell renders as %q, want %q", got, want.Code())
	}
}

func TestRejectedClickShowsMessage(t *testing.T) {
	ui, _ := newTestUI(t)
	_, _ = ui.HandleEvent(tcell.NewEventMouse(gridOriginX, gridOriginY, tcell.Button1, tcell.ModNone))
	if ui.message != "illegal move: Disconnected" {
		t.Errorf("message = %q", ui.message)
	}
}

func TestKeys(t *testing.T) {
	ui, _ := newTestUI(t)
	key := func(r rune) bool {
		t.Helper()
		quit, err := ui.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		if err != nil {
			t.Fatalf("HandleEvent(%q) failed: %v", r, err)
		}
		return quit
	}

	key('2')
	snap, _ := ui.session.Snapshot(0)
	if snap.State != cursor.BuildOutline || snap.Selected != ui.buildable[1] {
		t.Fatalf("after '2': state %v selected %v", snap.State, snap.Selected)
	}

	key('r')
	if snap, _ = ui.session.Snapshot(0); snap.Rotation != 1 {
		t.Errorf("rotation = %d, want 1", snap.Rotation)
	}

	_, _ = ui.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if ui.session.CursorState() != cursor.ResourcePlacement {
		t.Errorf("Esc should cancel, state = %v", ui.session.CursorState())
	}

	key('9') // 超出列表，忽略
	if ui.session.CursorState() != cursor.ResourcePlacement {
		t.Error("out-of-range digit must be ignored")
	}

	if key('n') {
		t.Error("'n' must not quit")
	}
	if !key('q') {
		t.Error("'q' should quit")
	}
	quit, _ := ui.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if !quit {
		t.Error("Ctrl-C should quit")
	}
}
