// Package tui 终端界面（tcell）
//
// 每个格子占 3 列：两个字符的物体代码加一个空格。
// 鼠标点击转发给会话，数字键选择建筑。
package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// 屏幕布局
const (
	cellColumns = 3 // 每个格子占用的终端列数
	gridOriginX = 2
	gridOriginY = 2
	panelGap    = 4 // 地图与右侧信息栏之间的间距
	tickRate    = 50 * time.Millisecond
)

var (
	styleDefault  = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmpty    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleResource = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBuilding = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBase     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShadow   = tcell.StyleDefault.Reverse(true)
)

// UI 终端界面
type UI struct {
	screen    tcell.Screen
	session   *game.Session
	buildable []types.ThingKind

	hover      grid.Point
	hoverValid bool
	buttons    tcell.ButtonMask // 上一次鼠标事件的按键状态，用于识别按下
	message    string
}

// New 创建终端界面，screen 需已 Init
func New(screen tcell.Screen, session *game.Session) *UI {
	cfg := session.Config()
	return &UI{
		screen:    screen,
		session:   session,
		buildable: cfg.BookKinds(session.Catalog()),
	}
}

// ScreenToGrid 终端坐标转换为网格坐标
func (u *UI) ScreenToGrid(x, y int) (grid.Point, bool) {
	cfg := u.session.Config()
	if x < gridOriginX || y < gridOriginY {
		return grid.Point{}, false
	}
	col := (x - gridOriginX) / cellColumns
	row := y - gridOriginY
	if col >= cfg.Grid.Width || row >= cfg.Grid.Height {
		return grid.Point{}, false
	}
	// 格子之间的空白列不算
	if (x-gridOriginX)%cellColumns == cellColumns-1 {
		return grid.Point{}, false
	}
	return grid.Pt(col, row), true
}

func kindStyle(kind types.ThingKind) tcell.Style {
	switch {
	case kind.IsNothing():
		return styleEmpty
	case kind == types.Base:
		return styleBase
	case kind.IsResource():
		return styleResource
	default:
		return styleBuilding
	}
}

func previewStyle(status game.PreviewStatus, base tcell.Style) tcell.Style {
	switch status {
	case game.PreviewFits, game.PreviewMatches:
		return base.Background(tcell.ColorDarkGreen)
	case game.PreviewMismatch:
		return base.Background(tcell.ColorOlive)
	case game.PreviewNoFit:
		return base.Background(tcell.ColorMaroon)
	default:
		return base
	}
}

func (u *UI) putString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Draw 绘制一帧
func (u *UI) Draw() error {
	snap, err := u.session.Snapshot(0)
	if err != nil {
		return fmt.Errorf("failed to snapshot session: %w", err)
	}

	u.screen.Clear()
	u.putString(0, 0, fmt.Sprintf("tinyspace  score %d  %v", snap.Score, snap.State), styleDefault)

	shadow := make(map[grid.Point]bool)
	if snap.Shadow != nil && snap.HasLocation {
		for p, kind := range snap.Shadow.All() {
			if !kind.IsNothing() {
				shadow[snap.Location.Add(p)] = true
			}
		}
	}

	var hoverStatus game.PreviewStatus
	if u.hoverValid {
		hoverStatus = u.session.Preview(u.hover)
	}

	for p, kind := range snap.Grid.All() {
		style := kindStyle(kind)
		if shadow[p] {
			style = styleShadow
		}
		if u.hoverValid && p == u.hover {
			style = previewStyle(hoverStatus, style)
		}
		u.putString(gridOriginX+p.X*cellColumns, gridOriginY+p.Y, kind.Code(), style)
	}

	u.drawPanel(snap)
	if u.message != "" {
		u.putString(0, gridOriginY+snap.Grid.Height()+1, u.message, styleDim)
	}

	u.screen.Show()
	return nil
}

// drawPanel 右侧信息栏：资源预览、建筑列表、按键说明
func (u *UI) drawPanel(snap game.Snapshot) {
	x := gridOriginX + snap.Grid.Width()*cellColumns + panelGap
	y := gridOriginY

	nx := u.putString(x, y, "next: ", styleDim)
	for i, kind := range snap.Upcoming {
		style := kindStyle(kind)
		if i == 0 {
			style = style.Underline(true)
		}
		nx = u.putString(nx, y, kind.Code(), style)
		nx = u.putString(nx, y, " ", styleDefault)
	}
	y += 2

	for i, kind := range u.buildable {
		style := styleDefault
		if kind == snap.Selected {
			style = styleShadow
		}
		label := fmt.Sprintf("%d %s %s", i+1, kind.Code(), catalog.DisplayName(kind.String()))
		if kind == snap.Selected {
			label += fmt.Sprintf(" (rot %d)", snap.Rotation)
		}
		u.putString(x, y, label, style)
		y++
	}
	y++
	u.putString(x, y, "click: place  r: rotate  esc: cancel", styleDim)
	u.putString(x, y+1, "n: new game  q: quit", styleDim)
}

// HandleEvent 处理一个终端事件
// 返回 true 表示退出
func (u *UI) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		return false, u.handleMouse(ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false, nil
}

func (u *UI) handleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyEscape:
		u.session.Cancel()
		u.message = ""
		return false, nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return true, nil
	case r == 'r':
		u.session.Rotate()
	case r == 'n':
		if err := u.session.Reset(); err != nil {
			return false, fmt.Errorf("failed to reset: %w", err)
		}
		u.message = "new game"
	case r >= '1' && r <= '9':
		idx := int(r - '1')
		if idx >= len(u.buildable) {
			return false, nil
		}
		if err := u.session.SelectBuilding(u.buildable[idx]); err != nil {
			log.Printf("[TUI] Warning: %v", err)
		}
	}
	return false, nil
}

func (u *UI) handleMouse(ev *tcell.EventMouse) error {
	x, y := ev.Position()
	u.hover, u.hoverValid = u.ScreenToGrid(x, y)

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
	u.buttons = buttons
	if !pressed || !u.hoverValid {
		return nil
	}

	res, err := u.session.ProcessClick(u.hover)
	if err != nil {
		u.message = "internal error, build cancelled"
		return fmt.Errorf("click at %v: %w", u.hover, err)
	}
	switch {
	case !res.Outcome.Accepted():
		u.message = "illegal move: " + res.Outcome.String()
	case res.Outcome == game.OutcomeBuildingPlaced:
		u.message = fmt.Sprintf("built %v", res.Thing)
	case res.State == cursor.BuildLocation:
		u.message = "click a highlighted cell to build"
	default:
		u.message = ""
	}
	return nil
}

// Run 事件循环：一个 goroutine 读取终端事件，主循环按固定频率推进帧并重绘
// ctx 取消或用户退出时返回；调用方负责 screen.Fini()
func (u *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	if err := u.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := u.HandleEvent(ev)
			if err != nil {
				// 内部错误只取消当前建造，界面继续运行
				log.Printf("[TUI] Error: %v", err)
			}
			if quit {
				return nil
			}
			if err := u.Draw(); err != nil {
				return err
			}
		case <-ticker.C:
			u.session.Tick()
			if err := u.Draw(); err != nil {
				return err
			}
		}
	}
}
