package app

import (
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// flashTicks 新放置物体的高亮帧数
const flashTicks = 20

// drawWorld 绘制地图、待确认的建筑和悬停提示
func (a *App) drawWorld(screen *ebiten.Image, snap game.Snapshot) {
	l := a.layout
	labels := a.settings.Settings().ShowLabels

	for p, kind := range snap.Grid.All() {
		x, y := l.CellRect(p)
		drawCell(screen, x, y, l.CellSize, kindColor(kind))
		if labels && !kind.IsNothing() {
			cx, cy := l.CellCenter(p)
			a.drawText(screen, kind.Code(), cx-7, cy-7, colorBackground)
		}
	}

	// 已锁定的图纸
	if snap.Shadow != nil && snap.HasLocation {
		for _, p := range schematicCells(snap.Shadow, snap.Location) {
			x, y := l.CellRect(p)
			drawCell(screen, x, y, l.CellSize, colorShadow)
		}
	}

	// 最近放置的物体闪烁
	if a.flash != nil {
		elapsed := snap.Ticks - a.flash.Tick
		if elapsed < flashTicks {
			x, y := l.CellRect(a.flash.At)
			alpha := 1 - utils.EaseOutCubic(utils.Progress(elapsed, flashTicks))
			c := colorHighlight
			c.A = uint8(255 * alpha)
			vector.StrokeRect(screen, float32(x+1), float32(y+1), float32(l.CellSize-2), float32(l.CellSize-2), 3, c, false)
		}
	}

	a.drawHover(screen, snap)
}

// drawHover 在鼠标位置绘制光标形状，颜色表示点击结果
func (a *App) drawHover(screen *ebiten.Image, snap game.Snapshot) {
	if !a.hoverValid || !a.settings.Settings().ShowPreview {
		return
	}
	c, ok := previewColor(a.session.Preview(a.hover))
	if !ok {
		return
	}

	l := a.layout
	var cells []grid.Point
	switch snap.State {
	case cursor.BuildOutline:
		cells = schematicCells(snap.Shape, a.hover)
	default:
		cells = []grid.Point{a.hover}
	}
	for _, p := range cells {
		if p.X >= l.Columns || p.Y >= l.Rows {
			continue
		}
		x, y := l.CellRect(p)
		drawCell(screen, x, y, l.CellSize, c)
	}
}

// worldContains 屏幕坐标是否在地图区域（侧边栏左侧）
func worldContains(x, y int) bool {
	return float64(x) < config.SidebarX() && y >= 0 && y < config.ScreenHeight
}
