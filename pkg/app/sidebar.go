package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/decker502/tinyspace/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 侧边栏纵向布局
const (
	queueLabelY   = config.ScoreboardHeight + 10
	queueTop      = queueLabelY + 18
	bookLabelY    = queueTop + config.QueueSlotSize + 24
	bookTop       = bookLabelY + 22
	bookLabelH    = 16.0
	bookColumns   = 2
	messageOffset = 24.0 // 提示信息距离屏幕底部
)

// bookEntry 图纸册中的一项
type bookEntry struct {
	Kind          types.ThingKind
	Name          string
	Schematic     *catalog.Schematic
	X, Y          float64 // 左上角（含标题）
	Width, Height float64
}

// contains 点是否落在条目上
func (e bookEntry) contains(x, y float64) bool {
	return x >= e.X && x < e.X+e.Width && y >= e.Y && y < e.Y+e.Height
}

// layoutBook 把图纸按顺序放进两列，每次放进当前较短的一列
func layoutBook(cat *catalog.Catalog, kinds []types.ThingKind) []bookEntry {
	left := config.SidebarX() + config.SidebarMargin
	colWidth := (config.ScreenWidth - left - config.SidebarMargin) / bookColumns
	colY := [bookColumns]float64{}
	for i := range colY {
		colY[i] = bookTop
	}

	entries := make([]bookEntry, 0, len(kinds))
	for _, kind := range kinds {
		thing, ok := cat.Lookup(kind)
		if !ok || !thing.Buildable() {
			continue
		}
		schematic, err := thing.Schematic(0)
		if err != nil {
			continue
		}

		col := 0
		for i := 1; i < bookColumns; i++ {
			if colY[i] < colY[col] {
				col = i
			}
		}
		h := bookLabelH + float64(schematic.Height())*config.SchematicCellSize
		entries = append(entries, bookEntry{
			Kind:      kind,
			Name:      thing.DisplayName(),
			Schematic: schematic,
			X:         left + float64(col)*colWidth,
			Y:         colY[col],
			Width:     colWidth - config.SchematicEntryGap,
			Height:    h,
		})
		colY[col] += h + config.SchematicEntryGap
	}
	return entries
}

// bookHitTest 返回被点击的图纸条目
func bookHitTest(entries []bookEntry, x, y float64) (types.ThingKind, bool) {
	for _, e := range entries {
		if e.contains(x, y) {
			return e.Kind, true
		}
	}
	return types.Nothing, false
}

// queueSlideOffset 取走资源后预览整体向左滑动的剩余偏移
func queueSlideOffset(snap game.Snapshot) float64 {
	if !snap.HasLastTaken {
		return 0
	}
	elapsed := snap.Ticks - snap.LastResourceTick
	t := utils.EaseOutCubic(utils.Progress(elapsed, config.QueueAnimationTicks))
	return utils.Lerp(config.QueueSpacing, 0, t)
}

// drawSidebar 绘制计分板、资源预览和图纸册
func (a *App) drawSidebar(screen *ebiten.Image, snap game.Snapshot) {
	x0 := config.SidebarX()
	vector.FillRect(screen, float32(x0), 0, float32(config.ScreenWidth-x0), config.ScreenHeight, colorSidebar, false)

	left := x0 + config.SidebarMargin

	// 计分板
	a.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), left, 12, colorText)
	status := snap.State.String()
	if !snap.Selected.IsNothing() {
		status = fmt.Sprintf("%s  %s  rot %d", status, catalog.DisplayName(snap.Selected.String()), snap.Rotation)
	}
	a.drawText(screen, status, left, 30, colorDimText)

	// 资源预览
	a.drawText(screen, "Next resources", left, queueLabelY, colorDimText)
	offset := queueSlideOffset(snap)
	for i, kind := range snap.Upcoming {
		x := left + float64(i)*config.QueueSpacing + offset
		c := kindColor(kind)
		if i > 0 {
			c.A = 180
		}
		vector.FillRect(screen, float32(x), queueTop, config.QueueSlotSize, config.QueueSlotSize, c, false)
		if i == 0 {
			vector.StrokeRect(screen, float32(x), queueTop, config.QueueSlotSize, config.QueueSlotSize, 2, colorHighlight, false)
		}
		a.drawText(screen, kind.Code(), x+9, queueTop+10, colorBackground)
	}

	// 图纸册
	a.drawText(screen, "Schematics (click to build)", left, bookLabelY, colorDimText)
	for _, e := range a.book {
		a.drawBookEntry(screen, e, e.Kind == snap.Selected)
	}

	if a.message != "" {
		a.drawText(screen, a.message, left, config.ScreenHeight-messageOffset, colorText)
	}
}

func (a *App) drawBookEntry(screen *ebiten.Image, e bookEntry, selected bool) {
	labelColor := colorDimText
	if selected {
		labelColor = colorHighlight
		vector.StrokeRect(screen, float32(e.X-3), float32(e.Y-3), float32(e.Width+6), float32(e.Height+6), 1, colorHighlight, false)
	}
	a.drawText(screen, e.Name, e.X, e.Y, labelColor)

	top := e.Y + bookLabelH
	for p, kind := range e.Schematic.All() {
		if kind.IsNothing() {
			continue
		}
		drawCell(screen, e.X+float64(p.X)*config.SchematicCellSize, top+float64(p.Y)*config.SchematicCellSize,
			config.SchematicCellSize, kindColor(kind))
	}
}

// drawCell 绘制带间隙的格子
func drawCell(screen *ebiten.Image, x, y, size float64, c color.Color) {
	pad := config.CellPadding
	vector.FillRect(screen, float32(x+pad/2), float32(y+pad/2), float32(size-pad), float32(size-pad), c, false)
}

// schematicCells 图纸在 offset 处占用的必需格
func schematicCells(schematic *catalog.Schematic, offset grid.Point) []grid.Point {
	var cells []grid.Point
	for p, kind := range schematic.All() {
		if !kind.IsNothing() {
			cells = append(cells, offset.Add(p))
		}
	}
	return cells
}
