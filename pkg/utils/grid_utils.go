package utils

import (
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/grid"
)

// GridLayout 地图在屏幕上的位置和格子大小
type GridLayout struct {
	OriginX, OriginY float64 // 地图左上角的屏幕坐标
	CellSize         float64 // 正方形格子的边长
	Columns, Rows    int
}

// NewGridLayout 按布局配置把 columns x rows 的地图居中放进地图区域
func NewGridLayout(columns, rows int) GridLayout {
	cell, ox, oy := config.CalculateCellSize(columns, rows)
	return GridLayout{
		OriginX:  ox,
		OriginY:  oy,
		CellSize: cell,
		Columns:  columns,
		Rows:     rows,
	}
}

// ScreenToGrid 将屏幕坐标转换为网格坐标
// 参数:
//   - screenX, screenY: 鼠标或触摸的屏幕坐标
//
// 返回:
//   - p: 网格坐标
//   - isValid: 是否在地图范围内
func (l GridLayout) ScreenToGrid(screenX, screenY int) (p grid.Point, isValid bool) {
	if l.CellSize <= 0 {
		return grid.Point{}, false
	}
	x := float64(screenX) - l.OriginX
	y := float64(screenY) - l.OriginY
	if x < 0 || y < 0 {
		return grid.Point{}, false
	}

	col := int(x / l.CellSize)
	row := int(y / l.CellSize)
	if col >= l.Columns || row >= l.Rows {
		return grid.Point{}, false
	}
	return grid.Pt(col, row), true
}

// CellRect 格子左上角的屏幕坐标
func (l GridLayout) CellRect(p grid.Point) (x, y float64) {
	return l.OriginX + float64(p.X)*l.CellSize, l.OriginY + float64(p.Y)*l.CellSize
}

// CellCenter 格子中心的屏幕坐标
func (l GridLayout) CellCenter(p grid.Point) (centerX, centerY float64) {
	x, y := l.CellRect(p)
	return x + l.CellSize/2, y + l.CellSize/2
}
