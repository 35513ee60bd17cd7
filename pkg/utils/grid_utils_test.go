package utils

import (
	"testing"

	"github.com/decker502/tinyspace/pkg/grid"
)

func testLayout() GridLayout {
	return GridLayout{OriginX: 100, OriginY: 50, CellSize: 40, Columns: 5, Rows: 7}
}

// TestScreenToGrid 测试屏幕坐标到网格坐标的转换
func TestScreenToGrid(t *testing.T) {
	l := testLayout()

	tests := []struct {
		name      string
		x, y      int
		want      grid.Point
		wantValid bool
	}{
		{"左上角第一个格子", 100, 50, grid.Pt(0, 0), true},
		{"格子内部", 139, 89, grid.Pt(0, 0), true},
		{"右下角最后一个格子", 100 + 4*40 + 20, 50 + 6*40 + 20, grid.Pt(4, 6), true},
		{"第二列第三行", 145, 135, grid.Pt(1, 2), true},
		{"地图左侧", 99, 60, grid.Point{}, false},
		{"地图上方", 120, 49, grid.Point{}, false},
		{"地图右侧", 100 + 5*40, 60, grid.Point{}, false},
		{"地图下方", 120, 50 + 7*40, grid.Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.ScreenToGrid(tt.x, tt.y)
			if ok != tt.wantValid || (ok && got != tt.want) {
				t.Errorf("ScreenToGrid(%d, %d) = %v, %v; want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantValid)
			}
		})
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	l := testLayout()
	for y := 0; y < l.Rows; y++ {
		for x := 0; x < l.Columns; x++ {
			p := grid.Pt(x, y)
			cx, cy := l.CellCenter(p)
			got, ok := l.ScreenToGrid(int(cx), int(cy))
			if !ok || got != p {
				t.Errorf("center of %v maps back to %v, %v", p, got, ok)
			}
		}
	}
}

func TestNewGridLayoutFitsDefaultGrid(t *testing.T) {
	l := NewGridLayout(5, 7)
	if l.CellSize <= 0 {
		t.Fatalf("CellSize = %v", l.CellSize)
	}
	if _, ok := l.ScreenToGrid(int(l.OriginX)+1, int(l.OriginY)+1); !ok {
		t.Error("top-left corner should be inside the grid")
	}
}

func TestZeroLayoutRejectsEverything(t *testing.T) {
	var l GridLayout
	if _, ok := l.ScreenToGrid(0, 0); ok {
		t.Error("zero layout must not map any point")
	}
}
