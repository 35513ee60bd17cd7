package grid

import "fmt"

// OutOfBoundsError 访问的坐标（或区域的某个角）不在网格内
type OutOfBoundsError struct {
	Point  Point // 越界的坐标
	Width  int   // 网格宽度
	Height int   // 网格高度
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("point %v is outside the %dx%d grid", e.Point, e.Width, e.Height)
}

// ShapeError 由行数组构造网格时，行长度不一致或为空
type ShapeError struct {
	Row  int // 出错的行号，-1 表示没有任何行
	Want int // 期望的行长度
	Got  int // 实际的行长度
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return "grid needs at least one non-empty row"
	}
	return fmt.Sprintf("row %d has %d cells, want %d", e.Row, e.Got, e.Want)
}
