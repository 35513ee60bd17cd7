package grid

import (
	"fmt"
	"iter"
	"strings"
)

// Grid 矩形二维网格，行优先存储
//
// 不包含任何游戏逻辑。游戏网格和建筑图纸都使用它。
type Grid[T comparable] struct {
	width  int
	height int
	cells  []T
}

// New 创建 width x height 的网格，所有格子为 T 的零值
func New[T comparable](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative size %dx%d", width, height))
	}
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

// FromRows 由行数组构造网格（rows[y][x]）
// 行长度不一致或没有数据时返回 *ShapeError
func FromRows[T comparable](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ShapeError{Row: -1}
	}
	width := len(rows[0])
	g := New[T](width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, &ShapeError{Row: y, Want: width, Got: len(row)}
		}
		copy(g.cells[y*width:(y+1)*width], row)
	}
	return g, nil
}

// MustFromRows 与 FromRows 相同，但形状错误时 panic
// 仅用于编译期已知的字面量
func MustFromRows[T comparable](rows [][]T) *Grid[T] {
	g, err := FromRows(rows)
	if err != nil {
		panic(fmt.Sprintf("grid: %v", err))
	}
	return g
}

// Width 列数
func (g *Grid[T]) Width() int { return g.width }

// Height 行数
func (g *Grid[T]) Height() int { return g.height }

// Size 以 Point 形式返回 (width, height)
func (g *Grid[T]) Size() Point { return Point{X: g.width, Y: g.height} }

// InBounds 判断坐标是否在网格内
func (g *Grid[T]) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid[T]) outOfBounds(p Point) *OutOfBoundsError {
	return &OutOfBoundsError{Point: p, Width: g.width, Height: g.height}
}

// Get 读取格子内容，越界时返回 *OutOfBoundsError
func (g *Grid[T]) Get(p Point) (T, error) {
	if !g.InBounds(p) {
		var zero T
		return zero, g.outOfBounds(p)
	}
	return g.cells[p.Y*g.width+p.X], nil
}

// At 读取格子内容，越界时 panic
// 调用方必须事先用 InBounds 检查过坐标
func (g *Grid[T]) At(p Point) T {
	if !g.InBounds(p) {
		panic(g.outOfBounds(p))
	}
	return g.cells[p.Y*g.width+p.X]
}

// Set 写入格子内容，越界时返回 *OutOfBoundsError
func (g *Grid[T]) Set(p Point, v T) error {
	if !g.InBounds(p) {
		return g.outOfBounds(p)
	}
	g.cells[p.Y*g.width+p.X] = v
	return nil
}

// Subgrid 复制区域 [x, x+w) x [y, y+h) 为新网格
// 区域任何部分越界都返回 *OutOfBoundsError（报告越界的角）
func (g *Grid[T]) Subgrid(x, y, w, h int) (*Grid[T], error) {
	if w < 0 || h < 0 {
		return nil, g.outOfBounds(Point{X: x + w, Y: y + h})
	}
	if !g.InBounds(Point{X: x, Y: y}) {
		return nil, g.outOfBounds(Point{X: x, Y: y})
	}
	if far := (Point{X: x + w - 1, Y: y + h - 1}); !g.InBounds(far) {
		return nil, g.outOfBounds(far)
	}

	sub := New[T](w, h)
	for row := 0; row < h; row++ {
		src := (y+row)*g.width + x
		copy(sub.cells[row*w:(row+1)*w], g.cells[src:src+w])
	}
	return sub, nil
}

// Clone 深拷贝
func (g *Grid[T]) Clone() *Grid[T] {
	c := New[T](g.width, g.height)
	copy(c.cells, g.cells)
	return c
}

// Rotate 顺时针旋转 90° n 次，返回新网格，不修改原网格
// n 按 4 取模，负数表示逆时针
func (g *Grid[T]) Rotate(n int) *Grid[T] {
	n %= 4
	if n < 0 {
		n += 4
	}
	out := g.Clone()
	for i := 0; i < n; i++ {
		out = out.rotateOnce()
	}
	return out
}

// rotateOnce 先把行的顺序反转，再转置（原来的列变成新的行）
// w x h 的网格旋转后变成 h x w
func (g *Grid[T]) rotateOnce() *Grid[T] {
	r := New[T](g.height, g.width)
	for ny := 0; ny < r.height; ny++ {
		for nx := 0; nx < r.width; nx++ {
			// 新的第 ny 行是原来的第 ny 列，自底向上读取
			r.cells[ny*r.width+nx] = g.cells[(g.height-1-nx)*g.width+ny]
		}
	}
	return r
}

// All 按行优先顺序遍历 (坐标, 内容)
// 每次调用都从头开始
func (g *Grid[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				if !yield(Point{X: x, Y: y}, g.cells[y*g.width+x]) {
					return
				}
			}
		}
	}
}

// Rows 返回行数组副本（rows[y][x]）
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for y := range rows {
		rows[y] = append([]T(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// Equal 尺寸相同且每个格子内容相同
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String 形如 [[Iron, Oil], [Nothing, Crystal]]
func (g *Grid[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for x := 0; x < g.width; x++ {
			if x > 0 {
				b.WriteString(", ")
			}
			fmt.Fprint(&b, g.cells[y*g.width+x])
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}
