// Package grid 提供与游戏逻辑无关的二维网格容器
//
// 坐标系：原点 (0,0) 位于左上角，X 为列，Y 为行。
// 存储与遍历均为行优先（Y 外层，X 内层）。
package grid

import "fmt"

// Point 网格坐标
type Point struct {
	X int
	Y int
}

// Pt 是 Point{X: x, Y: y} 的简写
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add 向量加法
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub 向量减法
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// 移动方向
var (
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
	Down  = Point{X: 0, Y: 1}
	Up    = Point{X: 0, Y: -1}
)

// Orthogonal 四个正交方向，顺序固定
var Orthogonal = [4]Point{Left, Right, Down, Up}
