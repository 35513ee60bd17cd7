// Package cursor 维护玩家当前的操作模式（放资源 / 勾画建筑 / 确认建筑位置）
package cursor

import (
	"errors"
	"fmt"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

// State 光标状态
type State int

const (
	// ResourcePlacement 放置资源（初始状态）
	ResourcePlacement State = iota + 1
	// BuildOutline 已选中建筑，等待玩家点击图纸左上角位置
	BuildOutline
	// BuildLocation 图纸已匹配，等待玩家点击建筑落点
	BuildLocation
)

func (s State) String() string {
	switch s {
	case ResourcePlacement:
		return "ResourcePlacement"
	case BuildOutline:
		return "BuildOutline"
	case BuildLocation:
		return "BuildLocation"
	default:
		return "Unknown"
	}
}

// ErrNotBuildable 选中的类型不是可建造的建筑
var ErrNotBuildable = errors.New("thing is not a buildable building")

// InvalidTransitionError 非法的状态跳转
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot enter %v from %v: no building selected, BuildOutline cannot be skipped", e.To, e.From)
}

// ResourcePeeker 查看下一个待放置的资源
type ResourcePeeker interface {
	Peek() types.ThingKind
}

// Cursor 光标状态机
//
// 不变量：
//   - ResourcePlacement 状态下没有选中建筑，rotation 为 0
//   - pending 只在 BuildLocation 状态下非空
type Cursor struct {
	catalog *catalog.Catalog
	queue   ResourcePeeker

	state    State
	selected *catalog.Thing
	rotation int
	pending  *grid.Point
}

// New 创建处于 ResourcePlacement 状态的光标
func New(cat *catalog.Catalog, queue ResourcePeeker) *Cursor {
	return &Cursor{
		catalog: cat,
		queue:   queue,
		state:   ResourcePlacement,
	}
}

// EnterResourcePlacement 回到放资源状态，任何状态下都合法（用作取消/重置）
func (c *Cursor) EnterResourcePlacement() {
	c.state = ResourcePlacement
	c.selected = nil
	c.rotation = 0
	c.pending = nil
}

// EnterBuildOutline 选中建筑并进入勾画状态，任何状态下都合法
// kind 必须是可建造的建筑，否则返回包装了 ErrNotBuildable 的错误
func (c *Cursor) EnterBuildOutline(kind types.ThingKind) error {
	thing, ok := c.catalog.Lookup(kind)
	if !ok || thing.Family != catalog.FamilyBuilding || !thing.Buildable() {
		return fmt.Errorf("select %v: %w", kind, ErrNotBuildable)
	}
	c.state = BuildOutline
	c.selected = thing
	c.rotation = 0
	c.pending = nil
	return nil
}

// EnterBuildLocation 记录图纸位置并进入确认状态
// 必须先经过 BuildOutline，否则返回 *InvalidTransitionError
func (c *Cursor) EnterBuildLocation(offset grid.Point) error {
	if c.selected == nil {
		return &InvalidTransitionError{From: c.state, To: BuildLocation}
	}
	c.state = BuildLocation
	c.pending = &offset
	return nil
}

// Rotate 顺时针旋转选中的建筑 90°
// 没有选中建筑时不做任何事，返回 false
func (c *Cursor) Rotate() bool {
	if c.selected == nil {
		return false
	}
	c.rotation = (c.rotation + 1) % 4
	return true
}

// State 当前状态
func (c *Cursor) State() State {
	return c.state
}

// Selected 当前选中的建筑，未选中时返回 nil
func (c *Cursor) Selected() *catalog.Thing {
	return c.selected
}

// SelectedKind 当前选中建筑的类型，未选中时返回 types.Nothing
func (c *Cursor) SelectedKind() types.ThingKind {
	if c.selected == nil {
		return types.Nothing
	}
	return c.selected.Kind
}

// Rotation 当前旋转次数 (0-3)
func (c *Cursor) Rotation() int {
	return c.rotation
}

// BuildingLocation 图纸左上角在网格中的位置，仅 BuildLocation 状态下有效
func (c *Cursor) BuildingLocation() (grid.Point, bool) {
	if c.pending == nil {
		return grid.Point{}, false
	}
	return *c.pending, true
}

// Shape 光标形状
//   - ResourcePlacement: 1x1 网格，内容为队列中的下一个资源
//   - BuildOutline / BuildLocation: 旋转后的建筑图纸
func (c *Cursor) Shape() (*catalog.Schematic, error) {
	if c.state == ResourcePlacement || c.selected == nil {
		g := grid.New[types.ThingKind](1, 1)
		_ = g.Set(grid.Point{}, c.queue.Peek())
		return g, nil
	}
	return c.selected.Schematic(c.rotation)
}

// ShadowShape 待确认建筑的形状，只有 BuildLocation 状态下非空
func (c *Cursor) ShadowShape() (*catalog.Schematic, error) {
	if c.state != BuildLocation {
		return nil, nil
	}
	return c.Shape()
}
