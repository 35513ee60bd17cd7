// Package catalog 定义所有可放置物体（资源与建筑）的静态目录
//
// 目录在启动时构建一次，之后只读。物体类型集合在编译期确定，
// 不支持运行时注册。
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/zyedidia/generic/mapset"
)

// Family 物体所属的大类
type Family int

const (
	FamilyResource Family = iota + 1
	FamilyBuilding
)

func (f Family) String() string {
	switch f {
	case FamilyResource:
		return "Resource"
	case FamilyBuilding:
		return "Building"
	default:
		return "Unknown"
	}
}

// Schematic 建筑图纸：Nothing 格子表示不关心
type Schematic = grid.Grid[types.ThingKind]

// Thing 单个物体类型的静态属性
type Thing struct {
	Kind        types.ThingKind
	Family      Family
	Name        string // 稳定标识符，如 "CommsTower"
	Score       int    // 非负，默认 0
	AssetID     string // 仅渲染层使用
	Description string

	schematic *Schematic
}

// Buildable 是否有图纸（只有有图纸的建筑可以通过建造流程放置）
func (t *Thing) Buildable() bool {
	return t.schematic != nil
}

// Schematic 返回顺时针旋转 rotation 个 90° 之后的图纸副本
// 没有图纸时返回 *NoSchematicError
func (t *Thing) Schematic(rotation int) (*Schematic, error) {
	if t.schematic == nil {
		return nil, &NoSchematicError{Kind: t.Kind}
	}
	return t.schematic.Rotate(rotation), nil
}

// DisplayName 可读名称，如 "Comms Tower"
func (t *Thing) DisplayName() string {
	return DisplayName(t.Name)
}

// Catalog 物体目录
type Catalog struct {
	things    map[types.ThingKind]*Thing
	byName    map[string]*Thing
	resources []types.ThingKind
	buildings []types.ThingKind
}

// New 由定义列表构建目录，列表顺序即展示顺序
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		things: make(map[types.ThingKind]*Thing, len(defs)),
		byName: make(map[string]*Thing, len(defs)),
	}

	seen := mapset.New[string]()
	for _, def := range defs {
		thing, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("invalid definition for %v: %w", def.Kind, err)
		}
		if seen.Has(thing.Name) {
			return nil, fmt.Errorf("duplicate thing name %q", thing.Name)
		}
		seen.Put(thing.Name)

		c.things[thing.Kind] = thing
		c.byName[thing.Name] = thing
		switch thing.Family {
		case FamilyResource:
			c.resources = append(c.resources, thing.Kind)
		case FamilyBuilding:
			c.buildings = append(c.buildings, thing.Kind)
		}
	}

	if len(c.resources) == 0 {
		return nil, errors.New("catalog needs at least one resource")
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(builtinDefinitions())
	if err != nil {
		panic(fmt.Sprintf("catalog: builtin table is invalid: %v", err))
	}
	return c
})

// Default 返回内置目录（进程内只构建一次）
func Default() *Catalog {
	return defaultCatalog()
}

// Lookup 按类型查找
func (c *Catalog) Lookup(kind types.ThingKind) (*Thing, bool) {
	t, ok := c.things[kind]
	return t, ok
}

// MustLookup 按类型查找，不存在时 panic
func (c *Catalog) MustLookup(kind types.ThingKind) *Thing {
	t, ok := c.things[kind]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown thing kind %v", kind))
	}
	return t
}

// ByName 按标识符查找
func (c *Catalog) ByName(name string) (*Thing, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Resources 按注册顺序返回全部资源类型
func (c *Catalog) Resources() []types.ThingKind {
	return append([]types.ThingKind(nil), c.resources...)
}

// Buildings 按注册顺序返回全部建筑类型
func (c *Catalog) Buildings() []types.ThingKind {
	return append([]types.ThingKind(nil), c.buildings...)
}

// Buildable 按注册顺序返回有图纸的建筑
func (c *Catalog) Buildable() []types.ThingKind {
	out := make([]types.ThingKind, 0, len(c.buildings))
	for _, k := range c.buildings {
		if c.things[k].Buildable() {
			out = append(out, k)
		}
	}
	return out
}

// Score 返回格子内容的分数，Nothing 与未知类型为 0
func (c *Catalog) Score(kind types.ThingKind) int {
	if t, ok := c.things[kind]; ok {
		return t.Score
	}
	return 0
}
