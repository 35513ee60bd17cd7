package catalog

import (
	"errors"
	"fmt"

	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

// Definition 目录中一个物体类型的声明
type Definition struct {
	Kind        types.ThingKind
	Score       int
	Description string
	// Schematic 图纸，按行书写（rows[y][x]），Nothing 表示不关心
	// 仅建筑可以有图纸；为空表示不可建造
	Schematic [][]types.ThingKind
}

func (d Definition) build() (*Thing, error) {
	if !d.Kind.Valid() || d.Kind == types.Nothing {
		return nil, fmt.Errorf("kind %d is not a thing", d.Kind)
	}
	if d.Score < 0 {
		return nil, fmt.Errorf("score cannot be negative, got %d", d.Score)
	}

	t := &Thing{
		Kind:        d.Kind,
		Name:        d.Kind.String(),
		Score:       d.Score,
		Description: d.Description,
	}
	switch {
	case d.Kind.IsResource():
		t.Family = FamilyResource
		t.AssetID = "resources/" + t.Name
	case d.Kind.IsBuilding():
		t.Family = FamilyBuilding
		t.AssetID = "buildings/" + t.Name
	}

	if len(d.Schematic) == 0 {
		return t, nil
	}
	if t.Family != FamilyBuilding {
		return nil, errors.New("only buildings can have a schematic")
	}
	schematic, err := grid.FromRows(d.Schematic)
	if err != nil {
		return nil, fmt.Errorf("schematic: %w", err)
	}
	required := 0
	for _, cell := range schematic.All() {
		if cell == types.Nothing {
			continue
		}
		if !cell.IsResource() {
			return nil, fmt.Errorf("schematic cell %v is not a resource", cell)
		}
		required++
	}
	if required == 0 {
		return nil, errors.New("schematic has no required cells")
	}
	t.schematic = schematic
	return t, nil
}

// builtinDefinitions 内置物体表，顺序即注册顺序
func builtinDefinitions() []Definition {
	const (
		n = types.Nothing
		i = types.Iron
		o = types.Oil
		c = types.Crystal
		a = types.Aerofoam
	)

	return []Definition{
		{Kind: types.Iron},
		{Kind: types.Oil},
		{Kind: types.Crystal},
		{Kind: types.Aerofoam},

		// 初始基地，游戏开始时直接放在地图中央，不能建造
		{Kind: types.Base},
		{
			Kind:        types.WardenOutpost,
			Score:       5,
			Description: "Gives 2 points for each adjacent Facility.",
			Schematic: [][]types.ThingKind{
				{o, c, c},
				{n, a, n},
			},
		},
		{
			Kind:      types.CommsTower,
			Schematic: [][]types.ThingKind{{c, i, c, o}},
		},
		{
			Kind: types.ArsenicScrubber,
			Schematic: [][]types.ThingKind{
				{n, c},
				{n, o},
				{a, i},
			},
		},
		{
			Kind: types.Lorem,
			Schematic: [][]types.ThingKind{
				{n, c},
				{n, o},
				{a, i},
			},
		},
		{
			Kind: types.Ipsum,
			Schematic: [][]types.ThingKind{
				{n, c},
				{n, o},
				{a, i},
			},
		},
		{
			Kind:      types.Dolor,
			Schematic: [][]types.ThingKind{{c}, {i}},
		},
		{
			Kind:      types.Sit,
			Schematic: [][]types.ThingKind{{a, o}},
		},
		{
			Kind:      types.Amet,
			Schematic: [][]types.ThingKind{{o}},
		},
	}
}
