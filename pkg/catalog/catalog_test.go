package catalog

import (
	"errors"
	"testing"

	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

func TestDefaultCatalogRegistrationOrder(t *testing.T) {
	cat := Default()

	wantResources := []types.ThingKind{types.Iron, types.Oil, types.Crystal, types.Aerofoam}
	got := cat.Resources()
	if len(got) != len(wantResources) {
		t.Fatalf("got %d resources, want %d", len(got), len(wantResources))
	}
	for i := range wantResources {
		if got[i] != wantResources[i] {
			t.Errorf("resource %d = %v, want %v", i, got[i], wantResources[i])
		}
	}

	buildings := cat.Buildings()
	if buildings[0] != types.Base {
		t.Errorf("first building = %v, want Base", buildings[0])
	}
	if len(buildings) != 9 {
		t.Errorf("got %d buildings, want 9", len(buildings))
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() must return the same catalog instance")
	}
}

func TestBuildable(t *testing.T) {
	cat := Default()

	base := cat.MustLookup(types.Base)
	if base.Buildable() {
		t.Fatal("Base must not be buildable")
	}
	_, err := base.Schematic(0)
	var noSchematic *NoSchematicError
	if !errors.As(err, &noSchematic) || noSchematic.Kind != types.Base {
		t.Fatalf("expected *NoSchematicError for Base, got %v", err)
	}

	for _, k := range cat.Buildable() {
		if k == types.Base {
			t.Fatal("Buildable() must skip Base")
		}
		if !cat.MustLookup(k).Buildable() {
			t.Errorf("%v listed as buildable without schematic", k)
		}
	}
}

func TestSchematicRotation(t *testing.T) {
	tower := Default().MustLookup(types.CommsTower)

	s0, err := tower.Schematic(0)
	if err != nil {
		t.Fatalf("Schematic(0) failed: %v", err)
	}
	want := grid.MustFromRows([][]types.ThingKind{{types.Crystal, types.Iron, types.Crystal, types.Oil}})
	if !s0.Equal(want) {
		t.Fatalf("Schematic(0) = %v, want %v", s0, want)
	}

	s1, _ := tower.Schematic(1)
	if s1.Width() != 1 || s1.Height() != 4 {
		t.Fatalf("Schematic(1) size = %dx%d, want 1x4", s1.Width(), s1.Height())
	}

	// 修改返回的副本不影响目录中的图纸
	_ = s0.Set(grid.Pt(0, 0), types.Oil)
	again, _ := tower.Schematic(0)
	if !again.Equal(want) {
		t.Fatal("schematic must not be mutable through returned copies")
	}

	s4, _ := tower.Schematic(4)
	if !s4.Equal(want) {
		t.Fatal("Schematic(4) must equal Schematic(0)")
	}
}

func TestScores(t *testing.T) {
	cat := Default()
	tests := []struct {
		kind types.ThingKind
		want int
	}{
		{types.Nothing, 0},
		{types.Iron, 0},
		{types.Base, 0},
		{types.WardenOutpost, 5},
		{types.CommsTower, 0},
	}
	for _, tt := range tests {
		if got := cat.Score(tt.kind); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestThingAttributes(t *testing.T) {
	cat := Default()

	iron := cat.MustLookup(types.Iron)
	if iron.Family != FamilyResource || iron.AssetID != "resources/Iron" {
		t.Errorf("unexpected Iron attributes: %+v", iron)
	}

	tower, ok := cat.ByName("CommsTower")
	if !ok {
		t.Fatal("ByName(CommsTower) not found")
	}
	if tower.Family != FamilyBuilding || tower.AssetID != "buildings/CommsTower" {
		t.Errorf("unexpected CommsTower attributes: %+v", tower)
	}
	if tower.DisplayName() != "Comms Tower" {
		t.Errorf("DisplayName() = %q", tower.DisplayName())
	}
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{
			name: "没有资源",
			defs: []Definition{{Kind: types.Base}},
		},
		{
			name: "重复定义",
			defs: []Definition{{Kind: types.Iron}, {Kind: types.Iron}},
		},
		{
			name: "负分",
			defs: []Definition{{Kind: types.Iron, Score: -1}},
		},
		{
			name: "资源带图纸",
			defs: []Definition{{Kind: types.Iron, Schematic: [][]types.ThingKind{{types.Iron}}}},
		},
		{
			name: "图纸不是矩形",
			defs: []Definition{
				{Kind: types.Iron},
				{Kind: types.Sit, Schematic: [][]types.ThingKind{{types.Iron, types.Oil}, {types.Iron}}},
			},
		},
		{
			name: "图纸全是空格",
			defs: []Definition{
				{Kind: types.Iron},
				{Kind: types.Sit, Schematic: [][]types.ThingKind{{types.Nothing}}},
			},
		},
		{
			name: "图纸要求建筑",
			defs: []Definition{
				{Kind: types.Iron},
				{Kind: types.Sit, Schematic: [][]types.ThingKind{{types.Base}}},
			},
		},
		{
			name: "Nothing 不能注册",
			defs: []Definition{{Kind: types.Nothing}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.defs); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CommsTower", "Comms Tower"},
		{"WardenOutpost", "Warden Outpost"},
		{"ArsenicScrubber", "Arsenic Scrubber"},
		{"Iron", "Iron"},
		{"camelCase", "camel Case"},
		{"IBMCorp", "IBM Corp"},
		{"Level2Boss", "Level2 Boss"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DisplayName(tt.in); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
