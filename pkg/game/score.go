package game

import (
	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

// Score 当前得分
type Score struct {
	Value int
}

// Recompute 重新计算得分：所有非空格子的分数之和
func (s *Score) Recompute(g *grid.Grid[types.ThingKind], cat *catalog.Catalog) {
	s.Value = ComputeScore(g, cat)
}

// ComputeScore 计算网格上所有非空格子的分数之和
func ComputeScore(g *grid.Grid[types.ThingKind], cat *catalog.Catalog) int {
	total := 0
	for _, kind := range g.All() {
		if kind.IsNothing() {
			continue
		}
		total += cat.Score(kind)
	}
	return total
}
