package game

import (
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/grid"
)

// PreviewStatus 鼠标悬停时的提示状态，用于界面着色
type PreviewStatus int

const (
	// PreviewInactive 不在地图内或不需要提示
	PreviewInactive PreviewStatus = iota
	// PreviewFits 资源可以放在这里 / 点击会确认建造
	PreviewFits
	// PreviewMatches 图纸在这里完全匹配
	PreviewMatches
	// PreviewNoFit 资源不能放在这里 / 图纸超出地图
	PreviewNoFit
	// PreviewMismatch 图纸在地图内但内容不匹配
	PreviewMismatch
)

func (p PreviewStatus) String() string {
	switch p {
	case PreviewFits:
		return "Fits"
	case PreviewMatches:
		return "Matches"
	case PreviewNoFit:
		return "NoFit"
	case PreviewMismatch:
		return "Mismatch"
	default:
		return "Inactive"
	}
}

// Preview 预测在 p 点击的结果，不修改任何状态
func (s *Session) Preview(p grid.Point) PreviewStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.cursor.State() {
	case cursor.ResourcePlacement:
		current, err := s.grid.Get(p)
		if err != nil {
			return PreviewInactive
		}
		if !current.IsNothing() || !hasAdjacentTile(s.grid, p) {
			return PreviewNoFit
		}
		return PreviewFits

	case cursor.BuildOutline:
		schematic, err := s.cursor.Shape()
		if err != nil {
			return PreviewInactive
		}
		if !fitsAt(s.grid, schematic, p) {
			return PreviewNoFit
		}
		sub, err := s.grid.Subgrid(p.X, p.Y, schematic.Width(), schematic.Height())
		if err != nil || !ValidateSchematic(schematic, sub) {
			return PreviewMismatch
		}
		return PreviewMatches

	case cursor.BuildLocation:
		offset, ok := s.cursor.BuildingLocation()
		schematic, err := s.cursor.ShadowShape()
		if !ok || err != nil || schematic == nil {
			return PreviewInactive
		}
		if onFootprint(schematic, offset, p) {
			return PreviewFits
		}
		return PreviewNoFit
	}
	return PreviewInactive
}
