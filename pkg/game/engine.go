package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

// Outcome 一次点击的结果
type Outcome int

const (
	// 成功
	OutcomeResourcePlaced Outcome = iota + 1
	OutcomeOutlineLocked
	OutcomeBuildingPlaced

	// 玩家操作被拒绝（不是错误）
	OutcomeOccupied     // 格子已被占用
	OutcomeDisconnected // 资源没有与任何已有物体相邻
	OutcomeOutOfGrid    // 点击在地图外
	OutcomeNoFit        // 图纸超出地图
	OutcomeMismatch     // 图纸与地图内容不匹配
	OutcomeOffFootprint // 确认建造时没有点在建筑占地上
)

var outcomeNames = map[Outcome]string{
	OutcomeResourcePlaced: "ResourcePlaced",
	OutcomeOutlineLocked:  "OutlineLocked",
	OutcomeBuildingPlaced: "BuildingPlaced",
	OutcomeOccupied:       "Occupied",
	OutcomeDisconnected:   "Disconnected",
	OutcomeOutOfGrid:      "OutOfGrid",
	OutcomeNoFit:          "NoFit",
	OutcomeMismatch:       "Mismatch",
	OutcomeOffFootprint:   "OffFootprint",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Accepted 点击是否产生了预期的状态变化
func (o Outcome) Accepted() bool {
	return o == OutcomeResourcePlaced || o == OutcomeOutlineLocked || o == OutcomeBuildingPlaced
}

// ClickResult 点击处理结果
type ClickResult struct {
	Outcome Outcome
	At      grid.Point
	Thing   types.ThingKind // 放置的资源或建筑，拒绝时为 Nothing
	State   cursor.State    // 处理后的光标状态
}

// ProcessClick 处理一次网格点击，按光标状态分派
//
// 玩家的非法操作（占用、不相邻、不匹配等）不会返回错误，
// 而是通过 ClickResult.Outcome 报告并记录警告日志。
// 返回的 error 只表示内部约定被破坏，此时光标会被重置、网格保持不变。
func (s *Session) ProcessClick(p grid.Point) (ClickResult, error) {
	s.mu.Lock()
	res, events, err := s.processClickLocked(p)
	if err != nil {
		s.cursor.EnterResourcePlacement()
		res.State = s.cursor.State()
	}
	s.mu.Unlock()

	if err != nil {
		return res, fmt.Errorf("failed to process click at %v: %w", p, err)
	}
	s.publish(events)
	return res, nil
}

func (s *Session) processClickLocked(p grid.Point) (ClickResult, []Event, error) {
	switch state := s.cursor.State(); state {
	case cursor.ResourcePlacement:
		return s.fillTile(p)
	case cursor.BuildOutline:
		return s.lockBuildOutline(p)
	case cursor.BuildLocation:
		return s.confirmBuilding(p)
	default:
		return ClickResult{At: p}, nil, fmt.Errorf("unknown cursor state %v", state)
	}
}

// reject 记录非法操作
func (s *Session) reject(p grid.Point, outcome Outcome, reason string) ClickResult {
	log.Printf("[Engine] Warning: Illegal move at %v: %s", p, reason)
	return ClickResult{Outcome: outcome, At: p, State: s.cursor.State()}
}

// fillTile 放置队列中的下一个资源
func (s *Session) fillTile(p grid.Point) (ClickResult, []Event, error) {
	current, err := s.grid.Get(p)
	if err != nil {
		return s.reject(p, OutcomeOutOfGrid, "outside the map"), nil, nil
	}
	if !current.IsNothing() {
		return s.reject(p, OutcomeOccupied, "tile occupied"), nil, nil
	}
	if !hasAdjacentTile(s.grid, p) {
		return s.reject(p, OutcomeDisconnected, "disconnected placement"), nil, nil
	}

	resource := s.queue.Peek()
	if err := s.grid.Set(p, resource); err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to place resource: %w", err)
	}
	s.queue.Take()
	s.score.Recompute(s.grid, s.catalog)
	s.lastResourceTick = s.ticks

	ev := Event{Kind: EventPlaceResource, Thing: resource, At: p, Tick: s.ticks}
	return ClickResult{
		Outcome: OutcomeResourcePlaced,
		At:      p,
		Thing:   resource,
		State:   s.cursor.State(),
	}, []Event{ev}, nil
}

// hasAdjacentTile 上下左右是否有非空格子
func hasAdjacentTile(g *grid.Grid[types.ThingKind], p grid.Point) bool {
	for _, d := range grid.Orthogonal {
		if kind, err := g.Get(p.Add(d)); err == nil && !kind.IsNothing() {
			return true
		}
	}
	return false
}

// fitsAt 图纸放在 offset 时整个包围盒是否都在地图内
func fitsAt(g *grid.Grid[types.ThingKind], schematic *catalog.Schematic, offset grid.Point) bool {
	far := offset.Add(schematic.Size()).Sub(grid.Pt(1, 1))
	return g.InBounds(offset) && g.InBounds(far)
}

// lockBuildOutline 检查图纸在 p 处是否匹配，匹配则进入 BuildLocation
func (s *Session) lockBuildOutline(p grid.Point) (ClickResult, []Event, error) {
	schematic, err := s.cursor.Shape()
	if err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to get schematic: %w", err)
	}

	if !fitsAt(s.grid, schematic, p) {
		s.cursor.EnterResourcePlacement()
		return s.reject(p, OutcomeNoFit, "schematic doesn't fit map"), nil, nil
	}

	sub, err := s.grid.Subgrid(p.X, p.Y, schematic.Width(), schematic.Height())
	if err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to extract subgrid: %w", err)
	}
	if !ValidateSchematic(schematic, sub) {
		s.cursor.EnterResourcePlacement()
		return s.reject(p, OutcomeMismatch, "shape doesn't match"), nil, nil
	}

	if err := s.cursor.EnterBuildLocation(p); err != nil {
		return ClickResult{At: p}, nil, err
	}
	log.Printf("[Engine] %v outline locked at %v (rotation %d)", s.cursor.SelectedKind(), p, s.cursor.Rotation())
	return ClickResult{
		Outcome: OutcomeOutlineLocked,
		At:      p,
		State:   s.cursor.State(),
	}, nil, nil
}

// onFootprint p 是否落在图纸的必需格上
func onFootprint(schematic *catalog.Schematic, offset, p grid.Point) bool {
	kind, err := schematic.Get(p.Sub(offset))
	return err == nil && !kind.IsNothing()
}

// confirmBuilding 消耗匹配的资源，把建筑放在点击的格子上
// 无论成功与否，光标都回到 ResourcePlacement
func (s *Session) confirmBuilding(p grid.Point) (ClickResult, []Event, error) {
	defer s.cursor.EnterResourcePlacement()

	offset, ok := s.cursor.BuildingLocation()
	if !ok {
		return ClickResult{At: p}, nil, errors.New("BuildLocation without a pending offset")
	}
	schematic, err := s.cursor.ShadowShape()
	if err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to get shadow schematic: %w", err)
	}
	if schematic == nil {
		return ClickResult{At: p}, nil, errors.New("BuildLocation without a shadow schematic")
	}

	if !onFootprint(schematic, offset, p) {
		res := s.reject(p, OutcomeOffFootprint, "click is not on the building footprint")
		res.State = cursor.ResourcePlacement
		return res, nil, nil
	}

	// 锁定后网格只能通过本次确认改变，再次校验用于发现状态损坏
	sub, err := s.grid.Subgrid(offset.X, offset.Y, schematic.Width(), schematic.Height())
	if err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to extract subgrid: %w", err)
	}
	if !ValidateSchematic(schematic, sub) {
		return ClickResult{At: p}, nil, fmt.Errorf("pending outline at %v no longer matches the map", offset)
	}

	building := s.cursor.SelectedKind()
	for cell, required := range schematic.All() {
		if required.IsNothing() {
			continue
		}
		if err := s.grid.Set(offset.Add(cell), types.Nothing); err != nil {
			return ClickResult{At: p}, nil, fmt.Errorf("failed to consume resource: %w", err)
		}
	}
	if err := s.grid.Set(p, building); err != nil {
		return ClickResult{At: p}, nil, fmt.Errorf("failed to place building: %w", err)
	}
	s.score.Recompute(s.grid, s.catalog)
	s.logf("Built %v at %v, score %d", building, p, s.score.Value)

	ev := Event{Kind: EventPlaceBuilding, Thing: building, At: p, Tick: s.ticks}
	return ClickResult{
		Outcome: OutcomeBuildingPlaced,
		At:      p,
		Thing:   building,
		State:   cursor.ResourcePlacement,
	}, []Event{ev}, nil
}

// ValidateSchematic 图纸的每个必需格都必须与子网格对应格相同
// Nothing 格不做要求；尺寸不同直接判定为不匹配
func ValidateSchematic(schematic, sub *catalog.Schematic) bool {
	if schematic.Width() != sub.Width() || schematic.Height() != sub.Height() {
		return false
	}
	for p, required := range schematic.All() {
		if required.IsNothing() {
			continue
		}
		if sub.At(p) != required {
			return false
		}
	}
	return true
}

// SelectBuilding 选中建筑并进入 BuildOutline
func (s *Session) SelectBuilding(kind types.ThingKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cursor.EnterBuildOutline(kind); err != nil {
		return fmt.Errorf("failed to select building: %w", err)
	}
	log.Printf("[Engine] Selected %v", kind)
	return nil
}

// CycleBuilding 按目录顺序选中下一个可建造的建筑
// 当前未选中建筑时选中第一个
func (s *Session) CycleBuilding() types.ThingKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	buildable := s.catalog.Buildable()
	if len(buildable) == 0 {
		return types.Nothing
	}
	next := buildable[0]
	current := s.cursor.SelectedKind()
	for i, kind := range buildable {
		if kind == current {
			next = buildable[(i+1)%len(buildable)]
			break
		}
	}
	if err := s.cursor.EnterBuildOutline(next); err != nil {
		// Buildable() 只返回有图纸的建筑
		panic(fmt.Sprintf("game: buildable %v rejected: %v", next, err))
	}
	log.Printf("[Engine] Selected %v", next)
	return next
}

// Rotate 顺时针旋转选中的建筑，没有选中时返回 false
func (s *Session) Rotate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Rotate()
}

// Cancel 放弃当前建造，回到 ResourcePlacement
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.EnterResourcePlacement()
}
