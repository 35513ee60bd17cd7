package game

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/queue"
	"github.com/decker502/tinyspace/pkg/types"
	"github.com/google/uuid"
)

// Session 一局游戏的全部状态
//
// Session 持有网格、资源队列、光标、得分和事件订阅者。
// 所有公开方法都是并发安全的：每次点击作为一个事务在锁内完成，
// 事件在锁释放后分发。
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	cfg     config.SessionConfig
	catalog *catalog.Catalog
	seed    int64

	grid   *grid.Grid[types.ThingKind]
	queue  *queue.ResourceQueue
	cursor *cursor.Cursor
	score  Score

	ticks            uint64
	lastResourceTick uint64

	subscribers []subscription
	nextSubID   int
}

// NewSession 按配置创建一局新游戏，基地放在配置的位置
//
// 参数：
//   - cfg: 会话配置（会再次校验）
//   - cat: 物体目录，nil 时使用内置目录
//
// 返回：
//   - *Session: 处于 ResourcePlacement 状态的新会话
//   - error: 配置无效
func NewSession(cfg config.SessionConfig, cat *catalog.Catalog) (*Session, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if err := cfg.Validate(cat); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s := &Session{
		id:      uuid.New(),
		cfg:     cfg,
		catalog: cat,
	}
	if err := s.resetLocked(); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logf("Created %dx%d session (seed %d)", cfg.Grid.Width, cfg.Grid.Height, s.seed)
	return s, nil
}

// resetLocked 重建网格、队列、光标和得分，调用方需持有锁（或对象尚未发布）
func (s *Session) resetLocked() error {
	s.seed = s.cfg.Queue.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	g := grid.New[types.ThingKind](s.cfg.Grid.Width, s.cfg.Grid.Height)
	bx, by := s.cfg.BasePosition()
	if err := g.Set(grid.Pt(bx, by), types.Base); err != nil {
		return fmt.Errorf("failed to place base: %w", err)
	}

	s.grid = g
	s.queue = queue.New(s.catalog.Resources(), s.cfg.Queue.Multiplicity, s.seed)
	s.cursor = cursor.New(s.catalog, s.queue)
	s.score.Recompute(s.grid, s.catalog)
	s.lastResourceTick = 0
	return nil
}

// Reset 重新开始：清空网格、重新生成队列，保留订阅者和帧计数
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	s.logf("Session reset (seed %d)", s.seed)
	return nil
}

// logf 带会话 ID 前缀的日志
func (s *Session) logf(format string, args ...any) {
	log.Printf("[Session %s] "+format, append([]any{s.ShortID()}, args...)...)
}

// ID 会话唯一标识
func (s *Session) ID() uuid.UUID {
	return s.id
}

// ShortID 会话 ID 的前 8 位，用于日志
func (s *Session) ShortID() string {
	return s.id.String()[:8]
}

// Catalog 物体目录（只读）
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Config 会话配置副本
func (s *Session) Config() config.SessionConfig {
	return s.cfg
}

// Seed 实际使用的随机种子
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Tick 推进一帧
func (s *Session) Tick() {
	s.mu.Lock()
	s.ticks++
	s.mu.Unlock()
}

// Ticks 当前帧计数
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Score 当前得分
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// CursorState 当前光标状态
func (s *Session) CursorState() cursor.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.State()
}

// Cell 读取单个格子
func (s *Session) Cell(p grid.Point) (types.ThingKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Get(p)
}

// Snapshot 渲染一帧所需的只读状态
// 网格和形状都是副本，可以在锁外安全使用
type Snapshot struct {
	Grid     *grid.Grid[types.ThingKind]
	Score    int
	State    cursor.State
	Selected types.ThingKind
	Rotation int

	Shape       *catalog.Schematic // 光标形状
	Shadow      *catalog.Schematic // 待确认建筑，仅 BuildLocation 状态非空
	Location    grid.Point         // 待确认建筑的图纸位置
	HasLocation bool

	Upcoming         []types.ThingKind // 队列前 N 个资源
	LastTaken        types.ThingKind
	HasLastTaken     bool
	Ticks            uint64
	LastResourceTick uint64 // 最近一次放置资源时的帧计数（驱动队列滑动动画）
}

// Snapshot 获取当前状态
//
// 参数：
//   - preview: 需要的队列预览个数，<=0 时使用配置值
func (s *Session) Snapshot(preview int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if preview <= 0 {
		preview = s.cfg.Queue.Preview
	}

	shape, err := s.cursor.Shape()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get cursor shape: %w", err)
	}
	shadow, err := s.cursor.ShadowShape()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get shadow shape: %w", err)
	}
	loc, hasLoc := s.cursor.BuildingLocation()
	last, hasLast := s.queue.LastTaken()

	return Snapshot{
		Grid:             s.grid.Clone(),
		Score:            s.score.Value,
		State:            s.cursor.State(),
		Selected:         s.cursor.SelectedKind(),
		Rotation:         s.cursor.Rotation(),
		Shape:            shape,
		Shadow:           shadow,
		Location:         loc,
		HasLocation:      hasLoc,
		Upcoming:         s.queue.PeekN(preview),
		LastTaken:        last,
		HasLastTaken:     hasLast,
		Ticks:            s.ticks,
		LastResourceTick: s.lastResourceTick,
	}, nil
}

// Dump 以文本形式输出棋盘（调试、剪贴板）
//
// 格式：
//
//	session 1a2b3c4d score 5 cursor ResourcePlacement
//	.. .. Fe .. ..
//	.. .. BS .. ..
//	next: Oi Cr Fe
func (s *Session) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "session %s score %d cursor %v", s.ShortID(), s.score.Value, s.cursor.State())
	if sel := s.cursor.SelectedKind(); !sel.IsNothing() {
		fmt.Fprintf(&b, " building %v rotation %d", sel, s.cursor.Rotation())
	}
	b.WriteByte('\n')

	for _, row := range s.grid.Rows() {
		codes := make([]string, len(row))
		for i, kind := range row {
			codes[i] = kind.Code()
		}
		b.WriteString(strings.Join(codes, " "))
		b.WriteByte('\n')
	}

	next := s.queue.PeekN(s.cfg.Queue.Preview)
	codes := make([]string, len(next))
	for i, kind := range next {
		codes[i] = kind.Code()
	}
	fmt.Fprintf(&b, "next: %s\n", strings.Join(codes, " "))
	return b.String()
}
