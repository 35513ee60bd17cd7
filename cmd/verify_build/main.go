// verify_build 无界面验证一局完整的建造流程
//
// 流程：
//  1. 检查非法点击（地图外、不相邻）被拒绝且不改变地图
//  2. 按队列顺序把资源放到第一个合法格子，直到地图上出现某个建筑的图纸
//  3. 选中该建筑、旋转、锁定图纸、在图纸范围内确认落点
//  4. 校验建筑格、被消耗的资源格和分数
//
// 用法：
//
//	go run ./cmd/verify_build [-seed 1] [-verbose] [-copy]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/cursor"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

var (
	seed        = flag.Int64("seed", 1, "资源队列随机种子")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	copyFlag    = flag.Bool("copy", false, "把最终地图复制到剪贴板")
)

// match 地图上找到的一处图纸匹配
type match struct {
	kind      types.ThingKind
	rotation  int
	offset    grid.Point
	schematic *catalog.Schematic
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	session, err := run()
	if session != nil {
		fmt.Print(session.Dump())
		if *copyFlag {
			if err := clipboard.WriteAll(session.Dump()); err != nil {
				fmt.Fprintf(os.Stderr, "⚠️  复制到剪贴板失败: %v\n", err)
			}
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 验证失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ 验证通过")
}

func run() (*game.Session, error) {
	cfg := config.DefaultSessionConfig()
	cfg.Queue.Seed = *seed
	cat := catalog.Default()

	session, err := game.NewSession(cfg, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	fmt.Printf("会话 %s，种子 %d\n", session.ShortID(), session.Seed())

	var placed []game.Event
	unsubscribe := session.Subscribe(func(ev game.Event) {
		placed = append(placed, ev)
	})
	defer unsubscribe()

	if err := verifyRejections(session); err != nil {
		return session, err
	}

	m, err := fillUntilMatch(session, cat)
	if err != nil {
		return session, err
	}
	fmt.Printf("地图上出现 %v 的图纸：旋转 %d 次，左上角 %v\n", m.kind, m.rotation, m.offset)

	if err := build(session, cat, m); err != nil {
		return session, err
	}

	last := placed[len(placed)-1]
	if last.Kind != game.EventPlaceBuilding || last.Thing != m.kind {
		return session, fmt.Errorf("last event = %v %v, want PlaceBuilding %v", last.Kind, last.Thing, m.kind)
	}
	fmt.Printf("共收到 %d 个放置事件\n", len(placed))
	return session, nil
}

// verifyRejections 开局时的非法点击必须被拒绝且不改变地图
func verifyRejections(session *game.Session) error {
	before, err := session.Snapshot(0)
	if err != nil {
		return err
	}
	bx, by := session.Config().BasePosition()
	cases := []struct {
		at   grid.Point
		want game.Outcome
	}{
		{grid.Pt(-1, 0), game.OutcomeOutOfGrid},
		{grid.Pt(0, 0), game.OutcomeDisconnected},
		{grid.Pt(bx, by), game.OutcomeOccupied},
	}

	for _, c := range cases {
		res, err := session.ProcessClick(c.at)
		if err != nil {
			return fmt.Errorf("click %v: %w", c.at, err)
		}
		if res.Outcome != c.want {
			return fmt.Errorf("click %v = %v, want %v", c.at, res.Outcome, c.want)
		}
		fmt.Printf("  拒绝 %v: %v\n", c.at, res.Outcome)
	}

	after, err := session.Snapshot(0)
	if err != nil {
		return err
	}
	if !after.Grid.Equal(before.Grid) {
		return errors.New("rejected clicks changed the map")
	}
	return nil
}

// fillUntilMatch 逐个放置资源，直到某个可建造建筑的图纸出现在地图上
func fillUntilMatch(session *game.Session, cat *catalog.Catalog) (match, error) {
	for step := 1; ; step++ {
		snap, err := session.Snapshot(1)
		if err != nil {
			return match{}, err
		}
		if m, ok := findMatch(snap.Grid, cat); ok {
			return m, nil
		}

		target, ok := firstLegalCell(session, snap.Grid)
		if !ok {
			return match{}, errors.New("map is full and no schematic matched")
		}
		res, err := session.ProcessClick(target)
		if err != nil {
			return match{}, fmt.Errorf("click %v: %w", target, err)
		}
		if res.Outcome != game.OutcomeResourcePlaced || res.Thing != snap.Upcoming[0] {
			return match{}, fmt.Errorf("step %d: click %v = %v %v, want ResourcePlaced %v",
				step, target, res.Outcome, res.Thing, snap.Upcoming[0])
		}
		fmt.Printf("  第 %d 步：%v 放在 %v\n", step, res.Thing, target)
	}
}

func firstLegalCell(session *game.Session, g *grid.Grid[types.ThingKind]) (grid.Point, bool) {
	for p := range g.All() {
		if session.Preview(p) == game.PreviewFits {
			return p, true
		}
	}
	return grid.Point{}, false
}

func findMatch(g *grid.Grid[types.ThingKind], cat *catalog.Catalog) (match, bool) {
	for _, kind := range cat.Buildable() {
		thing := cat.MustLookup(kind)
		for rotation := 0; rotation < 4; rotation++ {
			schematic, err := thing.Schematic(rotation)
			if err != nil {
				continue
			}
			for y := 0; y+schematic.Height() <= g.Height(); y++ {
				for x := 0; x+schematic.Width() <= g.Width(); x++ {
					sub, err := g.Subgrid(x, y, schematic.Width(), schematic.Height())
					if err != nil {
						continue
					}
					if game.ValidateSchematic(schematic, sub) {
						return match{kind: kind, rotation: rotation, offset: grid.Pt(x, y), schematic: schematic}, true
					}
				}
			}
		}
	}
	return match{}, false
}

// build 选中、旋转、锁定并确认建筑，然后校验结果
func build(session *game.Session, cat *catalog.Catalog, m match) error {
	scoreBefore := session.Score().Value

	if err := session.SelectBuilding(m.kind); err != nil {
		return err
	}
	for i := 0; i < m.rotation; i++ {
		session.Rotate()
	}

	res, err := session.ProcessClick(m.offset)
	if err != nil {
		return fmt.Errorf("lock outline: %w", err)
	}
	if res.Outcome != game.OutcomeOutlineLocked {
		return fmt.Errorf("lock outline at %v = %v, want OutlineLocked", m.offset, res.Outcome)
	}

	var required []grid.Point
	for p, cell := range m.schematic.All() {
		if cell != types.Nothing {
			required = append(required, p.Add(m.offset))
		}
	}
	anchor := required[len(required)-1]

	res, err = session.ProcessClick(anchor)
	if err != nil {
		return fmt.Errorf("confirm building: %w", err)
	}
	if res.Outcome != game.OutcomeBuildingPlaced {
		return fmt.Errorf("confirm at %v = %v, want BuildingPlaced", anchor, res.Outcome)
	}
	fmt.Printf("  %v 建在 %v\n", m.kind, anchor)

	for _, p := range required {
		got, err := session.Cell(p)
		if err != nil {
			return err
		}
		want := types.Nothing
		if p == anchor {
			want = m.kind
		}
		if got != want {
			return fmt.Errorf("cell %v = %v, want %v", p, got, want)
		}
	}

	wantScore := scoreBefore + cat.Score(m.kind)
	if got := session.Score().Value; got != wantScore {
		return fmt.Errorf("score = %d, want %d", got, wantScore)
	}
	if session.CursorState() != cursor.ResourcePlacement {
		return fmt.Errorf("cursor = %v after building, want ResourcePlacement", session.CursorState())
	}
	fmt.Printf("  分数 %d -> %d\n", scoreBefore, session.Score().Value)
	return nil
}
