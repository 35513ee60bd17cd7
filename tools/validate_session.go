package main

import (
	"fmt"
	"os"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
)

// 用法: go run tools/validate_session.go [data/session.yaml]
func main() {
	path := "data/session.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseSessionConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	x, y := cfg.BasePosition()
	fmt.Printf("✅ 配置格式正确\n")
	fmt.Printf("✅ 地图 %dx%d，基地 (%d, %d)\n", cfg.Grid.Width, cfg.Grid.Height, x, y)
	fmt.Printf("✅ 资源队列：每批每种 %d 个，预览 %d 个\n", cfg.Queue.Multiplicity, cfg.Queue.Preview)

	cat := catalog.Default()
	tooLarge := 0
	for _, kind := range cfg.BookKinds(cat) {
		thing := cat.MustLookup(kind)
		if !fitsSomeRotation(thing, cfg.Grid.Width, cfg.Grid.Height) {
			fmt.Printf("❌ %s 的图纸在任何旋转下都放不进地图\n", thing.DisplayName())
			tooLarge++
		}
	}

	if tooLarge == 0 {
		fmt.Printf("✅ 图纸册中的 %d 个建筑都能放进地图\n", len(cfg.BookKinds(cat)))
	} else {
		fmt.Printf("❌ 有 %d 个建筑无法建造\n", tooLarge)
		os.Exit(1)
	}
}

func fitsSomeRotation(thing *catalog.Thing, width, height int) bool {
	for rotation := 0; rotation < 2; rotation++ {
		schematic, err := thing.Schematic(rotation)
		if err != nil {
			return false
		}
		if schematic.Width() <= width && schematic.Height() <= height {
			return true
		}
	}
	return false
}
