package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tinyspace/pkg/app"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "会话配置文件路径（默认使用内置的 data/session.yaml）")
	seed       = flag.Int64("seed", 0, "资源队列随机种子，0 表示使用配置文件中的值")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，后续 "data/" 路径都从这里读取
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		SessionConfig: *configPath,
		Seed:          *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tiny Space")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	gameApp.ApplyWindowSettings()

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
