// tinyspace-tui 终端版本，使用 tcell 在终端中绘制地图并处理鼠标点击
//
// 用法：
//
//	go run ./cmd/tinyspace-tui [-config session.yaml] [-seed 42] [-log tui.log]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tinyspace/pkg/catalog"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/tui"
)

var (
	configPath = flag.String("config", "", "会话配置文件路径（默认 5x7 地图）")
	seed       = flag.Int64("seed", 0, "资源队列随机种子，0 表示使用配置文件中的值")
	logPath    = flag.String("log", "", "日志输出文件（终端被界面占用，默认丢弃日志）")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tinyspace-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultSessionConfig()
	if *configPath != "" {
		loaded, err := config.LoadSessionConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if *seed != 0 {
		cfg.Queue.Seed = *seed
	}

	session, err := game.NewSession(cfg, catalog.Default())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.New(screen, session).Run(ctx)
}
