// Package app 提供桌面端（Ebitengine）界面
//
// 左侧 70% 为地图，右侧为侧边栏（计分板、资源预览、图纸册）。
// 游戏规则全部在 game.Session 中，本包只负责输入转发和绘制。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/atotto/clipboard"
	"github.com/decker502/tinyspace/pkg/config"
	"github.com/decker502/tinyspace/pkg/embedded"
	"github.com/decker502/tinyspace/pkg/game"
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// SessionConfig 会话配置路径，"data/" 开头的路径从嵌入资源读取；
	// 为空时使用嵌入的 data/session.yaml
	SessionConfig string
	// Seed 非 0 时覆盖配置中的随机种子
	Seed int64
}

// placement 最近一次成功放置，用于闪烁动画
type placement struct {
	At   grid.Point
	Tick uint64
}

// App 桌面端应用，实现 ebiten.Game 接口
type App struct {
	session  *game.Session
	settings *game.SettingsManager
	layout   utils.GridLayout
	book     []bookEntry
	face     *text.GoXFace

	hover      grid.Point
	hoverValid bool
	flash      *placement
	message    string

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 加载配置并创建会话
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sessionCfg, err := loadSessionConfig(cfg.SessionConfig)
	if err != nil {
		return nil, fmt.Errorf("会话配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		sessionCfg.Queue.Seed = cfg.Seed
	}

	session, err := game.NewSession(*sessionCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	// 设置持久化失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: "tinyspace"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}

	a := &App{
		session:  session,
		settings: game.NewSettingsManager(gdataManager),
		layout:   utils.NewGridLayout(sessionCfg.Grid.Width, sessionCfg.Grid.Height),
		book:     layoutBook(session.Catalog(), sessionCfg.BookKinds(session.Catalog())),
		face:     text.NewGoXFace(basicfont.Face7x13),
		verbose:  cfg.Verbose,
	}
	session.Subscribe(a.onEvent)

	log.Printf("[App] Session %s ready, %d schematics in the book", session.ShortID(), len(a.book))
	return a, nil
}

// loadSessionConfig 未指定路径时读取嵌入的默认配置；
// 没有嵌入资源（移动端）时使用内置默认值
func loadSessionConfig(path string) (*config.SessionConfig, error) {
	if path == "" {
		if !embedded.IsInitialized() {
			cfg := config.DefaultSessionConfig()
			log.Printf("[Config] No embedded data, using default session config")
			return &cfg, nil
		}
		path = config.DefaultSessionConfigPath
	}
	cfg, err := config.LoadSessionConfig(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] Loaded session config %s", path)
	return cfg, nil
}

// onEvent 放置成功后开始闪烁动画
func (a *App) onEvent(ev game.Event) {
	a.flash = &placement{At: ev.At, Tick: ev.Tick}
	if ev.Kind == game.EventPlaceBuilding {
		a.message = fmt.Sprintf("Built %v", ev.Thing)
	}
}

// ApplyWindowSettings 应用保存的窗口设置（启动时调用）
func (a *App) ApplyWindowSettings() {
	ebiten.SetFullscreen(a.settings.Settings().Fullscreen)
}

// Update 处理输入并推进一帧
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if err := a.handleKeys(); err != nil {
		return err
	}
	a.handlePointer()

	a.session.Tick()
	return nil
}

func (a *App) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		log.Printf("[App] Quit requested")
		return ebiten.Termination

	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := a.session.Reset(); err != nil {
			return fmt.Errorf("重置失败: %w", err)
		}
		a.flash = nil
		a.message = "New game"

	case utils.AnyKeyJustPressed(ebiten.Key1, ebiten.KeyEscape):
		a.session.Cancel()

	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.session.CycleBuilding()

	case utils.AnyKeyJustPressed(ebiten.Key3, ebiten.KeySpace):
		a.session.Rotate()

	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.copyBoard()

	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		a.settings.ToggleLabels()
		a.saveSettings()

	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.settings.TogglePreview()
		a.saveSettings()

	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.toggleFullscreen()
	}
	return nil
}

func (a *App) handlePointer() {
	input := utils.GetInputState()

	a.hover, a.hoverValid = grid.Point{}, false
	if worldContains(input.X, input.Y) {
		a.hover, a.hoverValid = a.layout.ScreenToGrid(input.X, input.Y)
	}

	if !input.JustPressed {
		return
	}

	if a.hoverValid {
		res, err := a.session.ProcessClick(a.hover)
		if err != nil {
			log.Printf("[App] Error: %v", err)
			a.message = "Internal error, build cancelled"
			return
		}
		if !res.Outcome.Accepted() {
			a.message = "Illegal move: " + res.Outcome.String()
		} else if res.Outcome != game.OutcomeBuildingPlaced {
			a.message = ""
		}
		return
	}

	if kind, ok := bookHitTest(a.book, float64(input.X), float64(input.Y)); ok {
		if err := a.session.SelectBuilding(kind); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
}

func (a *App) copyBoard() {
	if err := clipboard.WriteAll(a.session.Dump()); err != nil {
		log.Printf("[App] Warning: Failed to copy board: %v", err)
		a.message = "Clipboard unavailable"
		return
	}
	a.message = "Board copied to clipboard"
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap, err := a.session.Snapshot(0)
	if err != nil {
		log.Printf("[App] Error: %v", err)
		return
	}
	a.drawWorld(screen, snap)
	a.drawSidebar(screen, snap)
}

func (a *App) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, a.face, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Session 当前会话
func (a *App) Session() *game.Session {
	return a.session
}
