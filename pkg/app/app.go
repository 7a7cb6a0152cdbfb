// Package app 提供查看器应用的核心包装器
//
// 该包将查看器初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kent12t/SAF-AR/internal/model"
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
	"github.com/kent12t/SAF-AR/pkg/scenes"
	"github.com/kent12t/SAF-AR/pkg/show"
	"github.com/kent12t/SAF-AR/pkg/tracking"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preview 强制预览模式（不初始化跟踪脚本，立即视为目标发现）
	Preview bool
	// ShowConfigPath 揭示序列配置路径，为空时使用默认路径
	ShowConfigPath string
	// TrackScriptPath 跟踪事件脚本路径，为空时使用默认路径
	TrackScriptPath string
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *show.SceneManager
	settings                 *show.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载揭示序列配置
	showPath := cfg.ShowConfigPath
	if showPath == "" {
		showPath = config.DefaultShowConfigPath
	}
	showConfig, err := config.LoadShowConfig(showPath)
	if err != nil {
		return nil, fmt.Errorf("揭示序列配置加载失败: %w", err)
	}
	log.Printf("[App] 揭示序列配置: %d 个条目 (%s)", len(showConfig.Entries), showPath)

	// 初始化 gdata 存储（失败降级为仅内存设置）
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "saf_ar_viewer",
	})
	if err != nil {
		log.Printf("[App] gdata 初始化失败: %v (设置降级为仅内存)", err)
		gdataManager = nil
	}
	settings, err := show.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	// 装配核心：注册表 / 控制器 / 序列器
	anchor := scene.NewNode("target_anchor")
	registry := show.NewRegistry(model.NewLoader(), anchor)
	controller := show.NewController(registry)
	sequencer := show.NewSequencer(registry, controller, showConfig.Entries)
	registry.SetClearHook(sequencer.Stop)
	sequencer.SetRepeatInterval(showConfig.RepeatIntervalSeconds())

	// 跟踪器：脚本跟踪器初始化失败时回退到预览模式
	tracker := newTracker(cfg)

	// 创建场景管理器：加载场景完成预加载后经工厂进入查看场景
	sceneManager := show.NewSceneManager()
	sceneManager.SetViewerFactory(func() show.Scene {
		return scenes.NewViewerScene(showConfig, registry, controller, sequencer, tracker, settings)
	})
	sceneManager.SwitchTo(scenes.NewLoadingScene(registry, sceneManager, showConfig.Entries))

	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// newTracker 选择并初始化跟踪器
//
// 预览模式直接使用 PreviewTracker；否则尝试脚本跟踪器，
// 初始化失败（TrackingInitError）只致命于 AR 模式，回退到预览模式。
func newTracker(cfg Config) tracking.Tracker {
	if cfg.Preview {
		log.Printf("[App] 预览模式")
		return initPreview()
	}

	scriptPath := cfg.TrackScriptPath
	if scriptPath == "" {
		scriptPath = config.DefaultTrackScriptPath
	}

	tracker := tracking.NewScriptTracker(scriptPath)
	if err := tracker.Init(); err != nil {
		var initErr *tracking.InitError
		if errors.As(err, &initErr) {
			log.Printf("[App] 跟踪器初始化失败: %v (回退到预览模式)", err)
		} else {
			log.Printf("[App] 跟踪器错误: %v (回退到预览模式)", err)
		}
		return initPreview()
	}

	log.Printf("[App] 脚本跟踪器就绪 (%s)", scriptPath)
	return tracker
}

// initPreview 创建并初始化预览跟踪器（初始化必定成功）
func initPreview() tracking.Tracker {
	t := tracking.NewPreviewTracker()
	if err := t.Init(); err != nil {
		log.Printf("[App] 预览跟踪器初始化: %v", err)
	}
	return t
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ViewerWindowWidth, config.ViewerWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ViewerWindowWidth, config.ViewerWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制查看器画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回查看器的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ViewerWindowWidth, config.ViewerWindowHeight
}

// SaveOnExit 在退出时保存查看器设置
func (a *App) SaveOnExit() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 退出时保存设置失败: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *show.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
