package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/show"
)

// 加载界面布局常量
const (
	loadingBarWidth  = 420.0
	loadingBarHeight = 18.0

	// loadingMinSeconds 加载界面的最短展示时间，避免小型演出一闪而过
	loadingMinSeconds = 0.5
)

// LoadingScene represents the loading screen shown when the viewer starts.
// It preloads all show assets in the background and displays a progress bar.
type LoadingScene struct {
	registry     *show.Registry
	sceneManager *show.SceneManager
	entries      []config.RevealEntry

	total       int     // 启用条目总数（进度分母）
	elapsedTime float64 // 场景启动以来的时间

	started bool          // 预加载 goroutine 是否已启动
	done    chan struct{} // 预加载完成时关闭
	entered bool          // 是否已切换到查看场景
}

// NewLoadingScene creates a new loading scene.
// 预加载在第一次 Update 时启动，而不是在构造时，
// 保证进度条从第一帧就开始绘制。
func NewLoadingScene(registry *show.Registry, sceneManager *show.SceneManager, entries []config.RevealEntry) *LoadingScene {
	total := 0
	for i := range entries {
		if entries[i].IsEnabled() {
			total++
		}
	}

	return &LoadingScene{
		registry:     registry,
		sceneManager: sceneManager,
		entries:      entries,
		total:        total,
		done:         make(chan struct{}),
	}
}

// Update updates the loading scene logic.
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	if !s.started {
		s.started = true
		go func() {
			s.registry.PreloadAll(s.entries)
			close(s.done)
		}()
	}

	if s.entered {
		return
	}

	select {
	case <-s.done:
		if s.elapsedTime >= loadingMinSeconds {
			s.entered = true
			log.Printf("[LoadingScene] 预加载完成: %d 成功, %d 失败",
				s.registry.LoadedCount(), s.registry.FailedCount())
			s.sceneManager.EnterViewer()
		}
	default:
	}
}

// Progress returns the loading progress in the range [0, 1].
func (s *LoadingScene) Progress() float64 {
	if s.total == 0 {
		return 1.0
	}
	finished := s.registry.LoadedCount() + s.registry.FailedCount()
	p := float64(finished) / float64(s.total)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// Draw renders the loading scene to the screen.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 20, 28, 255})

	progress := s.Progress()

	barX := (config.ViewerWindowWidth - loadingBarWidth) / 2.0
	barY := config.ViewerWindowHeight/2.0 - loadingBarHeight/2.0

	// 进度条底与填充
	ebitenutil.DrawRect(screen, barX-2, barY-2, loadingBarWidth+4, loadingBarHeight+4,
		color.RGBA{60, 64, 80, 255})
	ebitenutil.DrawRect(screen, barX, barY, loadingBarWidth*progress, loadingBarHeight,
		color.RGBA{96, 200, 140, 255})

	finished := s.registry.LoadedCount() + s.registry.FailedCount()
	message := fmt.Sprintf("正在预加载资产 %d/%d", finished, s.total)
	if finished >= s.total {
		message = "预加载完成"
	}
	ebitenutil.DebugPrintAt(screen, message,
		int(barX), int(barY+loadingBarHeight+12))

	if failed := s.registry.FailedCount(); failed > 0 {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("%d 个资产加载失败，将显示占位提示", failed),
			int(barX), int(barY+loadingBarHeight+28))
	}
}
