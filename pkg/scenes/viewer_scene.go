package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/show"
	"github.com/kent12t/SAF-AR/pkg/tracking"
)

// 模型占位方块的调色板（按条目在配置中的序号轮换）
var quadPalette = []color.RGBA{
	{86, 156, 214, 255},  // 蓝
	{220, 160, 80, 255},  // 橙
	{150, 200, 120, 255}, // 绿
	{200, 120, 170, 255}, // 紫红
	{120, 200, 200, 255}, // 青
}

// caption 一条正在展示的说明文字
type caption struct {
	text      string
	remaining float64
}

// ViewerScene 查看场景：跟踪事件与键盘输入到序列操作的边界，
// 以及预览渲染（模型占位方块、聚光圈、说明文字、占位提示）。
//
// 每帧顺序固定：输入 -> 跟踪事件 -> Sequencer.Update -> Controller.Tick，
// 全部发生在 Draw 之前，保证渲染读取的是推进后的状态。
type ViewerScene struct {
	cfg        *config.ShowConfig
	registry   *show.Registry
	controller *show.Controller
	sequencer  *show.Sequencer
	tracker    tracking.Tracker
	settings   *show.SettingsManager

	targetHeld bool    // 当前是否持有跟踪目标
	pulse      float64 // 聚光/扫描提示的脉冲时钟

	captions []*caption
}

// NewViewerScene 创建查看场景并注册为序列观察者
func NewViewerScene(
	cfg *config.ShowConfig,
	registry *show.Registry,
	controller *show.Controller,
	sequencer *show.Sequencer,
	tracker tracking.Tracker,
	settings *show.SettingsManager,
) *ViewerScene {
	s := &ViewerScene{
		cfg:        cfg,
		registry:   registry,
		controller: controller,
		sequencer:  sequencer,
		tracker:    tracker,
		settings:   settings,
	}
	sequencer.AddObserver(s)
	log.Printf("[ViewerScene] 查看场景就绪 (跟踪器: %s)", tracker.Name())
	return s
}

// OnReveal 实现 show.SequenceObserver：为带说明文字的条目挂起一条字幕
func (s *ViewerScene) OnReveal(entry *config.RevealEntry) {
	if entry.Caption == "" {
		return
	}
	s.captions = append(s.captions, &caption{
		text:      entry.Caption,
		remaining: config.CaptionHoldSeconds,
	})
}

// OnReset 实现 show.SequenceObserver：序列停止时清空全部字幕
func (s *ViewerScene) OnReset() {
	s.captions = nil
}

// Update updates the viewer scene logic.
func (s *ViewerScene) Update(deltaTime float64) {
	s.pulse += deltaTime

	s.handleInput()
	s.applyTrackerEvents(s.tracker.Update(deltaTime))

	s.sequencer.Update(deltaTime)
	s.controller.Tick(deltaTime)

	s.ageCaptions(deltaTime)
}

// handleInput 处理键盘输入
//   - Space: 模拟目标发现/丢失（预览模式下的主要交互）
//   - R:     重启序列
//   - C:     切换说明文字并保存设置
//   - S:     切换聚光效果并保存设置
func (s *ViewerScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if s.targetHeld {
			s.applyTrackerEvents([]tracking.EventKind{tracking.EventTargetLost})
		} else {
			s.applyTrackerEvents([]tracking.EventKind{tracking.EventTargetFound})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if s.targetHeld {
			log.Printf("[ViewerScene] 手动重启序列")
			s.sequencer.Restart()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.settings.SetShowCaptions(!s.settings.Settings().ShowCaptions)
		if err := s.settings.Save(); err != nil {
			log.Printf("[ViewerScene] 保存设置失败: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.settings.SetShowSpotlights(!s.settings.Settings().ShowSpotlights)
		if err := s.settings.Save(); err != nil {
			log.Printf("[ViewerScene] 保存设置失败: %v", err)
		}
	}
}

// applyTrackerEvents 把跟踪事件翻译为序列操作：
// found -> Start（运行中等价 Restart），lost -> Stop
func (s *ViewerScene) applyTrackerEvents(events []tracking.EventKind) {
	for _, ev := range events {
		switch ev {
		case tracking.EventTargetFound:
			log.Printf("[ViewerScene] 目标发现")
			s.targetHeld = true
			s.sequencer.Start()
		case tracking.EventTargetLost:
			log.Printf("[ViewerScene] 目标丢失")
			s.targetHeld = false
			s.sequencer.Stop()
		}
	}
}

// ageCaptions 推进字幕计时并移除过期字幕
func (s *ViewerScene) ageCaptions(deltaTime float64) {
	kept := s.captions[:0]
	for _, c := range s.captions {
		c.remaining -= deltaTime
		if c.remaining > 0 {
			kept = append(kept, c)
		}
	}
	s.captions = kept
}

// TargetHeld 返回当前是否持有跟踪目标
func (s *ViewerScene) TargetHeld() bool {
	return s.targetHeld
}

// Draw renders the viewer scene to the screen.
func (s *ViewerScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 14, 20, 255})

	if !s.targetHeld {
		s.drawScanHint(screen)
		s.drawHUD(screen)
		return
	}

	// 聚光圈画在方块下层
	if s.settings.Settings().ShowSpotlights {
		s.drawSpotlights(screen)
	}
	s.drawAssets(screen)
	s.drawPlaceholders(screen)

	if s.settings.Settings().ShowCaptions {
		s.drawCaptions(screen)
	}
	s.drawHUD(screen)
}

// projectX/projectY 正交投影：锚点在屏幕中心，Y 轴向上为正
func projectX(x float64) float64 {
	return config.ViewerWindowWidth/2.0 + x*config.PixelsPerUnit
}

func projectY(y float64) float64 {
	return config.ViewerWindowHeight/2.0 - y*config.PixelsPerUnit
}

// drawScanHint 未持有目标时绘制扫描提示框与呼吸文字
func (s *ViewerScene) drawScanHint(screen *ebiten.Image) {
	const frame = 220.0
	cx := config.ViewerWindowWidth / 2.0
	cy := config.ViewerWindowHeight / 2.0

	// 呼吸亮度
	k := 0.5 + 0.5*math.Sin(2*math.Pi*s.pulse/config.SpotlightPulsePeriod)
	c := color.RGBA{uint8(90 + 80*k), uint8(90 + 80*k), uint8(110 + 80*k), 255}

	const thickness = 3.0
	x := cx - frame/2
	y := cy - frame/2
	ebitenutil.DrawRect(screen, x, y, frame, thickness, c)
	ebitenutil.DrawRect(screen, x, y+frame-thickness, frame, thickness, c)
	ebitenutil.DrawRect(screen, x, y, thickness, frame, c)
	ebitenutil.DrawRect(screen, x+frame-thickness, y, thickness, frame, c)

	ebitenutil.DebugPrintAt(screen, "将镜头对准识别图（Space 模拟发现目标）",
		int(cx-140), int(cy+frame/2+16))
}

// drawAssets 把所有可见资产画成投影方块
// 方块以首个剪辑的播放进度做放大入场（对应模型的入场动画）
func (s *ViewerScene) drawAssets(screen *ebiten.Image) {
	idx := 0
	s.registry.Each(func(h *show.Handle) {
		clr := quadPalette[idx%len(quadPalette)]
		idx++
		if !h.Visible() {
			return
		}

		grow := 1.0
		if len(h.Clips) > 0 && h.Clips[0].Clip.Duration > 0 {
			t := h.Clips[0].Time / h.Clips[0].Clip.Duration
			// EaseOutQuad 入场
			grow = 0.3 + 0.7*t*(2-t)
		}

		size := config.ModelQuadSize * h.Node.Scale.X * grow
		cx := projectX(h.Node.Position.X)
		cy := projectY(h.Node.Position.Y)

		ebitenutil.DrawRect(screen, cx-size/2, cy-size/2, size, size, clr)
		ebitenutil.DebugPrintAt(screen, h.Node.Name, int(cx-size/2), int(cy+size/2+4))
	})
}

// drawSpotlights 为标记了聚光的可见资产绘制呼吸聚光圈
func (s *ViewerScene) drawSpotlights(screen *ebiten.Image) {
	k := 0.5 + 0.5*math.Sin(2*math.Pi*s.pulse/config.SpotlightPulsePeriod)
	radius := config.SpotlightRadius * (0.92 + 0.08*k)
	clr := color.RGBA{255, 240, 180, uint8(40 + 30*k)}

	s.registry.Each(func(h *show.Handle) {
		if !h.Visible() || h.Entry == nil || !h.Entry.Spotlight {
			return
		}
		cx := projectX(h.Node.Position.X)
		cy := projectY(h.Node.Position.Y)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy),
			float32(radius*h.Node.Scale.X), clr, true)
	})
}

// drawPlaceholders 序列运行时为加载失败的条目绘制占位提示面
func (s *ViewerScene) drawPlaceholders(screen *ebiten.Image) {
	if s.sequencer.State() != show.StateRunning {
		return
	}

	for i := range s.cfg.Entries {
		e := &s.cfg.Entries[i]
		if !e.IsEnabled() || !s.registry.IsFailed(e.Path) {
			continue
		}

		size := config.ModelQuadSize * e.ScaleOr1() * 0.8
		cx := projectX(e.Position.X)
		cy := projectY(e.Position.Y)

		ebitenutil.DrawRect(screen, cx-size/2, cy-size/2, size, size,
			color.RGBA{70, 70, 76, 230})
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("资产不可用: %s", e.ID),
			int(cx-size/2), int(cy-6))
	}
}

// drawCaptions 在屏幕底部绘制当前字幕（自下而上堆叠）
func (s *ViewerScene) drawCaptions(screen *ebiten.Image) {
	y := config.ViewerWindowHeight - 40
	for i := len(s.captions) - 1; i >= 0; i-- {
		ebitenutil.DebugPrintAt(screen, s.captions[i].text, 24, y)
		y -= 16
	}
}

// drawHUD 绘制左上角状态栏
func (s *ViewerScene) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("%s | %.1fs | 待揭示 %d | %s",
		s.sequencer.State(), s.sequencer.Elapsed(),
		s.sequencer.PendingCount(), s.tracker.Name())
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
	ebitenutil.DebugPrintAt(screen, "Space 发现/丢失  R 重启  C 字幕  S 聚光", 8, 24)
}
