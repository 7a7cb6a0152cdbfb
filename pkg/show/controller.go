package show

import "log"

// Controller 可见性/动画控制器
//
// 对资产句柄提供 Show/Hide/Tick 三个操作：
//   - Show: 显示并把所有剪辑从头开始播放（播一次，停在最后一帧）
//   - Hide: 隐藏并把所有剪辑暂停在当前位置
//   - Tick: 推进所有已加载句柄的剪辑播放时间
//
// 可测试性质（见 controller_test.go）：Tick 不区分可见性 ——
// 隐藏的句柄同样收到推进，是否前进只由剪辑的暂停状态决定。
// 正常用法下 Hide 会暂停剪辑，所以隐藏资产的剪辑事实上静止；
// 该选择保证了剪辑计时与显示状态解耦。
type Controller struct {
	registry *Registry
}

// NewController 创建控制器
func NewController(registry *Registry) *Controller {
	return &Controller{registry: registry}
}

// Show 显示资产并重置所有剪辑从头播放
//
// 幂等且带重置：对已可见资产再次 Show 会把剪辑重新从 0 播放
// （restart 语义依赖这一点）。nil 句柄是无操作。
func (c *Controller) Show(h *Handle) {
	if h == nil || h.Node == nil {
		return
	}
	h.Node.SetVisible(true)
	for _, cs := range h.Clips {
		cs.Time = 0
		cs.Playing = true
	}
	log.Printf("[Controller] 显示 '%s' (%d 个剪辑从头播放)", h.Path, len(h.Clips))
}

// Hide 隐藏资产并把所有剪辑暂停在当前位置
//
// 幂等：对已隐藏资产再次 Hide 不改变剪辑位置。
// 暂停位置被保留，但正常用法下一次 Show 总是重置到 0。
func (c *Controller) Hide(h *Handle) {
	if h == nil || h.Node == nil {
		return
	}
	h.Node.SetVisible(false)
	for _, cs := range h.Clips {
		cs.Playing = false
	}
}

// HideAll 隐藏注册表中的所有资产
func (c *Controller) HideAll() {
	c.registry.Each(func(h *Handle) {
		c.Hide(h)
	})
}

// Tick 推进所有已加载句柄的剪辑播放时间
//
// 每帧在渲染前调用一次。播放中的剪辑前进 deltaTime，
// 到达时长后停在最后一帧（不循环、不归零）。
func (c *Controller) Tick(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	c.registry.Each(func(h *Handle) {
		for _, cs := range h.Clips {
			if !cs.Playing {
				continue
			}
			cs.Time += deltaTime
			if cs.Time >= cs.Clip.Duration {
				cs.Time = cs.Clip.Duration
				cs.Playing = false
			}
		}
	})
}
