package show

import (
	"log"
	"sort"

	"github.com/kent12t/SAF-AR/pkg/config"
)

// State 序列器状态
type State int

const (
	// StateIdle 初始状态：无待揭示回调，所有资产隐藏
	StateIdle State = iota

	// StateRunning 序列运行中：待揭示集合 = 延迟尚未到期的启用条目
	StateRunning

	// StateStopped 已停止：与 Idle 等价，仅作记账区分
	StateStopped
)

// String 返回状态的字符串表示（用于日志与 HUD）
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// pendingReveal 一条待揭示记录
type pendingReveal struct {
	entry  *config.RevealEntry
	fireAt float64 // 相对序列起点的到期时刻（秒）
}

// Sequencer 定时揭示序列器
//
// 对固定的揭示条目列表调度定时揭示：Start 记录序列起点并
// 按延迟排好待揭示集合，Update 随展示层时钟推进并触发到期揭示，
// Stop 同步清空待揭示集合并隐藏全部资产。
//
// 取消语义（本系统唯一的正确性关键不变量）：Stop 返回后不可能
// 再有任何揭示触发。实现同时使用两道保险：
//   - 待揭示集合在 Stop 中被同步清空（真正的取消）
//   - 每次 Start/Stop 递增 epoch，触发循环逐条核对运行状态与
//     epoch，挡住同一帧批次内被观察者停止/重启后的"在途"揭示
//
// 单线程模型：所有方法都必须在事件循环线程上调用。
type Sequencer struct {
	registry   *Registry
	controller *Controller
	entries    []config.RevealEntry

	state   State
	elapsed float64
	epoch   uint64
	pending []pendingReveal

	// 自动重播：repeatInterval > 0 时，运行中每隔该间隔 Restart 一次
	repeatInterval float64
	repeatElapsed  float64

	observers []SequenceObserver
}

// NewSequencer 创建序列器
//
// entries 在创建后只读；禁用条目与加载失败条目在每次 Start 时跳过。
func NewSequencer(registry *Registry, controller *Controller, entries []config.RevealEntry) *Sequencer {
	return &Sequencer{
		registry:   registry,
		controller: controller,
		entries:    entries,
		state:      StateIdle,
	}
}

// AddObserver 注册序列事件挂钩
func (s *Sequencer) AddObserver(o SequenceObserver) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// SetRepeatInterval 设置自动重播间隔（秒），0 关闭自动重播
func (s *Sequencer) SetRepeatInterval(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.repeatInterval = seconds
}

// State 返回当前状态
func (s *Sequencer) State() State {
	return s.state
}

// Elapsed 返回距序列起点的时间（秒），仅运行中有意义
func (s *Sequencer) Elapsed() float64 {
	return s.elapsed
}

// PendingCount 返回待揭示条目数
func (s *Sequencer) PendingCount() int {
	return len(s.pending)
}

// Start 开始序列
//
// 从 Idle/Stopped 进入 Running：记录序列起点、重建待揭示集合。
// 初始可见条目立即显示且不参与延迟调度；延迟为 0 的条目作为
// 调度的一部分立即揭示。运行中再次 Start 定义为 Restart
// （用于吸收重复的 target found 事件）。
func (s *Sequencer) Start() {
	if s.state == StateRunning {
		log.Printf("[Sequencer] 运行中收到 Start，按 Restart 处理")
		s.Restart()
		return
	}

	s.state = StateRunning
	s.elapsed = 0
	s.repeatElapsed = 0
	s.epoch++
	s.pending = nil
	ep := s.epoch

	for i := range s.entries {
		// 观察者可能在立即揭示中停止或重启序列：
		// 本轮调度随之中止，不得再触碰新一轮的待揭示集合
		if s.state != StateRunning || s.epoch != ep {
			return
		}

		e := &s.entries[i]
		if !e.IsEnabled() {
			continue
		}
		if s.registry.IsFailed(e.Path) {
			log.Printf("[Sequencer] 跳过加载失败的条目 '%s' (%s)", e.ID, e.Path)
			continue
		}

		if e.Visible {
			s.reveal(e)
			continue
		}
		s.pending = append(s.pending, pendingReveal{entry: e, fireAt: e.DelaySeconds()})
	}

	// 最后一条立即揭示同样可能触发停止/重启
	if s.state != StateRunning || s.epoch != ep {
		return
	}

	// 稳定排序：相同延迟保持配置声明顺序
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].fireAt < s.pending[j].fireAt
	})

	log.Printf("[Sequencer] 序列开始: %d 个待揭示条目", len(s.pending))

	// 延迟为 0 的条目在调度时即到期
	s.firePending()
}

// Stop 停止序列
//
// 仅在 Running 状态有效（否则无操作）。同步清空待揭示集合、
// 隐藏注册表中的全部资产、通知 OnReset。返回后不会再有揭示触发。
func (s *Sequencer) Stop() {
	if s.state != StateRunning {
		return
	}

	s.epoch++
	s.pending = nil
	s.repeatElapsed = 0
	s.state = StateStopped

	s.controller.HideAll()

	for _, o := range s.observers {
		o.OnReset()
	}
	log.Printf("[Sequencer] 序列停止，全部资产已隐藏")
}

// Restart 重启序列，等价于 Stop 后立即 Start
// 用于自动重播与 target lost 后的再次 found
func (s *Sequencer) Restart() {
	s.Stop()
	s.Start()
}

// Update 推进序列时钟并触发到期揭示
//
// 每帧在渲染前调用一次；非运行状态是无操作。
func (s *Sequencer) Update(deltaTime float64) {
	if s.state != StateRunning || deltaTime < 0 {
		return
	}

	s.elapsed += deltaTime
	s.firePending()

	// 观察者可能在揭示批次中停止了序列
	if s.state != StateRunning {
		return
	}

	if s.repeatInterval > 0 {
		s.repeatElapsed += deltaTime
		if s.repeatElapsed >= s.repeatInterval {
			log.Printf("[Sequencer] 自动重播间隔到期 (%.1fs)", s.repeatInterval)
			s.Restart()
		}
	}
}

// firePending 触发所有到期的待揭示条目（延迟顺序，同延迟按声明顺序）
//
// 每触发一条都重新核对运行状态与 epoch：观察者在 OnReveal 中
// 调用 Stop/Restart 时，同一批次的剩余条目不得继续触发。
func (s *Sequencer) firePending() {
	ep := s.epoch
	for len(s.pending) > 0 {
		if s.state != StateRunning || s.epoch != ep {
			return
		}
		next := s.pending[0]
		if next.fireAt > s.elapsed {
			return
		}
		s.pending = s.pending[1:]
		s.reveal(next.entry)
	}
}

// reveal 揭示一个条目并通知观察者
func (s *Sequencer) reveal(e *config.RevealEntry) {
	h, ok := s.registry.Get(e.Path)
	if ok {
		s.controller.Show(h)
	} else {
		// 正常不可达：失败条目已在 Start 中跳过
		log.Printf("[Sequencer] 揭示 '%s' 失败: %v", e.ID, missingError(e.Path))
	}

	for _, o := range s.observers {
		o.OnReveal(e)
	}
}
