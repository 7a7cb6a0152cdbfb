package show

import (
	"testing"

	"github.com/kent12t/SAF-AR/pkg/config"
)

// visibleByID 返回条目对应资产的当前可见性
func visibleByID(t *testing.T, r *Registry, entries []config.RevealEntry, id string) bool {
	t.Helper()
	for i := range entries {
		if entries[i].ID == id {
			h, ok := r.Get(entries[i].Path)
			if !ok {
				return false
			}
			return h.Visible()
		}
	}
	t.Fatalf("未知条目 id: %s", id)
	return false
}

// TestRevealSchedule 测试规格场景：A(0ms) B(1000ms) C(500ms)
// 期望揭示时序：A 在 T=0，C 在 T=500，B 在 T=1000
func TestRevealSchedule(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("B", 1000, false),
		testEntry("C", 500, false),
	}
	registry, _, seq := newTestShow(entries, nil)

	seq.Start()

	// T=0: 延迟为 0 的 A 作为调度的一部分立即揭示
	if !visibleByID(t, registry, entries, "A") {
		t.Error("T=0: A 应已可见")
	}
	if visibleByID(t, registry, entries, "B") || visibleByID(t, registry, entries, "C") {
		t.Error("T=0: B/C 不应可见")
	}
	if seq.PendingCount() != 2 {
		t.Errorf("T=0: 待揭示数 got %d, want 2", seq.PendingCount())
	}

	// T=0.4: 尚无新揭示
	seq.Update(0.4)
	if visibleByID(t, registry, entries, "C") {
		t.Error("T=0.4: C 不应可见")
	}

	// T=0.5: C 到期
	seq.Update(0.1)
	if !visibleByID(t, registry, entries, "C") {
		t.Error("T=0.5: C 应已可见")
	}
	if visibleByID(t, registry, entries, "B") {
		t.Error("T=0.5: B 不应可见")
	}

	// T=1.0: B 到期，序列完成
	seq.Update(0.5)
	if !visibleByID(t, registry, entries, "B") {
		t.Error("T=1.0: B 应已可见")
	}
	if seq.PendingCount() != 0 {
		t.Errorf("序列完成后待揭示数 got %d, want 0", seq.PendingCount())
	}
}

// TestStopCancelsPending 测试规格场景：T=600ms 停止后 B 永不揭示
func TestStopCancelsPending(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("B", 1000, false),
		testEntry("C", 500, false),
	}
	registry, _, seq := newTestShow(entries, nil)

	seq.Start()
	seq.Update(0.6) // A、C 已揭示

	seq.Stop()

	if seq.State() != StateStopped {
		t.Errorf("Stop 后状态: got %v, want Stopped", seq.State())
	}
	if seq.PendingCount() != 0 {
		t.Error("Stop 必须同步清空待揭示集合")
	}
	// Stop 隐藏全部资产
	for _, id := range []string{"A", "B", "C"} {
		if visibleByID(t, registry, entries, id) {
			t.Errorf("Stop 后 %s 不应可见", id)
		}
	}

	// 任意后续推进都不得再有揭示（无僵尸回调）
	for i := 0; i < 300; i++ {
		seq.Update(1.0 / 60.0)
	}
	if visibleByID(t, registry, entries, "B") {
		t.Error("Stop 后 B 永不应揭示")
	}
}

// TestRevealOncePerRun 测试每个启用条目在一次运行中恰好揭示一次，
// 且揭示时刻落在 [delay, delay+ε] 内（ε 为一帧步长）
func TestRevealOncePerRun(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("B", 250, false),
		testEntry("C", 900, false),
	}
	_, controller, seq := newTestShow(entries, nil)

	const dt = 1.0 / 60.0
	revealAt := make(map[string][]float64)
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			revealAt[e.ID] = append(revealAt[e.ID], seq.Elapsed())
		},
	})

	seq.Start()
	stepUntil(seq, controller, dt, 1.5)

	for i := range entries {
		e := &entries[i]
		times := revealAt[e.ID]
		if len(times) != 1 {
			t.Errorf("条目 %s 揭示次数: got %d, want 1", e.ID, len(times))
			continue
		}
		delay := e.DelaySeconds()
		if times[0] < delay || times[0] > delay+dt+1e-9 {
			t.Errorf("条目 %s 揭示时刻 %v 不在 [%v, %v] 内", e.ID, times[0], delay, delay+dt)
		}
	}
}

// TestEqualDelayInsertionOrder 测试同延迟条目按配置声明顺序揭示
func TestEqualDelayInsertionOrder(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("X", 1000, false),
		testEntry("Y", 1000, false),
	}
	_, _, seq := newTestShow(entries, nil)

	var order []string
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			order = append(order, e.ID)
		},
	})

	seq.Start()
	seq.Update(1.0)

	if len(order) != 2 || order[0] != "X" || order[1] != "Y" {
		t.Errorf("同延迟揭示顺序: got %v, want [X Y]", order)
	}
}

// TestDisabledEntryNeverReveals 测试 enabled:false 条目永不产生揭示
func TestDisabledEntryNeverReveals(t *testing.T) {
	off := false
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("D", 100, false),
	}
	entries[1].Enabled = &off

	_, _, seq := newTestShow(entries, nil)

	var reveals []string
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			reveals = append(reveals, e.ID)
		},
	})

	seq.Start()
	seq.Update(5.0)

	for _, id := range reveals {
		if id == "D" {
			t.Fatal("禁用条目 D 不应被揭示")
		}
	}
	if seq.PendingCount() != 0 {
		t.Error("禁用条目不应留在待揭示集合")
	}
}

// TestInitialVisibleShownAtStart 测试 visible:true 条目在 Start 立即显示
// 且不参与延迟调度
func TestInitialVisibleShownAtStart(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("P", 3000, true), // 初始可见，延迟字段被忽略
		testEntry("B", 1000, false),
	}
	registry, _, seq := newTestShow(entries, nil)

	seq.Start()

	if !visibleByID(t, registry, entries, "P") {
		t.Error("初始可见条目应在 Start 时立即显示")
	}
	if seq.PendingCount() != 1 {
		t.Errorf("待揭示数 got %d, want 1（仅 B）", seq.PendingCount())
	}
}

// TestStartWhileRunningRestarts 测试运行中的 Start 等价于 Restart
// （吸收重复的 target found 事件）
func TestStartWhileRunningRestarts(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("B", 1000, false),
	}
	registry, controller, seq := newTestShow(entries, nil)

	seq.Start()
	seq.Update(0.5)
	controller.Tick(0.5) // A 的剪辑推进到 0.5

	seq.Start() // 重复 found

	if seq.State() != StateRunning {
		t.Fatalf("状态: got %v, want Running", seq.State())
	}
	if seq.Elapsed() != 0 {
		t.Errorf("重启后序列时钟应归零，got %v", seq.Elapsed())
	}
	// A 重新揭示且剪辑从头播放
	h, _ := registry.Get(entries[0].Path)
	if !h.Visible() {
		t.Error("重启后 A 应重新可见")
	}
	if h.Clips[0].Time != 0 || !h.Clips[0].Playing {
		t.Errorf("重启后 A 的剪辑应从 0 重新播放，got time=%v playing=%v",
			h.Clips[0].Time, h.Clips[0].Playing)
	}
	// B 重新进入待揭示集合
	if seq.PendingCount() != 1 {
		t.Errorf("重启后待揭示数 got %d, want 1", seq.PendingCount())
	}
}

// TestRestartEquivalentToStopStart 测试 Restart 与显式 Stop+Start 产生相同状态
func TestRestartEquivalentToStopStart(t *testing.T) {
	makeShow := func() (*Registry, *Controller, *Sequencer, []config.RevealEntry) {
		entries := []config.RevealEntry{
			testEntry("A", 0, false),
			testEntry("B", 800, false),
		}
		r, c, s := newTestShow(entries, nil)
		return r, c, s, entries
	}

	// 路径 1: Restart
	r1, c1, s1, e1 := makeShow()
	s1.Start()
	s1.Update(0.4)
	c1.Tick(0.4)
	s1.Restart()

	// 路径 2: Stop + Start
	r2, c2, s2, e2 := makeShow()
	s2.Start()
	s2.Update(0.4)
	c2.Tick(0.4)
	s2.Stop()
	s2.Start()

	if s1.State() != s2.State() || s1.Elapsed() != s2.Elapsed() || s1.PendingCount() != s2.PendingCount() {
		t.Errorf("序列器状态不一致: (%v %v %d) vs (%v %v %d)",
			s1.State(), s1.Elapsed(), s1.PendingCount(),
			s2.State(), s2.Elapsed(), s2.PendingCount())
	}

	for _, id := range []string{"A", "B"} {
		if visibleByID(t, r1, e1, id) != visibleByID(t, r2, e2, id) {
			t.Errorf("条目 %s 可见性不一致", id)
		}
	}
	h1, _ := r1.Get(e1[0].Path)
	h2, _ := r2.Get(e2[0].Path)
	if h1.Clips[0].Time != h2.Clips[0].Time || h1.Clips[0].Playing != h2.Clips[0].Playing {
		t.Errorf("A 的剪辑状态不一致: %+v vs %+v", *h1.Clips[0], *h2.Clips[0])
	}
}

// TestObserverStopHaltsBatch 测试观察者在 OnReveal 中 Stop 时，
// 同一帧批次内剩余的到期揭示不得继续触发（在途回调防护）
func TestObserverStopHaltsBatch(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 500, false),
		testEntry("B", 500, false),
	}
	registry, _, seq := newTestShow(entries, nil)

	var reveals []string
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			reveals = append(reveals, e.ID)
			seq.Stop()
		},
	})

	seq.Start()
	seq.Update(0.5) // A、B 同时到期

	if len(reveals) != 1 || reveals[0] != "A" {
		t.Fatalf("揭示列表: got %v, want [A]", reveals)
	}
	if visibleByID(t, registry, entries, "B") {
		t.Error("批次被停止后 B 不应可见")
	}
	if seq.PendingCount() != 0 {
		t.Error("Stop 后待揭示集合应为空")
	}
}

// TestObserverRestartDuringStartScheduling 测试观察者在 Start 的
// 立即揭示中调用 Restart 时，被中止的外层调度不得向新一轮的
// 待揭示集合重复追加条目（每个条目每轮仍恰好揭示一次）
func TestObserverRestartDuringStartScheduling(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("P", 0, true), // 初始可见，Start 时立即揭示
		testEntry("B", 500, false),
	}
	_, _, seq := newTestShow(entries, nil)

	restarted := false
	revealCount := make(map[string]int)
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) {
			revealCount[e.ID]++
			if e.ID == "P" && !restarted {
				restarted = true
				seq.Restart()
			}
		},
	})

	seq.Start()

	if !restarted {
		t.Fatal("前置条件: 观察者应已触发重启")
	}
	if seq.State() != StateRunning {
		t.Fatalf("状态: got %v, want Running", seq.State())
	}
	// 待揭示集合只属于重启后的一轮：仅 B 一条
	if seq.PendingCount() != 1 {
		t.Errorf("重启后待揭示数: got %d, want 1", seq.PendingCount())
	}

	seq.Update(0.5)

	if revealCount["B"] != 1 {
		t.Errorf("B 揭示次数: got %d, want 1", revealCount["B"])
	}
	// P: 外层调度一次 + 重启后一轮一次
	if revealCount["P"] != 2 {
		t.Errorf("P 揭示次数: got %d, want 2", revealCount["P"])
	}
	if seq.PendingCount() != 0 {
		t.Errorf("序列完成后待揭示数: got %d, want 0", seq.PendingCount())
	}
}

// TestAutoRepeatRestartsSequence 测试自动重播按固定间隔重启序列
// 并被 Stop 取消
func TestAutoRepeatRestartsSequence(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
	}
	_, _, seq := newTestShow(entries, nil)
	seq.SetRepeatInterval(2.0)

	revealCount := 0
	resetCount := 0
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) { revealCount++ },
		Reset:  func() { resetCount++ },
	})

	seq.Start()
	if revealCount != 1 {
		t.Fatalf("首轮揭示数: got %d, want 1", revealCount)
	}

	// 跨过重播间隔：Restart = Stop(OnReset) + Start(重新揭示)
	seq.Update(2.0)
	if resetCount != 1 {
		t.Errorf("重播后 OnReset 次数: got %d, want 1", resetCount)
	}
	if revealCount != 2 {
		t.Errorf("重播后揭示数: got %d, want 2", revealCount)
	}
	if seq.State() != StateRunning {
		t.Errorf("重播后状态: got %v, want Running", seq.State())
	}

	// Stop 取消重播计时器：之后不再有任何重启或揭示
	seq.Stop()
	for i := 0; i < 600; i++ {
		seq.Update(1.0 / 60.0)
	}
	if revealCount != 2 || resetCount != 2 {
		t.Errorf("Stop 后不应再有活动: reveals=%d resets=%d", revealCount, resetCount)
	}
}

// TestFailedAssetSkipped 测试规格场景：条目 Z 加载失败时被跳过，
// 前后条目仍按计划揭示，Z 永不可见
func TestFailedAssetSkipped(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("Z", 400, false),
		testEntry("B", 800, false),
	}
	loader := newFakeLoader()
	loader.Fail(entries[1].Path)

	registry, _, seq := newTestShow(entries, loader)

	var reveals []string
	seq.AddObserver(&ObserverFuncs{
		Reveal: func(e *config.RevealEntry) { reveals = append(reveals, e.ID) },
	})

	seq.Start()
	seq.Update(1.0)

	if len(reveals) != 2 || reveals[0] != "A" || reveals[1] != "B" {
		t.Errorf("揭示列表: got %v, want [A B]", reveals)
	}
	if _, ok := registry.Get(entries[1].Path); ok {
		t.Error("Z 不应有已加载句柄")
	}
	if _, failed := registry.Failed()[entries[1].Path]; !failed {
		t.Error("Z 的失败应记录在注册表中（供占位提示使用）")
	}
}

// TestStopWhenNotRunningIsNoop 测试非运行状态下 Stop 是无操作
func TestStopWhenNotRunningIsNoop(t *testing.T) {
	entries := []config.RevealEntry{testEntry("A", 0, false)}
	_, _, seq := newTestShow(entries, nil)

	resetCount := 0
	seq.AddObserver(&ObserverFuncs{Reset: func() { resetCount++ }})

	seq.Stop()
	if seq.State() != StateIdle {
		t.Errorf("Idle 下 Stop 后状态: got %v, want Idle", seq.State())
	}
	if resetCount != 0 {
		t.Error("Idle 下 Stop 不应触发 OnReset")
	}

	seq.Start()
	seq.Stop()
	seq.Stop() // 第二次是无操作
	if resetCount != 1 {
		t.Errorf("重复 Stop 的 OnReset 次数: got %d, want 1", resetCount)
	}
}
