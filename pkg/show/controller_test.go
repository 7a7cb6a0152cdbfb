package show

import (
	"testing"

	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

// loadedHandle 加载单个测试条目并返回其句柄
func loadedHandle(t *testing.T, clips []scene.Clip) (*Controller, *Handle) {
	t.Helper()
	loader := newFakeLoader()
	entry := testEntry("A", 0, false)
	if clips != nil {
		loader.SetClips(entry.Path, clips)
	}
	registry, controller, _ := newTestShow([]config.RevealEntry{entry}, loader)
	h, ok := registry.Get(entry.Path)
	if !ok {
		t.Fatal("测试资产未加载")
	}
	return controller, h
}

// TestShowResetsClips 测试 Show 显示资产并把所有剪辑从头播放
func TestShowResetsClips(t *testing.T) {
	controller, h := loadedHandle(t, []scene.Clip{
		{Name: "intro", Duration: 1.0},
		{Name: "loop_pose", Duration: 2.5},
	})

	// 预置一些播放进度，验证 Show 的重置语义
	h.Clips[0].Time = 0.7
	h.Clips[1].Time = 2.5
	h.Clips[1].Playing = false

	controller.Show(h)

	if !h.Visible() {
		t.Error("Show 后资产应可见")
	}
	for i, cs := range h.Clips {
		if cs.Time != 0 || !cs.Playing {
			t.Errorf("剪辑 %d 应从 0 重新播放, got time=%v playing=%v", i, cs.Time, cs.Playing)
		}
	}
}

// TestHidePausesRetainingPosition 测试 Hide 暂停剪辑并保留播放位置
func TestHidePausesRetainingPosition(t *testing.T) {
	controller, h := loadedHandle(t, nil)

	controller.Show(h)
	controller.Tick(0.4)

	controller.Hide(h)

	if h.Visible() {
		t.Error("Hide 后资产不应可见")
	}
	if h.Clips[0].Playing {
		t.Error("Hide 后剪辑应暂停")
	}
	if h.Clips[0].Time != 0.4 {
		t.Errorf("暂停位置应保留, got %v, want 0.4", h.Clips[0].Time)
	}

	// 幂等：再次 Hide 不改变位置
	controller.Hide(h)
	if h.Clips[0].Time != 0.4 {
		t.Error("重复 Hide 不应改变剪辑位置")
	}
}

// TestTickHoldsLastFrame 测试剪辑播完后停在最后一帧，不循环不归零
func TestTickHoldsLastFrame(t *testing.T) {
	controller, h := loadedHandle(t, []scene.Clip{{Name: "intro", Duration: 1.0}})

	controller.Show(h)
	controller.Tick(0.6)
	controller.Tick(0.6) // 越过时长

	cs := h.Clips[0]
	if cs.Time != 1.0 {
		t.Errorf("播完后时间应钳在时长, got %v", cs.Time)
	}
	if cs.Playing {
		t.Error("播完后不应继续播放")
	}
	if !cs.Finished() {
		t.Error("Finished 应为 true")
	}

	// 继续推进不改变任何状态
	controller.Tick(5.0)
	if cs.Time != 1.0 {
		t.Errorf("播完后继续 Tick 不应移动, got %v", cs.Time)
	}
	// 资产保持可见（停在最后一帧而不是消失）
	if !h.Visible() {
		t.Error("播完后资产应保持可见")
	}
}

// TestTickAdvancesHiddenHandles 测试 Tick 不区分可见性：
// 隐藏但处于播放状态的剪辑同样前进（计时与显示解耦）
func TestTickAdvancesHiddenHandles(t *testing.T) {
	controller, h := loadedHandle(t, nil)

	controller.Show(h)
	h.Node.SetVisible(false) // 绕过 Hide，剪辑仍在播放

	controller.Tick(0.3)

	if h.Clips[0].Time != 0.3 {
		t.Errorf("隐藏句柄的播放中剪辑应继续前进, got %v", h.Clips[0].Time)
	}
}

// TestTickIgnoresNonPositiveDelta 测试非正步长是无操作
func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	controller, h := loadedHandle(t, nil)

	controller.Show(h)
	controller.Tick(0)
	controller.Tick(-1)

	if h.Clips[0].Time != 0 {
		t.Errorf("非正步长不应推进剪辑, got %v", h.Clips[0].Time)
	}
}

// TestShowHideNilSafe 测试 nil 句柄是无操作
func TestShowHideNilSafe(t *testing.T) {
	controller, _ := loadedHandle(t, nil)

	controller.Show(nil)
	controller.Hide(nil)
	controller.Show(&Handle{Path: "x"}) // Node 为 nil
}

// TestHideAll 测试 HideAll 隐藏注册表中的全部资产
func TestHideAll(t *testing.T) {
	entries := []config.RevealEntry{
		testEntry("A", 0, false),
		testEntry("B", 0, false),
	}
	registry, controller, _ := newTestShow(entries, nil)

	registry.Each(func(h *Handle) { controller.Show(h) })
	controller.HideAll()

	registry.Each(func(h *Handle) {
		if h.Visible() {
			t.Errorf("HideAll 后 '%s' 不应可见", h.Path)
		}
		if h.Clips[0].Playing {
			t.Errorf("HideAll 后 '%s' 的剪辑应暂停", h.Path)
		}
	})
}
