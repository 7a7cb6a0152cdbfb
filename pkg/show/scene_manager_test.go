package show

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeScene 测试用场景，记录 Update 调用
type fakeScene struct {
	updates int
	lastDT  float64
}

func (s *fakeScene) Update(deltaTime float64) {
	s.updates++
	s.lastDT = deltaTime
}

func (s *fakeScene) Draw(screen *ebiten.Image) {}

// TestSceneManagerInitialState 测试初始无活动场景时 Update 是无操作
func TestSceneManagerInitialState(t *testing.T) {
	sm := NewSceneManager()

	if sm.CurrentScene() != nil {
		t.Error("初始场景应为 nil")
	}

	// 无活动场景时不应 panic
	sm.Update(1.0 / 60.0)
	sm.Draw(nil)
}

// TestSceneManagerSwitchTo 测试场景切换后只有活动场景收到 Update
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	s1 := &fakeScene{}
	s2 := &fakeScene{}

	sm.SwitchTo(s1)
	sm.Update(0.5)

	if s1.updates != 1 || s1.lastDT != 0.5 {
		t.Errorf("s1 更新次数/步长: got %d/%v, want 1/0.5", s1.updates, s1.lastDT)
	}

	sm.SwitchTo(s2)
	sm.Update(0.25)

	if s1.updates != 1 {
		t.Error("切换后旧场景不应再收到 Update")
	}
	if s2.updates != 1 {
		t.Error("切换后新场景应收到 Update")
	}
	if sm.CurrentScene() != s2 {
		t.Error("CurrentScene 应返回新场景")
	}
}

// TestSceneManagerEnterViewer 测试通过工厂进入查看场景
func TestSceneManagerEnterViewer(t *testing.T) {
	sm := NewSceneManager()

	// 工厂未设置时是无操作
	sm.EnterViewer()
	if sm.CurrentScene() != nil {
		t.Error("工厂未设置时 EnterViewer 不应切换场景")
	}

	viewer := &fakeScene{}
	created := 0
	sm.SetViewerFactory(func() Scene {
		created++
		return viewer
	})

	sm.EnterViewer()
	if created != 1 {
		t.Errorf("工厂调用次数: got %d, want 1", created)
	}
	if sm.CurrentScene() != viewer {
		t.Error("EnterViewer 后当前场景应为工厂创建的场景")
	}

	// 工厂返回 nil 时保持当前场景
	sm.SetViewerFactory(func() Scene { return nil })
	sm.EnterViewer()
	if sm.CurrentScene() != viewer {
		t.Error("工厂返回 nil 时不应切换场景")
	}
}
