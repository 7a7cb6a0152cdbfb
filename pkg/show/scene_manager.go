package show

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a viewer scene (loading screen, AR/preview viewer).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存状态（如查看器设置）
type Saveable interface {
	// SaveOnExit 在退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// ViewerSceneFactory 查看场景工厂函数类型
// 加载场景完成预加载后通过工厂创建查看场景，避免循环依赖
type ViewerSceneFactory func() Scene

// SceneManager 场景管理器：同一时间只有一个活动场景收到 Update/Draw
type SceneManager struct {
	currentScene  Scene
	viewerFactory ViewerSceneFactory
}

// NewSceneManager 创建场景管理器，初始无活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetViewerFactory 设置查看场景工厂函数
func (sm *SceneManager) SetViewerFactory(factory ViewerSceneFactory) {
	sm.viewerFactory = factory
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// CurrentScene 返回当前活动场景，无活动场景时为 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// EnterViewer 通过工厂创建查看场景并切换过去
func (sm *SceneManager) EnterViewer() {
	if sm.viewerFactory == nil {
		log.Printf("[SceneManager] 错误: ViewerSceneFactory 未设置")
		return
	}
	scene := sm.viewerFactory()
	if scene == nil {
		log.Printf("[SceneManager] 错误: 查看场景创建失败")
		return
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 已进入查看场景")
}

// Update 更新当前活动场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前活动场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
