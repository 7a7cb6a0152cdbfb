package show

import (
	"fmt"
	"log"
	"sync"

	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

// Registry 资产注册表
//
// 按资产路径集中持有已加载的场景图句柄与剪辑集合。
// 加载是幂等的：同一路径的第二次 Load 直接返回已有句柄；
// 加载失败按路径缓存，不自动重试（由调用方决定跳过或替换）。
//
// 共享资源策略：注册表与场景图是共享可变状态，所有修改都经过
// 一把粗粒度互斥锁（操作廉价且低频），因此并发预加载是安全的；
// 单线程事件循环下锁无竞争。
type Registry struct {
	mu sync.Mutex

	loader scene.Loader
	anchor *scene.Node

	handles map[string]*Handle // 路径 -> 句柄
	order   []string           // 加载顺序（遍历稳定性）
	failed  map[string]error   // 路径 -> 缓存的加载错误

	// clearHook 在 Clear 释放句柄前调用
	// 由应用装配层注册为序列器的 Stop，保证引用已释放资产的
	// 待揭示回调先被取消
	clearHook func()
}

// NewRegistry 创建资产注册表
//
// 参数：
//   - loader: 容器解码协作方
//   - anchor: 跟踪锚点节点，所有加载的资产子树挂载在其下
func NewRegistry(loader scene.Loader, anchor *scene.Node) *Registry {
	return &Registry{
		loader:  loader,
		anchor:  anchor,
		handles: make(map[string]*Handle),
		failed:  make(map[string]error),
	}
}

// SetClearHook 注册 Clear 前置回调（通常是 Sequencer.Stop）
func (r *Registry) SetClearHook(hook func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearHook = hook
}

// Anchor 返回跟踪锚点节点
func (r *Registry) Anchor() *scene.Node {
	return r.anchor
}

// Load 加载一个揭示条目的资产，按路径幂等
//
// 成功时应用条目的摆放变换并挂载到锚点（初始不可见）。
// 失败被缓存并隔离：同一路径的后续 Load 返回同一错误，
// 其他条目不受影响。
func (r *Registry) Load(entry *config.RevealEntry) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[entry.Path]; ok {
		return h, nil
	}
	if err, ok := r.failed[entry.Path]; ok {
		return nil, err
	}

	node, clips, err := r.loader.Load(entry.Path)
	if err != nil {
		log.Printf("[Registry] 资产加载失败 '%s' (条目 %s): %v", entry.Path, entry.ID, err)
		r.failed[entry.Path] = err
		return nil, err
	}

	// 应用摆放变换，初始隐藏
	s := entry.ScaleOr1()
	node.Position = scene.Vec3{X: entry.Position.X, Y: entry.Position.Y, Z: entry.Position.Z}
	node.Rotation = scene.Vec3{X: entry.Rotation.X, Y: entry.Rotation.Y, Z: entry.Rotation.Z}
	node.Scale = scene.Vec3{X: s, Y: s, Z: s}
	node.SetVisible(false)
	r.anchor.AddChild(node)

	h := &Handle{
		Path:  entry.Path,
		Entry: entry,
		Node:  node,
	}
	for _, clip := range clips.Clips() {
		h.Clips = append(h.Clips, &ClipState{Clip: clip})
	}

	r.handles[entry.Path] = h
	r.order = append(r.order, entry.Path)
	log.Printf("[Registry] 资产已加载 '%s': %d 个剪辑", entry.Path, len(h.Clips))
	return h, nil
}

// Get 按路径查找已加载的句柄
func (r *Registry) Get(path string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[path]
	return h, ok
}

// IsFailed 返回路径是否有缓存的加载失败
func (r *Registry) IsFailed(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.failed[path]
	return ok
}

// Failed 返回加载失败的路径及其错误（拷贝）
func (r *Registry) Failed() map[string]error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]error, len(r.failed))
	for k, v := range r.failed {
		out[k] = v
	}
	return out
}

// Each 按加载顺序遍历所有句柄
func (r *Registry) Each(fn func(*Handle)) {
	r.mu.Lock()
	paths := make([]string, len(r.order))
	copy(paths, r.order)
	r.mu.Unlock()

	for _, p := range paths {
		r.mu.Lock()
		h, ok := r.handles[p]
		r.mu.Unlock()
		if ok {
			fn(h)
		}
	}
}

// LoadedCount 返回已加载句柄数
func (r *Registry) LoadedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// FailedCount 返回加载失败数
func (r *Registry) FailedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failed)
}

// Clear 释放所有句柄：先触发 clearHook 取消待揭示回调，
// 再把场景图子树从锚点脱离并丢弃剪辑数据
func (r *Registry) Clear() {
	r.mu.Lock()
	hook := r.clearHook
	r.mu.Unlock()

	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.handles {
		if h.Node != nil {
			h.Node.Detach()
		}
		h.Clips = nil
	}
	r.handles = make(map[string]*Handle)
	r.order = nil
	r.failed = make(map[string]error)
	log.Printf("[Registry] 已清空全部资产")
}

// missingError Get 未命中且无缓存失败时的占位错误（供序列器日志使用）
func missingError(path string) error {
	return fmt.Errorf("资产 '%s' 未加载", path)
}
