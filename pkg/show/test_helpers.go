package show

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

// fakeLoader 测试用的容器加载器：不读文件，按路径生成场景图
// failPaths 中的路径返回 LoadError，用于模拟资产加载失败
type fakeLoader struct {
	mu        sync.Mutex
	loadCount map[string]int
	failPaths map[string]bool
	clipsFor  map[string][]scene.Clip
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		loadCount: make(map[string]int),
		failPaths: make(map[string]bool),
		clipsFor:  make(map[string][]scene.Clip),
	}
}

// Fail 标记路径为加载失败
func (l *fakeLoader) Fail(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failPaths[path] = true
}

// SetClips 指定路径的剪辑集合（默认单个 1 秒剪辑）
func (l *fakeLoader) SetClips(path string, clips []scene.Clip) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clipsFor[path] = clips
}

// LoadCount 返回路径被实际解码的次数（验证幂等性）
func (l *fakeLoader) LoadCount(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadCount[path]
}

// Load 实现 scene.Loader
func (l *fakeLoader) Load(path string) (*scene.Node, *scene.ClipSet, error) {
	l.mu.Lock()
	l.loadCount[path]++
	fail := l.failPaths[path]
	clips, hasClips := l.clipsFor[path]
	l.mu.Unlock()

	if fail {
		return nil, nil, &scene.LoadError{Path: path, Err: fmt.Errorf("模拟加载失败")}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	node := scene.NewNode(name)

	cs := scene.NewClipSet()
	if !hasClips {
		clips = []scene.Clip{{Name: "intro", Duration: 1.0}}
	}
	for _, c := range clips {
		cs.Add(c)
	}
	return node, cs, nil
}

// testEntry 构造测试用揭示条目，delayMs 为毫秒延迟
func testEntry(id string, delayMs float64, visible bool) config.RevealEntry {
	return config.RevealEntry{
		ID:      id,
		Path:    "assets/models/" + id + ".smx",
		Delay:   delayMs,
		Visible: visible,
	}
}

// newTestShow 装配一套注册表/控制器/序列器并预加载全部条目
func newTestShow(entries []config.RevealEntry, loader *fakeLoader) (*Registry, *Controller, *Sequencer) {
	if loader == nil {
		loader = newFakeLoader()
	}
	anchor := scene.NewNode("anchor")
	registry := NewRegistry(loader, anchor)
	controller := NewController(registry)
	sequencer := NewSequencer(registry, controller, entries)
	registry.SetClearHook(sequencer.Stop)

	for i := range entries {
		if entries[i].IsEnabled() {
			registry.Load(&entries[i])
		}
	}
	return registry, controller, sequencer
}

// stepUntil 以固定步长推进序列器到目标时刻（含）
func stepUntil(seq *Sequencer, controller *Controller, dt, until float64) {
	for t := 0.0; t < until; t += dt {
		seq.Update(dt)
		controller.Tick(dt)
	}
}
