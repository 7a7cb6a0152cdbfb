package tracking

import "log"

// PreviewTracker 无跟踪预览模式的跟踪器
//
// 不依赖相机与目标描述符：初始化必定成功，第一帧即报告目标已找到。
// 之后不再产生事件；found/lost 的手动模拟由查看场景的按键处理完成。
// 跟踪初始化失败（InitError）时，应用回退到本实现。
type PreviewTracker struct {
	announced bool
}

// NewPreviewTracker 创建预览跟踪器
func NewPreviewTracker() *PreviewTracker {
	return &PreviewTracker{}
}

// Init 预览模式无需初始化，总是成功
func (t *PreviewTracker) Init() error {
	log.Printf("[PreviewTracker] 预览模式：无相机跟踪，序列立即可用")
	return nil
}

// Update 第一帧发出一次 TargetFound，之后静默
func (t *PreviewTracker) Update(deltaTime float64) []EventKind {
	if !t.announced {
		t.announced = true
		return []EventKind{EventTargetFound}
	}
	return nil
}

// Name 返回跟踪器名称
func (t *PreviewTracker) Name() string {
	return "preview"
}
