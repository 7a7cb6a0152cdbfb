package show

import "github.com/kent12t/SAF-AR/pkg/config"

// SequenceObserver 序列事件的组合式挂钩
//
// 说明文字、聚光效果等展示层附加行为通过实现本接口并注册到
// 序列器来参与序列生命周期，而不是包装或改写序列器的方法。
type SequenceObserver interface {
	// OnReveal 在一个条目被揭示后调用（立即显示与延迟揭示都会触发）
	OnReveal(entry *config.RevealEntry)

	// OnReset 在序列停止（含重启的停止阶段）、全部资产被隐藏后调用
	OnReset()
}

// ObserverFuncs 用函数字段实现 SequenceObserver 的适配器
// 便于测试与 cmd/ 工具注册轻量挂钩；nil 字段是无操作
type ObserverFuncs struct {
	Reveal func(entry *config.RevealEntry)
	Reset  func()
}

// OnReveal 实现 SequenceObserver
func (o *ObserverFuncs) OnReveal(entry *config.RevealEntry) {
	if o.Reveal != nil {
		o.Reveal(entry)
	}
}

// OnReset 实现 SequenceObserver
func (o *ObserverFuncs) OnReset() {
	if o.Reset != nil {
		o.Reset()
	}
}
