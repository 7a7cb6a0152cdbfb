// Package tracking 定义图像跟踪协作方的能力契约
//
// 真实的图像目标匹配与位姿解算不在本系统职责范围内；
// 本包只定义查看器消费的契约（初始化、逐帧轮询 found/lost 事件），
// 并提供两个内置实现：
//   - ScriptTracker: 按 YAML 脚本回放定时的 found/lost 事件（演示与测试）
//   - PreviewTracker: 无跟踪预览模式，立即报告目标已找到
package tracking

import "fmt"

// EventKind 跟踪事件类型
type EventKind int

const (
	// EventTargetFound 目标图像进入视野
	EventTargetFound EventKind = iota

	// EventTargetLost 目标图像离开视野
	EventTargetLost
)

// String 返回事件类型的字符串表示（用于日志）
func (k EventKind) String() string {
	switch k {
	case EventTargetFound:
		return "TargetFound"
	case EventTargetLost:
		return "TargetLost"
	default:
		return "Unknown"
	}
}

// Tracker 跟踪器契约
//
// 所有方法都在单一事件循环线程上调用：
// Init 在进入查看场景前调用一次，Update 每帧调用一次并返回本帧产生的事件。
type Tracker interface {
	// Init 初始化跟踪器（加载目标描述符等）
	// 失败返回 *InitError；该错误只对 AR 模式致命，
	// 上层应回退到无跟踪预览模式而不是终止程序。
	Init() error

	// Update 推进跟踪器时间并返回本帧到期的事件（时间顺序）
	// deltaTime 为距上一帧的秒数
	Update(deltaTime float64) []EventKind

	// Name 返回跟踪器名称（用于日志与 HUD）
	Name() string
}

// InitError 跟踪引擎初始化失败（描述符缺失、相机权限被拒等）
type InitError struct {
	Reason string // 失败原因描述
	Err    error  // 底层原因，可为 nil
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("跟踪初始化失败: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("跟踪初始化失败: %s", e.Reason)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
