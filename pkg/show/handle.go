// Package show 实现查看器的核心：资产注册表、可见性/动画控制器
// 与定时揭示序列器，以及场景管理与查看器设置。
//
// 本包不依赖渲染库：所有调度都基于展示层逐帧传入的 deltaTime，
// 测试可以用模拟时间驱动完整序列。
package show

import (
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

// ClipState 单个剪辑的播放状态
//
// 剪辑数据（名称、时长）只读，播放进度由 Controller 驱动：
// Show 重置到 0 并播放，Hide 暂停在当前位置，
// Tick 推进所有处于播放中的剪辑，到达末尾后停在最后一帧。
type ClipState struct {
	// Clip 剪辑数据
	Clip scene.Clip

	// Time 当前播放位置（秒）
	Time float64

	// Playing 是否在播放。false 表示暂停或已播完（保持最后一帧）
	Playing bool
}

// Finished 返回剪辑是否已播放到末尾
func (cs *ClipState) Finished() bool {
	return !cs.Playing && cs.Time >= cs.Clip.Duration
}

// Handle 运行时加载的资产句柄
//
// 持有场景图子树（注册表独占所有权）、按声明顺序排列的剪辑状态，
// 以及创建它的揭示条目。只能由 Controller / Registry 修改。
type Handle struct {
	// Path 资产路径（注册表键）
	Path string

	// Entry 创建该句柄的揭示条目（只读配置）
	Entry *config.RevealEntry

	// Node 场景图根节点，已挂载到跟踪锚点下
	Node *scene.Node

	// Clips 剪辑状态列表，顺序 = 容器文件中的声明顺序
	Clips []*ClipState
}

// Visible 返回资产当前是否可见
func (h *Handle) Visible() bool {
	return h.Node != nil && h.Node.Visible
}
