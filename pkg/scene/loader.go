package scene

import "fmt"

// Loader 资产容器解码协作方的能力契约
//
// 实现方负责从资产路径解码出场景图与剪辑集合。
// 内置实现（internal/model）支持 .smx 与 .gltf 两种容器格式；
// 测试中可注入伪实现以模拟加载失败。
type Loader interface {
	// Load 解码一个资产容器
	//
	// 返回：
	//   - *Node: 场景图根节点（初始不可见）
	//   - *ClipSet: 剪辑集合（声明顺序）
	//   - error: 解码失败返回 *LoadError，扩展名不支持返回 *UnsupportedFormatError
	Load(path string) (*Node, *ClipSet, error)
}

// LoadError 资产加载失败（资源不可达或内容损坏）
// 单个资产的加载失败必须被隔离，不得影响其他条目的揭示
type LoadError struct {
	Path string // 资产路径
	Err  error  // 底层原因
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("资产加载失败 '%s': %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError 资产扩展名不被任何解码器支持
type UnsupportedFormatError struct {
	Path string // 资产路径
	Ext  string // 不支持的扩展名
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的资产格式 '%s'（路径: %s）", e.Ext, e.Path)
}
