// Package scene 定义 3D 资产协作方的数据契约
//
// 本包只描述查看器消费的场景图与动画剪辑数据结构，
// 不包含任何解码或渲染逻辑：容器解码由 Loader 实现方提供
// （内置实现见 internal/model），渲染由展示层负责。
package scene

// Vec3 三分量向量，用于位置、旋转、缩放
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Node 场景图节点
//
// 每个加载的资产对应一棵以 Node 为根的子树，由 Asset Registry 独占持有，
// 挂载到跟踪锚点节点下。可见性与变换只能由 Controller / Registry 修改。
type Node struct {
	// Name 节点名称（来自容器文件的节点声明）
	Name string

	// Visible 可见性标志。父节点不可见时整棵子树视为不可见。
	Visible bool

	// Position 位置（世界单位）
	Position Vec3

	// Rotation 旋转（欧拉角，度）
	Rotation Vec3

	// Scale 缩放，各分量独立
	Scale Vec3

	parent   *Node
	children []*Node
}

// NewNode 创建一个不可见的空节点，缩放默认为 1
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Scale: Vec3{X: 1, Y: 1, Z: 1},
	}
}

// AddChild 将 child 挂载为 n 的子节点
// 如果 child 已有父节点，先从原父节点脱离
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.Detach()
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Detach 将节点从其父节点脱离
// Registry.Clear 释放资产时调用，脱离后节点不再参与渲染遍历
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent 返回父节点，根节点返回 nil
func (n *Node) Parent() *Node {
	return n.parent
}

// Children 返回子节点列表（挂载顺序）
func (n *Node) Children() []*Node {
	return n.children
}

// SetVisible 设置节点可见性
func (n *Node) SetVisible(visible bool) {
	n.Visible = visible
}

// Walk 深度优先遍历以 n 为根的子树
// fn 返回 false 时跳过该节点的子树
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
