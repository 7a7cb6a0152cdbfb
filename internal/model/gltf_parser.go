package model

import (
	"encoding/json"
	"fmt"

	"github.com/kent12t/SAF-AR/pkg/scene"
)

// ParseGLTF parses a .gltf JSON container (minimal subset) and converts it
// into a scene graph plus its clip set.
//
// 支持的子集：
//   - nodes / scenes / scene: 节点层级
//   - animations: 剪辑名称；时长取各 sampler 的 input 访问器 max[0] 的最大值
//
// 网格、材质、蒙皮等渲染数据不在查看器职责范围内，解码时忽略。
func ParseGLTF(data []byte) (*scene.Node, *scene.ClipSet, error) {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse gltf JSON: %w", err)
	}

	if len(doc.Nodes) == 0 {
		return nil, nil, fmt.Errorf("gltf document has no nodes")
	}

	rootIndices, err := rootNodeIndices(&doc)
	if err != nil {
		return nil, nil, err
	}

	// 多个根节点时合成一个统一的根，保证每个资产对应一棵子树
	var root *scene.Node
	built := make(map[int]bool)
	if len(rootIndices) == 1 {
		root, err = buildGLTFNode(&doc, rootIndices[0], built)
		if err != nil {
			return nil, nil, err
		}
	} else {
		root = scene.NewNode("gltf_root")
		for _, idx := range rootIndices {
			child, err := buildGLTFNode(&doc, idx, built)
			if err != nil {
				return nil, nil, err
			}
			root.AddChild(child)
		}
	}

	clips := scene.NewClipSet()
	for i, anim := range doc.Animations {
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", i)
		}
		duration, err := animationDuration(&doc, anim)
		if err != nil {
			return nil, nil, fmt.Errorf("animation '%s': %w", name, err)
		}
		clips.Add(scene.Clip{Name: name, Duration: duration})
	}

	return root, clips, nil
}

// rootNodeIndices 返回场景的根节点索引列表
// 优先使用 scene/scenes 声明，缺失时取未被任何节点引用为子节点的节点
func rootNodeIndices(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = *doc.Scene
		}
		if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
			return nil, fmt.Errorf("gltf scene index %d out of range", sceneIdx)
		}
		if len(doc.Scenes[sceneIdx].Nodes) > 0 {
			return doc.Scenes[sceneIdx].Nodes, nil
		}
	}

	referenced := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			referenced[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !referenced[i] {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("gltf node graph has no root (child cycle?)")
	}
	return roots, nil
}

// buildGLTFNode 递归构建场景图节点
// built 用于检测节点被重复引用或成环的非法结构
func buildGLTFNode(doc *gltfDocument, index int, built map[int]bool) (*scene.Node, error) {
	if index < 0 || index >= len(doc.Nodes) {
		return nil, fmt.Errorf("gltf node index %d out of range", index)
	}
	if built[index] {
		return nil, fmt.Errorf("gltf node %d referenced more than once", index)
	}
	built[index] = true

	decl := doc.Nodes[index]
	name := decl.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", index)
	}

	n := scene.NewNode(name)
	for _, childIdx := range decl.Children {
		child, err := buildGLTFNode(doc, childIdx, built)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// animationDuration 计算剪辑时长：所有 sampler 输入访问器 max[0] 的最大值
func animationDuration(doc *gltfDocument, anim gltfAnimation) (float64, error) {
	duration := 0.0
	for _, sampler := range anim.Samplers {
		if sampler.Input < 0 || sampler.Input >= len(doc.Accessors) {
			return 0, fmt.Errorf("sampler input accessor %d out of range", sampler.Input)
		}
		acc := doc.Accessors[sampler.Input]
		if len(acc.Max) == 0 {
			continue
		}
		if acc.Max[0] > duration {
			duration = acc.Max[0]
		}
	}
	return duration, nil
}
