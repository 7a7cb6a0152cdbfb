// Package model provides the built-in scene container decoders for the viewer.
// It implements the scene.Loader contract for two container formats:
//   - .smx: XML scene container (node hierarchy + named clips)
//   - .gltf: JSON container, a minimal subset of the glTF 2.0 layout
//
// 解码结果统一转换为 scene.Node / scene.ClipSet，
// 剪辑集合保持容器文件中的声明顺序。
package model

// SceneXML is the root structure of an .smx scene container file.
type SceneXML struct {
	// Root is the root node declaration of the scene graph
	Root NodeXML `xml:"node"`

	// Clips is the list of named animation clips, in declaration order
	Clips []ClipXML `xml:"clip"`
}

// NodeXML 场景图节点声明，可嵌套
type NodeXML struct {
	// Name 节点名称
	Name string `xml:"name,attr"`

	// Children 子节点声明（声明顺序）
	Children []NodeXML `xml:"node"`
}

// ClipXML 剪辑声明
type ClipXML struct {
	// Name 剪辑名称（如 "intro"）
	Name string `xml:"name,attr"`

	// Duration 剪辑时长（秒）
	Duration float64 `xml:"duration,attr"`
}

// gltfDocument 是 glTF JSON 容器的最小子集
// 只解码查看器需要的字段：节点层级与动画时长
type gltfDocument struct {
	Scene      *int            `json:"scene"`
	Scenes     []gltfScene     `json:"scenes"`
	Nodes      []gltfNode      `json:"nodes"`
	Animations []gltfAnimation `json:"animations"`
	Accessors  []gltfAccessor  `json:"accessors"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfNode struct {
	Name     string `json:"name"`
	Children []int  `json:"children"`
}

type gltfAnimation struct {
	Name     string        `json:"name"`
	Samplers []gltfSampler `json:"samplers"`
}

type gltfSampler struct {
	// Input 是关键帧时间访问器的索引，其 max[0] 即剪辑时长
	Input int `json:"input"`
}

type gltfAccessor struct {
	Max []float64 `json:"max"`
}
