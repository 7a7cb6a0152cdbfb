package model

import (
	"encoding/xml"
	"fmt"

	"github.com/kent12t/SAF-AR/pkg/scene"
)

// ParseSMX parses an .smx scene container from raw bytes and converts it
// into a scene graph plus its clip set.
//
// Returns:
//   - *scene.Node: the scene-graph root (initially invisible)
//   - *scene.ClipSet: clips in declaration order
//   - error: parsing error, or nil if successful
func ParseSMX(data []byte) (*scene.Node, *scene.ClipSet, error) {
	var doc SceneXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse smx XML: %w", err)
	}

	if doc.Root.Name == "" {
		return nil, nil, fmt.Errorf("smx scene has no root node")
	}

	root := buildNode(doc.Root)

	clips := scene.NewClipSet()
	for _, c := range doc.Clips {
		if c.Name == "" {
			return nil, nil, fmt.Errorf("smx clip missing name attribute")
		}
		if c.Duration < 0 {
			return nil, nil, fmt.Errorf("smx clip '%s' has negative duration %v", c.Name, c.Duration)
		}
		clips.Add(scene.Clip{Name: c.Name, Duration: c.Duration})
	}

	return root, clips, nil
}

// buildNode 递归把 XML 节点声明转换为场景图节点
func buildNode(decl NodeXML) *scene.Node {
	n := scene.NewNode(decl.Name)
	for _, child := range decl.Children {
		n.AddChild(buildNode(child))
	}
	return n
}
