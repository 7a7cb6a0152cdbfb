package model

import (
	"path/filepath"
	"strings"

	"github.com/kent12t/SAF-AR/pkg/embedded"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

// Loader 是内置的 scene.Loader 实现，按扩展名分派到对应解码器
type Loader struct{}

// NewLoader 创建内置容器加载器
func NewLoader() *Loader {
	return &Loader{}
}

// Load 解码一个资产容器文件
//
// 嵌入资源优先（assets/ 或 data/ 前缀），否则从磁盘读取。
// 不支持的扩展名返回 *scene.UnsupportedFormatError，
// 读取或解码失败返回 *scene.LoadError。
func (l *Loader) Load(path string) (*scene.Node, *scene.ClipSet, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var parse func([]byte) (*scene.Node, *scene.ClipSet, error)
	switch ext {
	case ".smx":
		parse = ParseSMX
	case ".gltf":
		parse = ParseGLTF
	default:
		return nil, nil, &scene.UnsupportedFormatError{Path: path, Ext: ext}
	}

	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, nil, &scene.LoadError{Path: path, Err: err}
	}

	root, clips, err := parse(data)
	if err != nil {
		return nil, nil, &scene.LoadError{Path: path, Err: err}
	}
	return root, clips, nil
}
