package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kent12t/SAF-AR/pkg/scene"
)

// TestLoaderUnsupportedFormat 测试不支持的扩展名返回 UnsupportedFormatError
func TestLoaderUnsupportedFormat(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.Load("assets/models/gate.fbx")
	if err == nil {
		t.Fatal("不支持的扩展名应返回错误")
	}

	var ufe *scene.UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("错误类型应为 UnsupportedFormatError，got %T", err)
	}
	if ufe.Ext != ".fbx" {
		t.Errorf("Ext: got %q, want %q", ufe.Ext, ".fbx")
	}
}

// TestLoaderMissingFile 测试文件不存在返回 LoadError
func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.Load(filepath.Join(t.TempDir(), "missing.smx"))
	if err == nil {
		t.Fatal("文件不存在应返回错误")
	}

	var le *scene.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("错误类型应为 LoadError，got %T", err)
	}
}

// TestLoaderFromDisk 测试从磁盘加载 .smx 容器
func TestLoaderFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gate.smx")
	content := `<model>
  <node name="gate"/>
  <clip name="intro" duration="2.0"/>
</model>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	loader := NewLoader()
	root, clips, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if root.Name != "gate" {
		t.Errorf("根节点: got %q, want %q", root.Name, "gate")
	}
	if clips.Len() != 1 {
		t.Errorf("剪辑数: got %d, want 1", clips.Len())
	}
}

// TestLoaderCorruptFile 测试损坏容器返回 LoadError 并包含底层原因
func TestLoaderCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.gltf")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	loader := NewLoader()
	_, _, err := loader.Load(path)

	var le *scene.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("错误类型应为 LoadError，got %T", err)
	}
	if le.Unwrap() == nil {
		t.Error("LoadError 应携带底层原因")
	}
}
