// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 查看器的配置、示例模型与跟踪脚本都通过本包读取：
// 已初始化时优先从嵌入资源读取，否则回退到磁盘路径，
// 便于 cmd/ 下的工具和测试直接使用外部文件。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	assetsFS    embed.FS
	dataFS      embed.FS
	initialized bool
)

// Init 初始化 embed.FS 变量
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets, data embed.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化资源路径：统一为正斜杠并去掉 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// Open 根据路径前缀选择正确的 embed.FS 并打开文件
// 路径必须以 "assets/" 或 "data/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	path = normalize(path)

	if strings.HasPrefix(path, "assets/") {
		return assetsFS.Open(path)
	} else if strings.HasPrefix(path, "data/") {
		return dataFS.Open(path)
	}
	return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// ReadFile 根据路径前缀选择正确的 embed.FS 并读取文件内容
// 路径必须以 "assets/" 或 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	path = normalize(path)

	if strings.HasPrefix(path, "assets/") {
		return fs.ReadFile(assetsFS, path)
	} else if strings.HasPrefix(path, "data/") {
		return fs.ReadFile(dataFS, path)
	}
	return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Exists 检查文件是否存在于 embed.FS 中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// ReadFileOrDisk 读取资源文件，嵌入资源优先
//
// 已初始化且路径带有已知前缀时先尝试嵌入资源，
// 未初始化或嵌入资源中不存在时从磁盘读取。
// cmd/ 工具与测试不经过 embed.go，依赖磁盘回退加载外部文件。
func ReadFileOrDisk(path string) ([]byte, error) {
	if initialized {
		p := normalize(path)
		if strings.HasPrefix(p, "assets/") || strings.HasPrefix(p, "data/") {
			if data, err := ReadFile(p); err == nil {
				return data, nil
			}
		}
	}
	return os.ReadFile(path)
}
