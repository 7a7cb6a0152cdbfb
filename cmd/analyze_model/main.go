// Package main provides a model container inspection tool.
//
// Usage:
//
//	go run cmd/analyze_model/main.go <容器文件路径>
//
// 支持 .smx 与 .gltf 容器，打印节点层级与剪辑清单。
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kent12t/SAF-AR/internal/model"
	"github.com/kent12t/SAF-AR/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("用法: go run cmd/analyze_model/main.go <容器文件路径>")
		os.Exit(1)
	}

	path := os.Args[1]

	loader := model.NewLoader()
	root, clips, err := loader.Load(path)
	if err != nil {
		log.Fatalf("解析失败: %v", err)
	}

	fmt.Printf("容器文件: %s\n\n", path)

	nodeCount := 0
	maxDepth := 0
	fmt.Println("节点层级:")
	printTree(root, 0, &nodeCount, &maxDepth)

	fmt.Printf("\n节点数量: %d\n", nodeCount)
	fmt.Printf("最大深度: %d\n", maxDepth)

	fmt.Printf("\n剪辑数量: %d\n", len(clips.Clips()))
	total := 0.0
	for _, c := range clips.Clips() {
		fmt.Printf("  %-24s %6.2fs\n", c.Name, c.Duration)
		if c.Duration > total {
			total = c.Duration
		}
	}
	if len(clips.Clips()) > 0 {
		fmt.Printf("最长剪辑: %.2fs\n", total)
	}
}

// printTree 递归打印节点子树
func printTree(n *scene.Node, depth int, count *int, maxDepth *int) {
	*count++
	if depth > *maxDepth {
		*maxDepth = depth
	}
	fmt.Printf("  %s%s\n", strings.Repeat("  ", depth), n.Name)
	for _, c := range n.Children() {
		printTree(c, depth+1, count, maxDepth)
	}
}
