package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kent12t/SAF-AR/pkg/app"
	"github.com/kent12t/SAF-AR/pkg/config"
	"github.com/kent12t/SAF-AR/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	preview := flag.Bool("preview", false, "强制预览模式（不加载跟踪脚本）")
	showPath := flag.String("show", "", "揭示序列配置路径（默认 "+config.DefaultShowConfigPath+"）")
	trackPath := flag.String("track", "", "跟踪事件脚本路径（默认 "+config.DefaultTrackScriptPath+"）")
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	viewerApp, err := app.NewApp(app.Config{
		Verbose:         *verbose,
		Preview:         *preview,
		ShowConfigPath:  *showPath,
		TrackScriptPath: *trackPath,
	})
	if err != nil {
		log.Fatalf("查看器初始化失败: %v", err)
	}

	// Set window properties
	ebiten.SetWindowSize(config.ViewerWindowWidth, config.ViewerWindowHeight)
	ebiten.SetWindowTitle("SAF AR 查看器")

	// Start the viewer loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(viewerApp); err != nil {
		log.Fatal(err)
	}

	// 窗口关闭后保存查看器设置
	viewerApp.SaveOnExit()
}
