package config

// 查看器窗口与预览渲染布局常量
// 预览渲染使用简单的正交投影：世界坐标以跟踪锚点为原点，
// 屏幕坐标 = 屏幕中心 + 世界坐标 * PixelsPerUnit（Y 轴向上为正）
const (
	// ViewerWindowWidth 查看器逻辑屏幕宽度（像素）
	ViewerWindowWidth = 960

	// ViewerWindowHeight 查看器逻辑屏幕高度（像素）
	ViewerWindowHeight = 640

	// PixelsPerUnit 世界单位到屏幕像素的换算比例
	PixelsPerUnit = 160.0

	// ModelQuadSize 模型占位方块的基准边长（像素，缩放 1.0 时）
	ModelQuadSize = 96.0

	// SpotlightRadius 聚光圈基准半径（像素）
	SpotlightRadius = 86.0

	// SpotlightPulsePeriod 聚光圈呼吸脉冲周期（秒）
	SpotlightPulsePeriod = 1.6

	// CaptionHoldSeconds 说明文字在揭示后保留的时长（秒）
	CaptionHoldSeconds = 3.0
)

// 默认资源路径
const (
	// DefaultShowConfigPath 默认揭示序列配置
	DefaultShowConfigPath = "assets/config/show.yaml"

	// DefaultTrackScriptPath 默认跟踪事件脚本（脚本跟踪器的目标描述符）
	DefaultTrackScriptPath = "data/tracking/demo.yaml"
)
