package config

import (
	"fmt"

	"github.com/kent12t/SAF-AR/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Vec3Config 配置文件中的三分量向量
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RevealEntry 一条揭示配置：资产的摆放与揭示时机
//
// 启动时从静态配置加载一次，之后只读。
// delay 使用毫秒（与外部配置面约定一致），内部统一用秒，见 DelaySeconds。
type RevealEntry struct {
	// ID 条目唯一标识（用于日志与测试）
	ID string `yaml:"id"`

	// Path 资产定位符（如 "assets/models/gate.smx"）
	Path string `yaml:"path"`

	// Position 摆放位置（世界单位，相对跟踪锚点）
	Position Vec3Config `yaml:"position"`

	// Rotation 摆放旋转（欧拉角，度）
	Rotation Vec3Config `yaml:"rotation,omitempty"`

	// Scale 统一缩放，省略时为 1.0
	Scale *float64 `yaml:"scale,omitempty"`

	// Delay 揭示延迟（毫秒，相对序列起点）
	Delay float64 `yaml:"delay"`

	// Visible 初始可见：true 时在 start() 立即显示，不参与延迟调度
	Visible bool `yaml:"visible"`

	// Enabled 条目开关，省略时为 true；false 的条目永不揭示
	Enabled *bool `yaml:"enabled,omitempty"`

	// Caption 揭示时显示的说明文字（可选）
	Caption string `yaml:"caption,omitempty"`

	// Spotlight 揭示时是否附加聚光效果（可选）
	Spotlight bool `yaml:"spotlight,omitempty"`
}

// DelaySeconds 返回揭示延迟（秒）
func (e *RevealEntry) DelaySeconds() float64 {
	return e.Delay / 1000.0
}

// IsEnabled 返回条目是否启用（省略视为启用）
func (e *RevealEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// ScaleOr1 返回统一缩放，省略时为 1.0
func (e *RevealEntry) ScaleOr1() float64 {
	if e.Scale == nil {
		return 1.0
	}
	return *e.Scale
}

// ShowConfig 揭示序列配置文件的顶层结构
type ShowConfig struct {
	// RepeatInterval 自动重播间隔（毫秒），0 表示不自动重播
	RepeatInterval float64 `yaml:"repeat_interval"`

	// Entries 揭示条目列表，声明顺序即同延迟时的揭示顺序
	Entries []RevealEntry `yaml:"entries"`
}

// RepeatIntervalSeconds 返回自动重播间隔（秒）
func (c *ShowConfig) RepeatIntervalSeconds() float64 {
	return c.RepeatInterval / 1000.0
}

// LoadShowConfig 从 YAML 文件加载揭示序列配置
//
// 嵌入资源优先，磁盘回退。加载后立即校验。
//
// 参数：
//   - path: 配置文件路径（如 "assets/config/show.yaml"）
//
// 返回：
//   - *ShowConfig: 解析并通过校验的配置
//   - error: 读取、解析或校验错误
func LoadShowConfig(path string) (*ShowConfig, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取揭示配置 %s: %w", path, err)
	}

	var cfg ShowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("无法解析揭示配置 %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("揭示配置 %s 校验失败: %w", path, err)
	}
	return &cfg, nil
}

// Validate 校验配置合法性
//
// 规则：
//   - 至少一个条目
//   - id 非空且不重复
//   - path 非空
//   - delay 非负
//   - scale（显式给出时）必须为正
//   - repeat_interval 非负
func (c *ShowConfig) Validate() error {
	if len(c.Entries) == 0 {
		return fmt.Errorf("揭示条目列表为空")
	}
	if c.RepeatInterval < 0 {
		return fmt.Errorf("repeat_interval 不能为负: %v", c.RepeatInterval)
	}

	seen := make(map[string]bool)
	for i, e := range c.Entries {
		if e.ID == "" {
			return fmt.Errorf("条目[%d] 缺少 id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("条目 id 重复: %s", e.ID)
		}
		seen[e.ID] = true

		if e.Path == "" {
			return fmt.Errorf("条目 '%s' 缺少 path", e.ID)
		}
		if e.Delay < 0 {
			return fmt.Errorf("条目 '%s' 的 delay 不能为负: %v", e.ID, e.Delay)
		}
		if e.Scale != nil && *e.Scale <= 0 {
			return fmt.Errorf("条目 '%s' 的 scale 必须为正: %v", e.ID, *e.Scale)
		}
	}
	return nil
}
