package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "cycle": {"mode": "ticker", "interval": "16ms"},
//	  "converter": {"max_rules": 500}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromYAML 从 YAML 数据创建配置
//
// 示例 YAML:
//
//	cycle:
//	  mode: loop
//	  queue_size: 512
//	log:
//	  level: core/converter=debug,info
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从文件加载配置并验证
//
// .yaml / .yml 按 YAML 解析，其余按 JSON 解析。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = FromYAML(data)
	default:
		cfg, err = FromJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化配置为 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ToYAML 序列化配置为 YAML
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "manual": 手动周期（测试、调用方自行驱动）
//   - "eventloop": 专用事件循环 goroutine
//   - "frame": 16ms 固定帧周期
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "manual":
		cfg.Cycle.Mode = CycleModeManual
	case "eventloop":
		cfg.Cycle.Mode = CycleModeLoop
		if cfg.Cycle.QueueSize == 0 {
			cfg.Cycle.QueueSize = DefaultCycleConfig().QueueSize
		}
	case "frame":
		cfg.Cycle.Mode = CycleModeTicker
		cfg.Cycle.Interval = Duration(16 * time.Millisecond)
	case "":
		// 空预设，不做任何操作
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
	return nil
}
