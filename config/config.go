// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML 加载配置
//   - 支持预设配置（manual/eventloop/frame）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Cycle.Mode = config.CycleModeLoop
//
//	// 应用预设
//	config.ApplyPreset(cfg, "frame")
//
//	// 从文件加载（按扩展名选择 JSON 或 YAML）
//	cfg, err := config.LoadFile("notifyrelay.yaml")
package config

// Config 是 notifyrelay 的完整配置结构
//
// 配置按照功能模块组织：
//   - Converter: 通知转换注册表
//   - Coalescer: 合并投递
//   - Cycle: 处理周期宿主
//   - Metrics: 指标收集
//   - Log: 日志
//   - Diagnostics: 自省服务
type Config struct {
	// Converter 转换注册表配置
	Converter ConverterConfig `json:"converter" yaml:"converter"`

	// Coalescer 合并投递配置
	Coalescer CoalescerConfig `json:"coalescer" yaml:"coalescer"`

	// Cycle 处理周期配置
	Cycle CycleConfig `json:"cycle" yaml:"cycle"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log"`

	// Diagnostics 诊断配置
	Diagnostics DiagnosticsConfig `json:"diagnostics" yaml:"diagnostics"`
}

// NewConfig 创建默认配置
//
// 默认使用手动周期，适合测试和由调用方驱动周期的宿主。
func NewConfig() *Config {
	return &Config{
		Converter:   DefaultConverterConfig(),
		Coalescer:   DefaultCoalescerConfig(),
		Cycle:       DefaultCycleConfig(),
		Metrics:     DefaultMetricsConfig(),
		Log:         DefaultLogConfig(),
		Diagnostics: DefaultDiagnosticsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.Converter.Validate(); err != nil {
		return err
	}
	if err := c.Coalescer.Validate(); err != nil {
		return err
	}
	if err := c.Cycle.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Diagnostics.Validate(); err != nil {
		return err
	}
	return nil
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
