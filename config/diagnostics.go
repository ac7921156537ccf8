package config

import "errors"

// DiagnosticsConfig 诊断配置
type DiagnosticsConfig struct {
	// EnableIntrospect 启用本地自省 HTTP 服务
	EnableIntrospect bool `json:"enable_introspect" yaml:"enable_introspect"`

	// IntrospectAddr 自省服务监听地址
	IntrospectAddr string `json:"introspect_addr" yaml:"introspect_addr"`
}

// DefaultDiagnosticsConfig 返回默认诊断配置
func DefaultDiagnosticsConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		EnableIntrospect: false,
		IntrospectAddr:   "127.0.0.1:6060",
	}
}

// Validate 验证诊断配置
func (c DiagnosticsConfig) Validate() error {
	if c.EnableIntrospect && c.IntrospectAddr == "" {
		return errors.New("introspect addr must not be empty")
	}
	return nil
}
