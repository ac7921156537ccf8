package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-notifyrelay/internal/core/eventbus"
	"github.com/dep2p/go-notifyrelay/internal/core/metrics"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
)

var logger = log.Logger("debug/introspect")

// DefaultAddr 默认监听地址
const DefaultAddr = "127.0.0.1:6060"

// ============================================================================
//                              配置
// ============================================================================

// Config 服务配置
type Config struct {
	// Addr 监听地址，默认 "127.0.0.1:6060"
	Addr string

	// Converter 可选的转换注册表
	Converter interfaces.Converter

	// Coalescer 可选的合并调度器
	Coalescer interfaces.Coalescer

	// Bus 可选的总线统计来源
	Bus StatsProvider

	// Collector 可选的指标收集器，为 nil 时不提供 /metrics
	Collector *metrics.Collector

	// CustomHandlers 自定义处理器
	CustomHandlers map[string]http.HandlerFunc
}

// StatsProvider 总线统计接口
type StatsProvider interface {
	Stats() eventbus.Stats
}

// ============================================================================
//                              Server
// ============================================================================

// Server 本地自省 HTTP 服务
type Server struct {
	config Config

	server   *http.Server
	listener net.Listener

	running   bool
	startTime time.Time

	mu sync.Mutex
}

// New 创建自省服务
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{config: cfg}
}

// Start 启动服务
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	mux := http.NewServeMux()

	// 自省端点
	mux.HandleFunc("/debug/introspect", s.handleIntrospect)
	mux.HandleFunc("/debug/introspect/rules", s.handleRules)
	mux.HandleFunc("/debug/introspect/runtime", s.handleRuntime)

	// pprof 端点
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// 指标端点，使用独立注册表，不依赖宿主的全局注册表
	if s.config.Collector != nil {
		reg := prometheus.NewRegistry()
		if err := reg.Register(s.config.Collector); err != nil {
			return err
		}
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("/health", s.handleHealth)

	for path, handler := range s.config.CustomHandlers {
		mux.HandleFunc(path, handler)
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("自省服务异常退出", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	logger.Info("自省服务已启动", "addr", listener.Addr().String())
	return nil
}

// Stop 停止服务
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.Error("关闭自省服务失败", "error", err)
		return err
	}

	s.running = false
	logger.Info("自省服务已停止")
	return nil
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// ============================================================================
//                              响应结构
// ============================================================================

// IntrospectResponse 完整诊断响应
type IntrospectResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Converter *ConverterInfo `json:"converter,omitempty"`
	Coalescer *CoalescerInfo `json:"coalescer,omitempty"`
	Bus       *BusInfo       `json:"bus,omitempty"`
	Metrics   *MetricsInfo   `json:"metrics,omitempty"`
	Runtime   *RuntimeInfo   `json:"runtime,omitempty"`
}

// ConverterInfo 转换注册表信息
type ConverterInfo struct {
	Rules int `json:"rules"`
}

// RuleInfo 单条转换规则
type RuleInfo struct {
	SourceName   string `json:"source_name"`
	SourceSender string `json:"source_sender"`
	TargetName   string `json:"target_name"`
	TargetSender string `json:"target_sender"`
}

// CoalescerInfo 合并调度器信息
type CoalescerInfo struct {
	Pending int `json:"pending"`
}

// BusInfo 事件总线信息
type BusInfo struct {
	Subscriptions int    `json:"subscriptions"`
	Names         int    `json:"names"`
	Published     uint64 `json:"published"`
}

// MetricsInfo 累计计数
type MetricsInfo struct {
	Published     uint64  `json:"published"`
	Delivered     uint64  `json:"delivered"`
	Conversions   uint64  `json:"conversions"`
	Requests      uint64  `json:"requests"`
	Coalesced     uint64  `json:"coalesced"`
	Flushes       uint64  `json:"flushes"`
	CoalesceRatio float64 `json:"coalesce_ratio"`
}

// RuntimeInfo 运行时信息
type RuntimeInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime,omitempty"`
}

// ============================================================================
//                              HTTP 处理器
// ============================================================================

// handleIntrospect 处理完整诊断请求
func (s *Server) handleIntrospect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, IntrospectResponse{
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).String(),
		Converter: s.collectConverterInfo(),
		Coalescer: s.collectCoalescerInfo(),
		Bus:       s.collectBusInfo(),
		Metrics:   s.collectMetricsInfo(),
		Runtime:   s.collectRuntimeInfo(),
	})
}

// handleRules 处理规则列表请求
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.config.Converter == nil {
		http.Error(w, "Converter not available", http.StatusServiceUnavailable)
		return
	}

	rules := s.config.Converter.Rules()
	out := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		out = append(out, RuleInfo{
			SourceName:   rule.SourceName,
			SourceSender: rule.SourceSender.String(),
			TargetName:   rule.TargetName,
			TargetSender: rule.TargetSender.String(),
		})
	}
	s.writeJSON(w, out)
}

// handleRuntime 处理运行时信息请求
func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.collectRuntimeInfo())
}

// handleHealth 处理健康检查请求
//
// 缺少转换注册表或合并调度器时为 degraded。
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).String(),
	}
	if s.config.Converter == nil || s.config.Coalescer == nil {
		health.Status = "degraded"
	}
	s.writeJSON(w, health)
}

// ============================================================================
//                              数据收集
// ============================================================================

func (s *Server) collectConverterInfo() *ConverterInfo {
	if s.config.Converter == nil {
		return nil
	}
	return &ConverterInfo{Rules: s.config.Converter.Len()}
}

func (s *Server) collectCoalescerInfo() *CoalescerInfo {
	if s.config.Coalescer == nil {
		return nil
	}
	return &CoalescerInfo{Pending: s.config.Coalescer.Pending()}
}

func (s *Server) collectBusInfo() *BusInfo {
	if s.config.Bus == nil {
		return nil
	}
	st := s.config.Bus.Stats()
	return &BusInfo{
		Subscriptions: st.Subscriptions,
		Names:         st.Names,
		Published:     st.Published,
	}
}

func (s *Server) collectMetricsInfo() *MetricsInfo {
	if s.config.Collector == nil {
		return nil
	}
	snap := s.config.Collector.Snapshot()
	return &MetricsInfo{
		Published:     snap.Published,
		Delivered:     snap.Delivered,
		Conversions:   snap.Conversions,
		Requests:      snap.Requests,
		Coalesced:     snap.Coalesced,
		Flushes:       snap.Flushes,
		CoalesceRatio: snap.CoalesceRatio(),
	}
}

// collectRuntimeInfo 收集运行时信息
func (s *Server) collectRuntimeInfo() *RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &RuntimeInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		NumGC:        m.NumGC,
	}
}

// writeJSON 写入 JSON 响应
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("编码 JSON 响应失败", "error", err)
	}
}
