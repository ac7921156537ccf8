// Package main 提供 notifyrelay 命令行入口
//
// 按脚本驱动一个手动周期的通知中心，并打印每个投递的事件：
//
//	notifyrelay -script demo.json
//	notifyrelay -config notifyrelay.yaml -script demo.json -log-level debug
//	notifyrelay -introspect 127.0.0.1:6060
//
// 指定 -introspect 时脚本执行完成后保持运行，直到收到 SIGINT / SIGTERM，
// 期间可通过 HTTP 查看规则和计数。
//
// 未指定 -script 时运行内置演示脚本。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-notifyrelay"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
)

var logger = log.Logger("notifyrelay/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile   = flag.String("config", "", "配置文件路径（JSON / YAML）")
	scriptFile   = flag.String("script", "", "脚本文件路径（JSON），为空时运行内置演示")
	logLevel     = flag.String("log-level", "", "日志级别，例如 debug 或 warn,core/converter=debug")
	introspectOn = flag.String("introspect", "", "自省服务监听地址，为空时不启用")
	showVersion  = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(notifyrelay.VersionInfo())
		return nil
	}

	script, err := loadScript(*scriptFile)
	if err != nil {
		return err
	}

	opts := []notifyrelay.Option{
		// 脚本中的 flush 步骤需要手动周期
		notifyrelay.WithCycleMode(notifyrelay.CycleManual),
	}
	if *configFile != "" {
		opts = append([]notifyrelay.Option{notifyrelay.WithConfigFile(*configFile)}, opts...)
	}
	if *logLevel != "" {
		opts = append(opts, notifyrelay.WithLogLevel(*logLevel))
	}
	if *introspectOn != "" {
		opts = append(opts, notifyrelay.WithIntrospect(*introspectOn))
	}

	center, err := notifyrelay.New(opts...)
	if err != nil {
		return fmt.Errorf("创建通知中心失败: %w", err)
	}
	defer func() { _ = center.Close() }()

	ctx := context.Background()
	if err := center.Start(ctx); err != nil {
		return fmt.Errorf("启动通知中心失败: %w", err)
	}

	logger.Debug("开始执行脚本", "steps", len(script.Steps))
	if err := newRunner(center, os.Stdout).run(script); err != nil {
		return err
	}

	m := center.Metrics()
	logger.Info("脚本执行完成",
		"published", m.Published,
		"conversions", m.Conversions,
		"requests", m.Requests,
		"coalesced", m.Coalesced,
		"flushes", m.Flushes,
	)

	if addr := center.IntrospectAddr(); addr != "" {
		logger.Info("自省服务运行中，按 Ctrl+C 退出", "addr", "http://"+addr+"/debug/introspect")
		sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		<-sigCtx.Done()
		stop()
	}
	return center.Stop(ctx)
}
