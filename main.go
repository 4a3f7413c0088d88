package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"scout/pkg/agent"
	"scout/pkg/backend"
	"scout/pkg/config"
	"scout/pkg/llm"
	_ "scout/pkg/llm/autoload" // 自動註冊 LLM Providers
	"scout/pkg/monitor"
	"scout/pkg/server"
	"scout/pkg/tools"
)

func main() {
	log.Println("==========================================")

	// --- 0. 讀取設定檔 ---
	cfg, sysCfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}
	monitor.SetupSlog(sysCfg.LogLevel)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- 1. LLM 設定 ---
	client, err := llm.NewFromConfig(cfg.LLM, sysCfg)
	if err != nil {
		log.Fatalf("❌ Failed to init LLM client: %v\n", err)
	}

	// --- 2. 工具後端（探測一次，之後不再切換）---
	invoker := backend.Select(rootCtx, cfg, sysCfg)
	stats := monitor.NewStats(string(invoker.Mode()))

	// --- 3. 協調器與工具註冊 ---
	sysStore := config.NewStore(sysCfg)
	orch := agent.NewOrchestrator(client, nil, sysStore, stats)
	orch.RegisterTool(
		tools.NewSearchTool(invoker),
		tools.NewExtractTool(invoker),
		tools.NewSummarizeTool(invoker),
	)

	// --- 4. API 伺服器 ---
	srv := server.NewServer(orch, stats, cfg.Server.Port)
	if err := srv.Start(); err != nil {
		log.Fatalf("❌ Failed to start server: %v\n", err)
	}

	// --- 5. 設定檔熱重載（僅 system.json 的技術參數）---
	// 透過 Store 發佈新設定；進行中的 run 保留自己的 snapshot。
	reloadCh := config.WatchConfig(rootCtx, "system.json")
	go func() {
		for range reloadCh {
			fresh := config.LoadSystemConfig("system.json")
			sysStore.Replace(fresh)
			monitor.SetupSlog(fresh.LogLevel)
			slog.Info("System config reloaded",
				"max_iterations", fresh.MaxIterations,
				"log_level", fresh.LogLevel,
				"enable_tools", fresh.EnableTools,
			)
		}
	}()

	slog.Info("Orchestrator ready",
		"backend_mode", invoker.Mode(),
		"port", cfg.Server.Port,
		"max_iterations", sysCfg.MaxIterations,
	)

	<-rootCtx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
