// Local Library 目录服务
//
// @title           Local Library API
// @version         1.0
// @description     图书馆目录的只读JSON接口，页面走服务端模板渲染
// @BasePath        /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/pkg/logger"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/tracing"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 日志
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("store", cfg.Store.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Bool("mq", cfg.MQ.Enabled).
		Msg("✓ 配置加载成功")

	gin.SetMode(cfg.Server.Mode)

	// 3. 指标和链路追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("关闭链路追踪失败")
			}
		}()
		log.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("✓ 链路追踪已启用")
	}

	// 4. 依赖注入
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化应用失败")
	}
	defer cleanup()

	// 5. 启动服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🚀 服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("启动服务失败")
		}
	}()

	// 6. 优雅关闭：等待进行中的请求处理完
	<-ctx.Done()
	log.Info().Msg("收到退出信号，正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("服务关闭超时")
		return
	}
	log.Info().Msg("✓ 服务已关闭")
}
