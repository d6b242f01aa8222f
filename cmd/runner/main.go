package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"

	"staggered-grid-go/config"
	"staggered-grid-go/engine"
	"staggered-grid-go/gateway"
	"staggered-grid-go/infrastructure/alert"
	"staggered-grid-go/infrastructure/logger"
	"staggered-grid-go/metrics"
	"staggered-grid-go/portfolio"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	symbol := flag.String("symbol", "BTC/USDT", "交易对（例如 BTC/USDT）")
	wsEndpoint := flag.String("wsEndpoint", "", "行情流地址，留空使用配置/默认值")
	metricsAddr := flag.String("metricsAddr", ":9100", "Prometheus metrics 监听地址，留空则关闭")
	alertIntervalS := flag.Int("alertIntervalS", 60, "同类告警限流窗口（秒）")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	symbolUpper := strings.ToUpper(*symbol)
	symConf, ok := cfg.Symbols[symbolUpper]
	if !ok {
		log.Fatalf("symbol %s not found in config", symbolUpper)
	}
	params, err := symConf.Params()
	if err != nil {
		log.Fatalf("symbol %s 参数无效: %v", symbolUpper, err)
	}

	lg, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = lg.Close() }()

	addr := *metricsAddr
	if cfg.MetricsAddr != "" {
		addr = cfg.MetricsAddr
	}
	metrics.StartServer(addr)
	collector := metrics.New(symbolUpper)

	alerts := alert.NewManager(
		[]alert.Channel{alert.NewLogChannel("log", os.Stdout)},
		time.Duration(*alertIntervalS)*time.Second,
	)

	account := portfolio.NewAccount(cfg.Account.Name, cfg.Account.Balances)
	trader := gateway.NewPaperTrader(account)

	decider, err := engine.NewDecider(symbolUpper, params, engine.Components{
		Trader:  trader,
		Account: account,
		Logger:  lg,
		Alerts:  alerts,
		Metrics: collector,
	})
	if err != nil {
		log.Fatalf("初始化决策器失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		lg.Info("shutting down", zap.String("signal", s.String()))
		cancel()
	}()

	// 参数在引擎生命周期内不可变：变更只提示，重启后生效。
	go func() {
		w := config.Watcher{Path: *cfgPath}
		_ = w.Start(ctx, func(config.AppConfig) {
			lg.Info("config file changed, restart runner to apply new parameters",
				zap.String("path", *cfgPath))
		})
	}()

	feed := gateway.NewTickerFeed()
	if *wsEndpoint != "" {
		feed.Endpoint = *wsEndpoint
	} else if cfg.Feed.Endpoint != "" {
		feed.Endpoint = cfg.Feed.Endpoint
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	lg.Info("runner started",
		zap.String("symbol", symbolUpper),
		zap.String("env", cfg.Env),
		zap.String("feed", feed.Endpoint))

	// 每个 tick：先驱动模拟成交与补单，再把参考价交给决策器。
	// 已有挂单时生成周期是幂等空操作，首个 tick 才真正铺设网格。
	runErr := feed.Run(ctx, symbolUpper, func(price float64) {
		for _, crossed := range trader.Crossed(symbolUpper, price) {
			filled, err := trader.Fill(crossed.ID)
			if err != nil {
				lg.Warn("simulated fill failed", zap.String("order_id", crossed.ID), zap.Error(err))
				continue
			}
			if err := decider.OnOrderFilled(ctx, filled); err != nil {
				lg.Warn("fill handling failed", zap.String("order_id", filled.ID), zap.Error(err))
			}
		}
		if err := decider.OnReferencePrice(ctx, price); err != nil {
			lg.Error("grid generation failed", zap.Float64("price", price), zap.Error(err))
		}
	})
	if runErr != nil && ctx.Err() == nil {
		lg.Error("ticker feed terminated", zap.Error(runErr))
	}
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
}
