package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/five82/stargaze/internal/config"
	"github.com/five82/stargaze/internal/diag"
	"github.com/five82/stargaze/internal/proxy"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	addr := flag.String("addr", "", "listen address, overrides [proxy] bind (optional)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "stargaze-proxy: %v\n", err)
		return 1
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stargaze-proxy: load config: %v\n", err)
		return 1
	}

	logger, err := diag.NewConsoleLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stargaze-proxy: init logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	key := cfg.UpstreamKey()
	if key == config.DemoKey {
		logger.Warn("no NASA_API_KEY or api_key configured, using the rate limited demo key")
	}

	srv, err := proxy.New(cfg.Proxy.Upstream, key, logger, proxy.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	if err != nil {
		logger.Error("init proxy", zap.Error(err))
		return 1
	}

	listen := cfg.Proxy.Bind
	if *addr != "" {
		listen = *addr
	}
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("proxy listening", zap.String("addr", listen), zap.String("upstream", cfg.Proxy.Upstream))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, shutting down...")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", zap.Error(err))
			return 1
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server shutdown error", zap.Error(err))
		return 1
	}
	logger.Info("shutdown complete")
	return 0
}
