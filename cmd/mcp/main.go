package main

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/app"
	envconfig "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/config"
)

func main() {
	config, err := envconfig.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if !config.IsProd() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ledgerApp, err := app.Build(context.Background(), config, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}
	defer ledgerApp.Close()

	handler := ledgerApp.MCPHandler(config.TrustForwardedJWT, !config.IsProd(), logger)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		logger.Debug("mcp - Memory Status", "MB", m.Alloc/1024/1024)

		return handler(ctx, logger, request)
	})
}
