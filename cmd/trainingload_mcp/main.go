// Package main runs the training load MCP server over stdio, for local AI clients.
// The same tools are mounted on the service at /mcp over streamable HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/tron2005/markvera/internal/cache"
	"github.com/tron2005/markvera/internal/config"
	"github.com/tron2005/markvera/internal/db"
	"github.com/tron2005/markvera/internal/fitness/activities"
	"github.com/tron2005/markvera/internal/fitness/analysis"
	fitnessmcp "github.com/tron2005/markvera/internal/fitness/mcp"
	"github.com/tron2005/markvera/internal/telemetry/metrics"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	userID := flag.String("user", "", "athlete id tool calls default to (overrides mcp_user_id)")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(log.WarnLevel)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("MARKVERA_POSTGRES_USER"),
		DBPassword: os.Getenv("MARKVERA_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	defaultUser := cfg.MCPUserID
	if *userID != "" {
		defaultUser = *userID
	}

	// nothing scrapes a stdio process, the registry only backs the counters
	metricsManager := metrics.NewManager("markvera", "mcp", metrics.SetupPrometheus())
	analysisService := analysis.NewService(
		activities.NewRepo(dbPool),
		cache.NewLayeredMetricsCache(cache.NewLocalMetricsCache(cfg.LocalCacheSizeMB), nil, metricsManager),
		cfg.MetricsCacheTTL.Duration,
		location,
		metricsManager,
	)
	server := fitnessmcp.NewServer(fitnessmcp.NewPoolSchemaRepo(dbPool), analysisService, defaultUser, location)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
