// Package main - Entry point for the finopsguard HTTP server
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"finopsguard/api"
	"finopsguard/core/engine"
	"finopsguard/core/pricing"
	"finopsguard/core/types"
	"finopsguard/internal/config"
	"finopsguard/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgPath := flag.String("config", "", "Config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	eng, err := engine.New(cfg, liveClients(cfg)...)
	if err != nil {
		logging.Error("engine initialization failed", zap.Error(err))
		os.Exit(1)
	}

	server := api.NewServer(eng, version)

	logging.Info("finopsguard server starting",
		zap.String("addr", *addr), zap.String("version", version))

	if err := server.ListenAndServe(*addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// liveClients builds HTTP live pricing clients for clouds with live
// pricing enabled and a base URL in the environment
func liveClients(cfg *config.Config) []pricing.LiveClient {
	var clients []pricing.LiveClient
	for cloud, enabled := range cfg.Pricing.LiveEnabled {
		if !enabled {
			continue
		}
		baseURL := os.Getenv("PRICING_API_" + strings.ToUpper(cloud))
		if baseURL == "" {
			continue
		}
		clients = append(clients, pricing.NewHTTPLiveClient(types.Cloud(cloud), baseURL, nil))
	}
	return clients
}
