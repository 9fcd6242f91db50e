package main

import (
	"flag"
	"log"
	"os"

	"DealSense/internal/di"
	"DealSense/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s strategy=%s", cfg.Environment, cfg.Recommend.Strategy)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("clickhouse: connected and schema ready - db: %s", cfg.ClickHouse.Database)
	log.Printf("kafka: brokers=%v prices_topic=%s alerts_topic=%s",
		cfg.Kafka.Brokers, cfg.Kafka.PricesTopic, cfg.Kafka.AlertsTopic)

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
