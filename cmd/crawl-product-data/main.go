package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/config"
	"github.com/tuonglequoc/crawl-product-data/pkg/crawler"
	"github.com/tuonglequoc/crawl-product-data/pkg/fetch"
	"github.com/tuonglequoc/crawl-product-data/pkg/storage"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to config file")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	workers := flag.Int("workers", 0, "Override concurrent category traversals (0 = use config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", *logLevel, err)
	}
	log.SetLevel(level)

	// .env is optional; DATABASE_URL may come from the real environment
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warnf("Config: %s", w)
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := storage.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to open product store: %v", err)
	}
	defer store.Close()

	client := fetch.NewClient(cfg.HTTPClient, log)
	fetcher := fetch.NewFetcher(client, log)

	log.WithFields(logrus.Fields{
		"base_url": cfg.BaseURL,
		"limit":    cfg.Limit,
		"workers":  cfg.Workers,
	}).Info("Starting crawl")

	c := crawler.New(cfg, fetcher, store, log)
	if _, err := c.Run(ctx); err != nil {
		log.Fatalf("Crawl failed: %v", err)
	}
}
