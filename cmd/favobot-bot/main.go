package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"favobot/internal/bot"
	"favobot/internal/config"
	"favobot/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}
	if cfg.BotDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("storage open failed")
	}
	defer db.Close()

	if _, err := os.Stat(cfg.ProductsCSV); err == nil {
		count, err := db.SeedProductsCSV(cfg.ProductsCSV)
		if err != nil {
			log.WithError(err).Warn("catalog seed failed")
		} else {
			log.WithField("products", count).Info("catalog seeded")
		}
	}

	b, err := bot.New(cfg, db, log)
	if err != nil {
		log.WithError(err).Fatal("bot init failed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("bot stopped")
	}
	log.Info("bot stopped")
}
