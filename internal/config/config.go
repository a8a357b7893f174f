package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath      string
	OutputDir   string
	ProductsCSV string

	BotToken          string
	AdminIDs          []int64
	BotPollTimeoutSec int
	BotSendRatePerSec int
	BotDebug          bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:      getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:   getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ProductsCSV: getEnv("PRODUCTS_CSV", filepath.Join(cwd, "data", "products.csv")),

		BotToken:          getEnv("BOT_TOKEN", ""),
		AdminIDs:          getEnvInt64List("ADMIN_IDS"),
		BotPollTimeoutSec: getEnvInt("BOT_POLL_TIMEOUT_SEC", 30),
		BotSendRatePerSec: getEnvInt("BOT_SEND_RATE_PER_SEC", 20),
		BotDebug:          getEnvBool("BOT_DEBUG", false),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvInt64List(key string) []int64 {
	raw := getEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
