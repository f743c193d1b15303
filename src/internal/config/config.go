package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=wallet_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultPort = "8080"
const defaultChannelID = "WalletApp"
const defaultChannelKey = "WalletChannelKey001"

type Config struct {
	Port           string
	DatabaseDSN    string
	MigrationsDir  string
	ChannelID      string
	ChannelKey     string
	ChannelKeyHash string
}

func Load() (Config, error) {
	// .env is optional; production relies on real environment variables.
	if err := godotenv.Load(); err != nil {
		logger.Info("config no .env file found, using environment variables", nil)
	}

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("src", "migrations")
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	// When set, CHANNEL_KEY_HASH (bcrypt) takes precedence over the
	// plaintext CHANNEL_KEY comparison in the auth middleware.
	channelKeyHash := strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH"))

	return Config{
		Port:           port,
		DatabaseDSN:    normalizeConnectionString(conn),
		MigrationsDir:  migrationsDir,
		ChannelID:      channelID,
		ChannelKey:     channelKey,
		ChannelKeyHash: channelKeyHash,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
