package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	StatsAPI StatsAPIConfig `json:"stats_api"`
	Cache    CacheConfig    `json:"cache"`
	Redis    RedisConfig    `json:"redis"`
	MongoDB  MongoDBConfig  `json:"mongodb"`
	GeoIP    GeoIPConfig    `json:"geoip"`
	Versions VersionsConfig `json:"versions"`
}

type ServerConfig struct {
	Port           int      `json:"port"`
	Host           string   `json:"host"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// StatsAPIConfig points at the network stats API that serves bucketed
// metrics and node lists.
type StatsAPIConfig struct {
	BaseURL string `json:"base_url"`
	Timeout int    `json:"timeout_seconds"`
}

type CacheConfig struct {
	TTL int `json:"ttl_seconds"`
}

type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Enabled  bool   `json:"enabled"`
	UseTLS   bool   `json:"use_tls"`
}

type MongoDBConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	Enabled  bool   `json:"enabled"`
}

type GeoIPConfig struct {
	DBPath string `json:"db_path"`
}

// VersionsConfig mirrors the network's node software requirements.
type VersionsConfig struct {
	CurrentStable string `json:"current_stable"`
	MinSupported  string `json:"min_supported"`
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	// Default configuration
	cfg := &Config{
		Server: ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			AllowedOrigins: []string{"*"},
		},
		StatsAPI: StatsAPIConfig{
			BaseURL: "https://stats.l1.example.net/prod",
			Timeout: 10,
		},
		Cache: CacheConfig{
			TTL: 30,
		},
		Redis: RedisConfig{
			Address:  "localhost:6379",
			Password: "",
			DB:       0,
			Enabled:  true,
			UseTLS:   false,
		},
		MongoDB: MongoDBConfig{
			URI:      "mongodb://localhost:27017",
			Database: "l1board",
			Enabled:  true,
		},
		GeoIP: GeoIPConfig{
			DBPath: "",
		},
		Versions: VersionsConfig{
			CurrentStable: "0.5.1",
			MinSupported:  "0.5.0",
		},
	}

	// Load from config file if exists
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config/config.json"
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err == nil {
			defer file.Close()
			decoder := json.NewDecoder(file)
			if err := decoder.Decode(cfg); err != nil {
				fmt.Printf("Warning: Failed to decode config file: %v\n", err)
			}
		}
	}

	// Load from environment variables (overrides config file)
	loadEnv(cfg)

	// Load from command-line flags (overrides everything)
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var serverPort int
	var serverHost string

	fs.IntVar(&serverPort, "port", 0, "Server port")
	fs.StringVar(&serverHost, "host", "", "Server host")

	_ = fs.Parse(os.Args[1:])

	if isFlagPassed(fs, "port") {
		cfg.Server.Port = serverPort
	}
	if isFlagPassed(fs, "host") {
		cfg.Server.Host = serverHost
	}

	return cfg, nil
}

func isFlagPassed(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func loadEnv(cfg *Config) {
	// Server configuration
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = p
		}
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.Server.AllowedOrigins = parts
	}

	// Stats API configuration
	if val := os.Getenv("STATS_API_BASE_URL"); val != "" {
		cfg.StatsAPI.BaseURL = val
	}
	if val := os.Getenv("STATS_API_TIMEOUT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.StatsAPI.Timeout = p
		}
	}

	// Cache configuration
	if val := os.Getenv("CACHE_TTL"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Cache.TTL = p
		}
	}

	// Redis configuration
	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = p
		}
	}
	if val := os.Getenv("REDIS_ENABLED"); val != "" {
		cfg.Redis.Enabled = val == "true" || val == "1"
	}
	if val := os.Getenv("REDIS_USE_TLS"); val != "" {
		cfg.Redis.UseTLS = val == "true" || val == "1"
	}

	// MongoDB configuration
	if val := os.Getenv("MONGODB_URI"); val != "" {
		cfg.MongoDB.URI = val
	}
	if val := os.Getenv("MONGODB_DATABASE"); val != "" {
		cfg.MongoDB.Database = val
	}
	if val := os.Getenv("MONGODB_ENABLED"); val != "" {
		cfg.MongoDB.Enabled = val == "true" || val == "1"
	}

	// GeoIP configuration
	if val := os.Getenv("GEOIP_DB_PATH"); val != "" {
		cfg.GeoIP.DBPath = val
	}

	// Version requirements
	if val := os.Getenv("NODE_VERSION_STABLE"); val != "" {
		cfg.Versions.CurrentStable = val
	}
	if val := os.Getenv("NODE_VERSION_MIN"); val != "" {
		cfg.Versions.MinSupported = val
	}
}

// Helper methods for duration conversion
func (c *Config) StatsAPITimeoutDuration() time.Duration {
	return time.Duration(c.StatsAPI.Timeout) * time.Second
}

func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}
