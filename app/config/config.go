package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// AppConfig cấu hình HTTP server
type AppConfig struct {
	Port string
	Env  string
}

// CacheConfig cấu hình cache tra cứu.
// Backend: "memory", "redis", "mongo" hoặc "hybrid" (Redis L1 + Mongo L2).
type CacheConfig struct {
	Backend    string
	MemorySize int
	MemoryTTL  time.Duration
	L1Size     int
	WarmUpSize int
}

// RedisConfig cấu hình Redis
type RedisConfig struct {
	URL string
}

// MongoConfig cấu hình MongoDB
type MongoConfig struct {
	URL      string
	Database string
}

// MeiliConfig cấu hình Meilisearch cho tìm kiếm kho (admin)
type MeiliConfig struct {
	Enabled   bool
	URL       string
	MasterKey string
	IndexName string
	Timeout   time.Duration
}

// SheetConfig cấu hình sheet store (nguồn dữ liệu kho + search log)
type SheetConfig struct {
	URL     string
	Timeout time.Duration
}

// OpenAIConfig cấu hình AI fallback
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// BranchConfig cấu hình đồng bộ danh sách kho
type BranchConfig struct {
	RefreshInterval time.Duration
}

// Config cấu hình toàn cục của service
type Config struct {
	App      AppConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Meili    MeiliConfig
	Sheet    SheetConfig
	OpenAI   OpenAIConfig
	Branches BranchConfig
}

// Load đọc cấu hình từ file yaml và environment variables
func Load() *Config {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.memory_size", 2048)
	viper.SetDefault("cache.memory_ttl", "24h")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("cache.warmup_size", 5000)
	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "branch_locator")
	viper.SetDefault("meilisearch.enabled", false)
	viper.SetDefault("meilisearch.url", "http://localhost:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("meilisearch.index_name", "branches")
	viper.SetDefault("meilisearch.timeout", "5s")
	viper.SetDefault("sheet.url", "")
	viper.SetDefault("sheet.timeout", "15s")
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.timeout", "12s")
	viper.SetDefault("branches.refresh_interval", "5m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}

	return &Config{
		App: AppConfig{
			Port: viper.GetString("app.port"),
			Env:  viper.GetString("app.env"),
		},
		Cache: CacheConfig{
			Backend:    viper.GetString("cache.backend"),
			MemorySize: viper.GetInt("cache.memory_size"),
			MemoryTTL:  viper.GetDuration("cache.memory_ttl"),
			L1Size:     viper.GetInt("cache.l1_size"),
			WarmUpSize: viper.GetInt("cache.warmup_size"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("redis.url"),
		},
		Mongo: MongoConfig{
			URL:      viper.GetString("mongo.url"),
			Database: viper.GetString("mongo.database"),
		},
		Meili: MeiliConfig{
			Enabled:   viper.GetBool("meilisearch.enabled"),
			URL:       viper.GetString("meilisearch.url"),
			MasterKey: viper.GetString("meilisearch.master_key"),
			IndexName: viper.GetString("meilisearch.index_name"),
			Timeout:   viper.GetDuration("meilisearch.timeout"),
		},
		Sheet: SheetConfig{
			URL:     viper.GetString("sheet.url"),
			Timeout: viper.GetDuration("sheet.timeout"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  viper.GetString("openai.api_key"),
			Model:   viper.GetString("openai.model"),
			Timeout: viper.GetDuration("openai.timeout"),
		},
		Branches: BranchConfig{
			RefreshInterval: viper.GetDuration("branches.refresh_interval"),
		},
	}
}
