package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds word-cache settings. The cache is optional: an empty
// addr disables it and reads fall through to PostgreSQL.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"REDIS_TTL"      env-default:"15m"`
}

// Enabled reports whether a cache backend is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// DictionaryConfig holds settings for the external dictionary API.
type DictionaryConfig struct {
	BaseURL string `yaml:"base_url" env:"DICTIONARY_BASE_URL"`
}

// EnrichmentConfig holds AI enrichment and batch-processing settings.
// An empty api_key disables the AI tier; heuristics still run.
type EnrichmentConfig struct {
	APIKey     string        `yaml:"api_key"     env:"ENRICHMENT_API_KEY"`
	Model      string        `yaml:"model"       env:"ENRICHMENT_MODEL"       env-default:"claude-3-5-haiku-latest"`
	BatchDelay time.Duration `yaml:"batch_delay" env:"ENRICHMENT_BATCH_DELAY" env-default:"500ms"`
	BatchLimit int           `yaml:"batch_limit" env:"ENRICHMENT_BATCH_LIMIT" env-default:"50"`
}

// AIEnabled reports whether the AI enrichment tier is configured.
func (c EnrichmentConfig) AIEnabled() bool {
	return c.APIKey != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
