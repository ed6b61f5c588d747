// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	LLM      LLMConfig               `mapstructure:"llm"`
	Engine   EngineConfig            `mapstructure:"engine"`
	Catalog  CatalogConfig           `mapstructure:"catalog"`
	Server   ServerConfig            `mapstructure:"server"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// --- Recommendation engine ---

// LLMConfig configures the chat-completions endpoint used by the AI path.
// An empty APIKey disables the AI path entirely.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// Enabled reports whether the AI path can be attempted.
func (l LLMConfig) Enabled() bool {
	return l.APIKey != "" && l.BaseURL != ""
}

// EngineConfig holds the tunables of the recommendation pipeline.
type EngineConfig struct {
	SimilarityThreshold float64        `mapstructure:"similarity_threshold"`
	TopN                int            `mapstructure:"top_n"`
	MinTechniques       int            `mapstructure:"min_techniques"`
	MaxTechniques       int            `mapstructure:"max_techniques"`
	CategoryOrder       map[string]int `mapstructure:"category_order"`
}

// CatalogConfig selects where technique descriptors are read from.
type CatalogConfig struct {
	Source   string `mapstructure:"source"` // postgres | file
	FilePath string `mapstructure:"file_path"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds, 0 disables the redis snapshot
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
