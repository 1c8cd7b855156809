package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Graph backends
const (
	BackendNeo4j  = "neo4j"
	BackendMemory = "memory"
)

// Config holds all application configuration. Values come from defaults,
// then the optional YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`
	ServiceName   string `yaml:"service_name"`

	// Dataset
	DatasetPath  string `yaml:"dataset_path"`
	WatchDataset bool   `yaml:"watch_dataset"`

	// Graph backend
	GraphBackend      string        `yaml:"graph_backend"`
	Neo4jURI          string        `yaml:"neo4j_uri"`
	Neo4jUsername     string        `yaml:"neo4j_username"`
	Neo4jPassword     string        `yaml:"neo4j_password"`
	Neo4jDatabase     string        `yaml:"neo4j_database"`
	Neo4jQueryTimeout time.Duration `yaml:"neo4j_query_timeout"`

	// Circuit breaker around the graph backend
	BreakerMaxRequests uint32        `yaml:"breaker_max_requests"`
	BreakerInterval    time.Duration `yaml:"breaker_interval"`
	BreakerTimeout     time.Duration `yaml:"breaker_timeout"`

	// Query limits
	MaxOverlapRows  int           `yaml:"max_overlap_rows"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	RateLimitRefill time.Duration `yaml:"rate_limit_refill"`

	// Lambda configuration
	IsLambda bool `yaml:"is_lambda"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Observability
	EnableMetrics   bool    `yaml:"enable_metrics"`
	TracingEndpoint string  `yaml:"tracing_endpoint"`
	TracingInsecure bool    `yaml:"tracing_insecure"`
	TraceSampleRate float64 `yaml:"trace_sample_rate"`

	// CORS
	EnableCORS  bool     `yaml:"enable_cors"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		ServiceName:   "careergraph",

		DatasetPath:  "data/officers.csv",
		WatchDataset: true,

		GraphBackend:      BackendNeo4j,
		Neo4jURI:          "neo4j://localhost:7687",
		Neo4jUsername:     "neo4j",
		Neo4jDatabase:     "neo4j",
		Neo4jQueryTimeout: 15 * time.Second,

		BreakerMaxRequests: 1,
		BreakerInterval:    60 * time.Second,
		BreakerTimeout:     30 * time.Second,

		MaxOverlapRows:  10,
		RateLimitBurst:  30,
		RateLimitRefill: 2 * time.Second,

		LogLevel:        "info",
		EnableMetrics:   true,
		TraceSampleRate: 1,

		EnableCORS:  true,
		CORSOrigins: []string{"*"},
	}
}

// LoadConfig loads configuration from the optional file and the environment
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)

	c.DatasetPath = getEnv("DATASET_PATH", c.DatasetPath)
	c.WatchDataset = getEnvBool("WATCH_DATASET", c.WatchDataset)

	c.GraphBackend = strings.ToLower(getEnv("GRAPH_BACKEND", c.GraphBackend))
	c.Neo4jURI = getEnv("NEO4J_URI", c.Neo4jURI)
	c.Neo4jUsername = getEnv("NEO4J_USERNAME", c.Neo4jUsername)
	c.Neo4jPassword = getEnv("NEO4J_PASSWORD", c.Neo4jPassword)
	c.Neo4jDatabase = getEnv("NEO4J_DATABASE", c.Neo4jDatabase)
	c.Neo4jQueryTimeout = getEnvDuration("NEO4J_QUERY_TIMEOUT", c.Neo4jQueryTimeout)

	c.BreakerMaxRequests = uint32(getEnvInt("BREAKER_MAX_REQUESTS", int(c.BreakerMaxRequests)))
	c.BreakerInterval = getEnvDuration("BREAKER_INTERVAL", c.BreakerInterval)
	c.BreakerTimeout = getEnvDuration("BREAKER_TIMEOUT", c.BreakerTimeout)

	c.MaxOverlapRows = getEnvInt("MAX_OVERLAP_ROWS", c.MaxOverlapRows)
	c.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.RateLimitRefill = getEnvDuration("RATE_LIMIT_REFILL", c.RateLimitRefill)

	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.TracingEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.TracingEndpoint)
	c.TracingInsecure = getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", c.TracingInsecure)
	c.TraceSampleRate = getEnvFloat("TRACE_SAMPLE_RATE", c.TraceSampleRate)

	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	switch c.GraphBackend {
	case BackendMemory:
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			return fmt.Errorf("NEO4J_URI is required for the neo4j backend")
		}
		if c.IsProduction() && c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASSWORD is required in production")
		}
	default:
		return fmt.Errorf("unknown GRAPH_BACKEND %q", c.GraphBackend)
	}
	if c.MaxOverlapRows <= 0 {
		return fmt.Errorf("MAX_OVERLAP_ROWS must be positive")
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be within [0, 1]")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
