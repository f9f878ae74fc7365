package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	domain "github.com/rahulAtGit/ZentriqVision/domain/config"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Metrics backends
const (
	MetricsPrometheus = "prometheus"
	MetricsCloudWatch = "cloudwatch"
)

// DevJWTSecret signs local tokens when development runs set no JWT_SECRET
const DevJWTSecret = "zentriqvision-dev-secret"

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion      string `yaml:"aws_region"`
	TableName      string `yaml:"table_name"`
	AttributeIndex string `yaml:"attribute_index"` // GSI1 - ATTR#<dim>#<value>
	VideoIndex     string `yaml:"video_index"`     // GSI2 - VIDEO#<videoId>
	TimeIndex      string `yaml:"time_index"`      // GSI3 - TIME#<day>
	VideoBucket    string `yaml:"video_bucket"`
	EventBusName   string `yaml:"event_bus_name"`
	EventSource    string `yaml:"-"`
	StoreBackend   string `yaml:"store_backend"`

	// Lambda configuration
	IsLambda           bool   `yaml:"-"`
	LambdaFunctionName string `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Authentication
	UserPoolID       string `yaml:"user_pool_id"`
	UserPoolClientID string `yaml:"user_pool_client_id"`
	JWTSecret        string `yaml:"-"`
	JWTIssuer        string `yaml:"jwt_issuer"`
	// Requests per minute per client IP on /auth; zero disables the limit
	AuthRateLimit int `yaml:"auth_rate_limit"`

	// Feature flags
	EnableMetrics        bool   `yaml:"enable_metrics"`
	EnableTracing        bool   `yaml:"enable_tracing"`
	EnableCircuitBreaker bool   `yaml:"enable_circuit_breaker"`
	MetricsBackend       string `yaml:"metrics_backend"`
	MetricsNamespace     string `yaml:"metrics_namespace"`

	Domain domain.DomainConfig `yaml:"domain"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		AWSRegion:            "us-east-1",
		TableName:            "ZentriqVisionTable",
		AttributeIndex:       "GSI1",
		VideoIndex:           "GSI2",
		TimeIndex:            "GSI3",
		EventBusName:         "default",
		StoreBackend:         StoreDynamoDB,
		LogLevel:             "info",
		JWTIssuer:            "zentriqvision-local",
		AuthRateLimit:        20,
		EnableCircuitBreaker: true,
		MetricsBackend:       MetricsPrometheus,
		MetricsNamespace:     "zentriqvision",
		Domain:               domain.DefaultDomainConfig(),
	}
}

// LoadConfig loads configuration from the optional CONFIG_FILE overlay
// and then environment variables, which win
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.TableName = getEnv("DATA_TABLE", getEnv("TABLE_NAME", c.TableName))
	c.AttributeIndex = getEnv("ATTRIBUTE_INDEX", c.AttributeIndex)
	c.VideoIndex = getEnv("VIDEO_INDEX", c.VideoIndex)
	c.TimeIndex = getEnv("TIME_INDEX", c.TimeIndex)
	c.VideoBucket = getEnv("VIDEO_BUCKET", c.VideoBucket)
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)
	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)

	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", "")
	c.IsLambda = getEnvBool("IS_LAMBDA", c.LambdaFunctionName != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.UserPoolID = getEnv("USER_POOL_ID", c.UserPoolID)
	c.UserPoolClientID = getEnv("USER_POOL_CLIENT_ID", c.UserPoolClientID)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.AuthRateLimit = getEnvInt("AUTH_RATE_LIMIT", c.AuthRateLimit)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCircuitBreaker = getEnvBool("ENABLE_CIRCUIT_BREAKER", c.EnableCircuitBreaker)
	c.MetricsBackend = getEnv("METRICS_BACKEND", c.MetricsBackend)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)

	c.Domain.SearchDefaultLimit = getEnvInt("SEARCH_DEFAULT_LIMIT", c.Domain.SearchDefaultLimit)
	c.Domain.SearchMaxLimit = getEnvInt("SEARCH_MAX_LIMIT", c.Domain.SearchMaxLimit)
	if secs := getEnvInt("PRESIGN_TTL_SECONDS", 0); secs > 0 {
		c.Domain.PresignTTL = time.Duration(secs) * time.Second
	}
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB:
		if c.TableName == "" {
			return fmt.Errorf("DATA_TABLE is required")
		}
	case StoreMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORE_BACKEND=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.MetricsBackend {
	case MetricsPrometheus, MetricsCloudWatch:
	default:
		return fmt.Errorf("unknown METRICS_BACKEND %q", c.MetricsBackend)
	}

	if c.UserPoolID == "" && c.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("USER_POOL_ID or JWT_SECRET is required outside development")
	}

	if c.IsProduction() {
		if c.UserPoolID == "" {
			return fmt.Errorf("USER_POOL_ID is required in production")
		}
		if c.VideoBucket == "" {
			return fmt.Errorf("VIDEO_BUCKET is required in production")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required in production")
		}
	}

	return c.Domain.Validate()
}

// JWT returns the token validation settings. A configured user pool is
// validated against its JWKS; otherwise tokens are HS256 with JWT_SECRET.
func (c *Config) JWT() auth.JWTConfig {
	if c.UserPoolID != "" {
		issuer := auth.CognitoIssuer(c.AWSRegion, c.UserPoolID)
		cfg := auth.JWTConfig{
			SigningMethod: "RS256",
			JWKSURL:       auth.CognitoJWKSURL(issuer),
			Issuer:        issuer,
		}
		if c.UserPoolClientID != "" {
			cfg.Audience = []string{c.UserPoolClientID}
		}
		return cfg
	}
	secret := c.JWTSecret
	if secret == "" && c.IsDevelopment() {
		secret = DevJWTSecret
	}
	return auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        c.JWTIssuer,
	}
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
