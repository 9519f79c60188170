package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// authentication, the phishing and email classifiers, the background checker
// and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"linkguard" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT contains the RS256 key pair used to verify (and, for the jwt command, sign) bearer tokens
	JWT struct {
		// PublicKey is the PEM encoded RSA public key used to verify tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA private key used by the jwt command to sign tokens
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Phishing contains the phishing URL classifier configurations
	Phishing struct {
		// ModelDir is the directory holding model.json, scaler.json and columns.json
		ModelDir string `env:"PHISHING_MODEL_DIR" env-default:"model" yaml:"modelDir"`
		// DatasetPath is the labelled CSV used to train a model when none is found
		DatasetPath string `env:"PHISHING_DATASET_PATH" env-default:"" yaml:"datasetPath"`
		// TrainIfMissing enables training at first use when ModelDir has no model
		TrainIfMissing bool `env:"PHISHING_TRAIN_IF_MISSING" env-default:"false" yaml:"trainIfMissing"`
		// AllowListPath is the ranked "rank,domain" reference list of known-legitimate domains
		AllowListPath string `env:"PHISHING_ALLOW_LIST_PATH" env-default:"" yaml:"allowListPath"`
		// AllowListTopN caps the number of domains read from the allow-list, 0 reads all of them
		AllowListTopN int `env:"PHISHING_ALLOW_LIST_TOP_N" env-default:"0" yaml:"allowListTopN"`
		// BatchConcurrency is the number of URLs of a batch decided concurrently
		BatchConcurrency int `env:"PHISHING_BATCH_CONCURRENCY" env-default:"8" yaml:"batchConcurrency"`
	} `yaml:"phishing"`

	// Email contains the email categorizer configurations
	Email struct {
		// ModelPath is the path of the email_model.json artifact
		ModelPath string `env:"EMAIL_MODEL_PATH" env-default:"model/email_model.json" yaml:"modelPath"`
		// DatasetPath is the JSON training file used by the train email command
		DatasetPath string `env:"EMAIL_DATASET_PATH" env-default:"" yaml:"datasetPath"`
	} `yaml:"email"`

	// Checker contains the asynchronous URL check configurations
	Checker struct {
		// MaxAttempts is the number of attempts before a check is marked as failed
		MaxAttempts int `env:"CHECKER_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
		// ResultCacheTTL is how long a completed verdict is reused for new checks of the same URL
		ResultCacheTTL time.Duration `env:"CHECKER_RESULT_CACHE_TTL" env-default:"1h" yaml:"resultCacheTTL"`
		// Workers is the number of concurrent check workers
		Workers int `env:"CHECKER_WORKERS" env-default:"10" yaml:"workers"`
	} `yaml:"checker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
