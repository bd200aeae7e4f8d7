// Package config loads the storefront configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set.
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

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
		// RequestTimeout bounds a single request. A purchase makes up to three
		// outbound calls, so it must exceed their combined timeouts.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"1m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// PublicBaseURL is the externally visible origin used in checkout
		// redirect URLs. Empty derives it from the incoming request.
		PublicBaseURL string `env:"HTTP_PUBLIC_BASE_URL" yaml:"publicBaseURL"`
		// AllowedHeaders lists extra request headers accepted by CORS preflight.
		AllowedHeaders []string `env:"HTTP_CORS_ALLOWED_HEADERS" env-default:"X-Shopco-Webhook-Key" yaml:"allowedHeaders"`
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
		DatabaseName string `env:"DATABASE_NAME" env-default:"domainshop" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Registrar configures the OpenSRS XCP client.
	Registrar struct {
		Username string `env:"OPENSRS_USERNAME" yaml:"username"`
		// APIKey is the reseller shared secret. Requests fail without it.
		APIKey   string        `env:"OPENSRS_API_KEY" yaml:"apiKey"`
		Endpoint string        `env:"OPENSRS_API_URL" env-default:"https://rr-n1-tor.opensrs.net:55443/" yaml:"endpoint"`
		Timeout  time.Duration `env:"OPENSRS_TIMEOUT" env-default:"15s" yaml:"timeout"`
		// Owner holds the contact placeholders applied to every registration.
		Owner struct {
			FirstName string `env:"OPENSRS_OWNER_FIRST_NAME" env-default:"Domain" yaml:"firstName"`
			LastName  string `env:"OPENSRS_OWNER_LAST_NAME" env-default:"Buyer" yaml:"lastName"`
			Country   string `env:"OPENSRS_OWNER_COUNTRY" env-default:"US" yaml:"country"`
		} `yaml:"owner"`
	} `yaml:"registrar"`

	// Payment configures the Stripe client.
	Payment struct {
		SecretKey string        `env:"STRIPE_SECRET" yaml:"secretKey"`
		Currency  string        `env:"PAYMENT_CURRENCY" env-default:"usd" yaml:"currency"`
		Timeout   time.Duration `env:"PAYMENT_TIMEOUT" env-default:"20s" yaml:"timeout"`
		// APIURL overrides the Stripe API base URL (stripe-mock, tests).
		APIURL string `env:"STRIPE_API_URL" yaml:"apiURL"`
	} `yaml:"payment"`

	// Webhook configures outbound automation hooks and the inbound ShopCo key.
	Webhook struct {
		PurchaseURL string `env:"WEBHOOK_PURCHASE_URL" yaml:"purchaseURL"`
		ReferralURL string `env:"WEBHOOK_REFERRAL_URL" yaml:"referralURL"`
		// ShopcoKey is the shared key ShopCo presents on POST /pay.
		ShopcoKey string        `env:"SHOPCO_WEBHOOK_KEY" yaml:"shopcoKey"`
		Timeout   time.Duration `env:"WEBHOOK_TIMEOUT" env-default:"10s" yaml:"timeout"`
		Workers   int           `env:"WEBHOOK_WORKERS" env-default:"4" yaml:"workers"`
	} `yaml:"webhook"`

	// JWT configures bearer authentication on user lookups. Leaving PublicKey
	// empty disables it.
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

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
