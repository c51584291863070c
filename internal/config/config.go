package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// APIConfig holds listener settings for one of the HTTP APIs.
type APIConfig struct {
	Addr         string        `envconfig:"ADDR"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT"  default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT"  default:"60s"`
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers are believed. Empty means the peer address is the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// Config holds the overall application configuration.
type Config struct {
	DatabaseURL   string    `envconfig:"DATABASE_URL" required:"true"`
	LogLevel      string    `envconfig:"LOG_LEVEL"                    default:"info"`
	StorefrontAPI APIConfig `envconfig:"STOREFRONT_API"`
	ManagerAPI    APIConfig `envconfig:"MANAGER_API"`
	Geo           GeoConfig
	Pricing       PricingConfig
	Session       SessionConfig
	Payment       PaymentConfig
	Email         EmailConfig
	Admin         AdminConfig
	Shipping      ShippingConfig
	Worker        WorkerConfig
}

// GeoConfig configures the two geolocation providers and their guards.
type GeoConfig struct {
	PrimaryURL        string        `envconfig:"GEO_PRIMARY_URL"         default:"https://ipapi.co"`
	SecondaryURL      string        `envconfig:"GEO_SECONDARY_URL"       default:"http://ip-api.com"`
	ProviderTimeout   time.Duration `envconfig:"GEO_PROVIDER_TIMEOUT"    default:"5s"`
	FailureThreshold  int           `envconfig:"GEO_BREAKER_FAILURES"    default:"5"`
	BreakerCooldown   time.Duration `envconfig:"GEO_BREAKER_COOLDOWN"    default:"30s"`
	DetectRatePerSec  float64       `envconfig:"GEO_DETECT_RATE"         default:"2"`
	DetectBurst       int           `envconfig:"GEO_DETECT_BURST"        default:"10"`
	DefaultCountry    string        `envconfig:"GEO_DEFAULT_COUNTRY"     default:"United States"`
	DefaultCountryISO string        `envconfig:"GEO_DEFAULT_COUNTRY_ISO" default:"US"`
}

type PricingConfig struct {
	BaseCurrency string `envconfig:"PRICING_BASE_CURRENCY" default:"USD"`
	// CountryTablePath overrides the compiled-in country table when set.
	CountryTablePath string `envconfig:"PRICING_COUNTRY_TABLE"`
}

type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"SESSION_IDLE_TTL"       default:"2h"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`
}

type PaymentConfig struct {
	BaseURL          string        `envconfig:"PAYMENT_BASE_URL"          default:"https://api.stripe.com"`
	SecretKey        string        `envconfig:"PAYMENT_SECRET_KEY"`
	WebhookSecret    string        `envconfig:"PAYMENT_WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `envconfig:"PAYMENT_WEBHOOK_TOLERANCE" default:"5m"`
	RequestTimeout   time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT"   default:"15s"`
}

type EmailConfig struct {
	BaseURL        string        `envconfig:"EMAIL_BASE_URL"        default:"https://api.resend.com"`
	APIKey         string        `envconfig:"EMAIL_API_KEY"`
	From           string        `envconfig:"EMAIL_FROM"            default:"Glow <orders@glow.example>"`
	AdminAddress   string        `envconfig:"EMAIL_ADMIN_ADDRESS"   default:"ops@glow.example"`
	RequestTimeout time.Duration `envconfig:"EMAIL_REQUEST_TIMEOUT" default:"10s"`
}

type AdminConfig struct {
	// APIKeyHash is the bcrypt hash of the back-office API key.
	APIKeyHash string `envconfig:"ADMIN_API_KEY_HASH"`
}

type ShippingConfig struct {
	RulesPath string `envconfig:"SHIPPING_RULES_FILE"`
}

// WorkerConfig holds intervals and batch sizes for the background loops.
type WorkerConfig struct {
	OrderExpiryInterval time.Duration `envconfig:"WORKER_ORDER_EXPIRY_INTERVAL" default:"1m"`
	OrderExpiryAge      time.Duration `envconfig:"WORKER_ORDER_EXPIRY_AGE"      default:"24h"`
	OrderExpiryBatch    int           `envconfig:"WORKER_ORDER_EXPIRY_BATCH"    default:"200"`
	LowStockInterval    time.Duration `envconfig:"WORKER_LOW_STOCK_INTERVAL"    default:"15m"`
	LowStockThreshold   int           `envconfig:"WORKER_LOW_STOCK_THRESHOLD"   default:"10"`
	LowStockBatch       int           `envconfig:"WORKER_LOW_STOCK_BATCH"       default:"100"`
	RunTimeout          time.Duration `envconfig:"WORKER_RUN_TIMEOUT"           default:"1m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	log.Println("Loading configuration from environment variables...")

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, skipping: %v", err)
	} else {
		log.Println(".env loaded")
	}

	err := envconfig.Process("", &cfg) // Use "" prefix for env vars
	if err != nil {
		return nil, err
	}
	if cfg.StorefrontAPI.Addr == "" {
		cfg.StorefrontAPI.Addr = ":8080"
	}
	if cfg.ManagerAPI.Addr == "" {
		cfg.ManagerAPI.Addr = ":8081"
	}
	log.Printf("Configuration loaded successfully (storefront: %s, manager: %s)", cfg.StorefrontAPI.Addr, cfg.ManagerAPI.Addr)
	return &cfg, nil
}
