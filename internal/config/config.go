package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	TrykeyAPIURL        string // base URL of the platform API, e.g. https://dashboard.trykeyprotocol.com/api
	TrykeyAPIToken      string // TRYKEY_API_TOKEN bearer credential; must come from env, never from source
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	PaymentAmount       string // fixed per-request booking amount, decimal string
	PaymentRedirectURL  string // where the payment provider sends the payer after checkout
	StatusPollInterval  time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	apiURL := strings.TrimRight(strings.TrimSpace(viper.GetString("TRYKEY_API_URL")), "/")
	if apiURL == "" {
		apiURL = "https://dashboard.trykeyprotocol.com/api"
	}

	amount := viper.GetString("PAYMENT_AMOUNT")
	if amount == "" {
		amount = "4000"
	}

	pollInterval := viper.GetDuration("STATUS_POLL_INTERVAL")
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		TrykeyAPIURL:        apiURL,
		TrykeyAPIToken:      viper.GetString("TRYKEY_API_TOKEN"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		PaymentAmount:       amount,
		PaymentRedirectURL:  viper.GetString("PAYMENT_REDIRECT_URL"),
		StatusPollInterval:  pollInterval,
	}, nil
}
