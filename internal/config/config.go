package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	GoogleOAuth GoogleOAuth `mapstructure:",squash"`
	GA4         GA4         `mapstructure:",squash"`
	GoogleAds   GoogleAds   `mapstructure:",squash"`
	Dispatcher  Dispatcher  `mapstructure:",squash"`
	TokenCache  TokenCache  `mapstructure:",squash"`
	Narrative   Narrative   `mapstructure:",squash"`
	Catalog     Catalog     `mapstructure:",squash"`
	CatalogSync CatalogSync `mapstructure:",squash"`
	Metrics     Metrics     `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// GoogleOAuth aponta para o endpoint de troca do refresh token.
type GoogleOAuth struct {
	TokenURL        string        `mapstructure:"google_oauth_token_url"`
	ExchangeTimeout time.Duration `mapstructure:"google_oauth_exchange_timeout"`
}

type GA4 struct {
	BaseURL string `mapstructure:"ga4_base_url"`
	Version string `mapstructure:"ga4_version"`
}

type GoogleAds struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	Version         string `mapstructure:"google_ads_version"`
	DefaultRowLimit int    `mapstructure:"google_ads_default_row_limit"`
}

// Dispatcher controla a política de tentativas das consultas às fontes.
type Dispatcher struct {
	MaxAttempts    int           `mapstructure:"dispatcher_max_attempts"`
	BaseDelay      time.Duration `mapstructure:"dispatcher_base_delay"`
	Multiplier     float64       `mapstructure:"dispatcher_multiplier"`
	JitterFraction float64       `mapstructure:"dispatcher_jitter_fraction"`
	AttemptTimeout time.Duration `mapstructure:"dispatcher_attempt_timeout"`
	MaxDateSpan    int           `mapstructure:"dispatcher_max_date_span_days"`
}

type TokenCache struct {
	SafetyMargin time.Duration `mapstructure:"token_cache_safety_margin"`
}

type Narrative struct {
	URL           string        `mapstructure:"narrative_url"`
	APIKey        string        `mapstructure:"narrative_api_key"`
	Model         string        `mapstructure:"narrative_model"`
	Language      string        `mapstructure:"narrative_language"`
	MaxTokens     int           `mapstructure:"narrative_max_tokens"`
	Temperature   float64       `mapstructure:"narrative_temperature"`
	Timeout       time.Duration `mapstructure:"narrative_timeout"`
	RatePerMinute int           `mapstructure:"narrative_rate_per_minute"`
	TopRows       int           `mapstructure:"narrative_top_rows"`
}

type Catalog struct {
	Timeout        time.Duration `mapstructure:"catalog_timeout"`
	CacheSizeMB    int           `mapstructure:"catalog_cache_size_mb"`
	CacheTTL       time.Duration `mapstructure:"catalog_cache_ttl"`
	DefaultCountBy string        `mapstructure:"catalog_default_count_field"`
}

type CatalogSync struct {
	CronSchedule      string `mapstructure:"catalog_sync_cron"`
	Enabled           bool   `mapstructure:"catalog_sync_enabled"`
	MaxConcurrentJobs int    `mapstructure:"catalog_sync_max_concurrent_jobs"`
}

type Metrics struct {
	Enabled bool `mapstructure:"metrics_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("GOOGLE_OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_OAUTH_EXCHANGE_TIMEOUT", "15s")

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com")
	viper.SetDefault("GA4_VERSION", "v1beta")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEFAULT_ROW_LIMIT", 10000)

	// Política de tentativas: 3 tentativas, 1s de base, multiplicador 2
	viper.SetDefault("DISPATCHER_MAX_ATTEMPTS", 3)
	viper.SetDefault("DISPATCHER_BASE_DELAY", "1s")
	viper.SetDefault("DISPATCHER_MULTIPLIER", 2.0)
	viper.SetDefault("DISPATCHER_JITTER_FRACTION", 0.2)
	viper.SetDefault("DISPATCHER_ATTEMPT_TIMEOUT", "30s")
	viper.SetDefault("DISPATCHER_MAX_DATE_SPAN_DAYS", 365)

	viper.SetDefault("TOKEN_CACHE_SAFETY_MARGIN", "60s")

	viper.SetDefault("NARRATIVE_URL", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("NARRATIVE_API_KEY", "")
	viper.SetDefault("NARRATIVE_MODEL", "gpt-3.5-turbo")
	viper.SetDefault("NARRATIVE_LANGUAGE", "português")
	viper.SetDefault("NARRATIVE_MAX_TOKENS", 1500)
	viper.SetDefault("NARRATIVE_TEMPERATURE", 0.7)
	viper.SetDefault("NARRATIVE_TIMEOUT", "60s")
	viper.SetDefault("NARRATIVE_RATE_PER_MINUTE", 20)
	viper.SetDefault("NARRATIVE_TOP_ROWS", 20)

	viper.SetDefault("CATALOG_TIMEOUT", "10s")
	viper.SetDefault("CATALOG_CACHE_SIZE_MB", 8)
	viper.SetDefault("CATALOG_CACHE_TTL", "10m")
	viper.SetDefault("CATALOG_DEFAULT_COUNT_FIELD", "count")

	viper.SetDefault("CATALOG_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("CATALOG_SYNC_ENABLED", false)
	viper.SetDefault("CATALOG_SYNC_MAX_CONCURRENT_JOBS", 3)

	viper.SetDefault("METRICS_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate garante que a política de tentativas produz atrasos estritamente crescentes.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY é obrigatório")
	}

	d := c.Dispatcher
	if d.MaxAttempts < 1 {
		return fmt.Errorf("DISPATCHER_MAX_ATTEMPTS deve ser >= 1, recebido %d", d.MaxAttempts)
	}
	if d.BaseDelay <= 0 {
		return fmt.Errorf("DISPATCHER_BASE_DELAY deve ser positivo, recebido %s", d.BaseDelay)
	}
	if d.JitterFraction < 0 {
		return fmt.Errorf("DISPATCHER_JITTER_FRACTION não pode ser negativo, recebido %.2f", d.JitterFraction)
	}
	if d.Multiplier <= 1+d.JitterFraction {
		return fmt.Errorf("DISPATCHER_MULTIPLIER (%.2f) deve ser maior que 1 + DISPATCHER_JITTER_FRACTION (%.2f)", d.Multiplier, d.JitterFraction)
	}
	if d.AttemptTimeout <= 0 {
		return fmt.Errorf("DISPATCHER_ATTEMPT_TIMEOUT deve ser positivo, recebido %s", d.AttemptTimeout)
	}
	if d.MaxDateSpan < 1 {
		return fmt.Errorf("DISPATCHER_MAX_DATE_SPAN_DAYS deve ser >= 1, recebido %d", d.MaxDateSpan)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
