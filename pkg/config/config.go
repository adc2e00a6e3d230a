package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ALTERNATIVAS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "ALTERNATIVAS_APP_ENV"
	EnvDBDSN  = "ALTERNATIVAS_DB_DSN"
	EnvDBHost = "ALTERNATIVAS_DB_HOST"
	EnvDBUser = "ALTERNATIVAS_DB_USER"
	EnvDBName = "ALTERNATIVAS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
	Form      FormConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ALTERNATIVAS_APP_ENV" required:"true"`
	Port         string `envconfig:"ALTERNATIVAS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ALTERNATIVAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ALTERNATIVAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ALTERNATIVAS_DB_DSN"`

	LegacyHost     string `envconfig:"ALTERNATIVAS_DB_HOST"`
	LegacyPort     int    `envconfig:"ALTERNATIVAS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ALTERNATIVAS_DB_USER"`
	LegacyPassword string `envconfig:"ALTERNATIVAS_DB_PASSWORD"`
	LegacyName     string `envconfig:"ALTERNATIVAS_DB_NAME"`
	LegacySSLMode  string `envconfig:"ALTERNATIVAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ALTERNATIVAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ALTERNATIVAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ALTERNATIVAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ALTERNATIVAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ALTERNATIVAS_REDIS_URL"`
	Address      string        `envconfig:"ALTERNATIVAS_REDIS_ADDR"`
	Password     string        `envconfig:"ALTERNATIVAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ALTERNATIVAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ALTERNATIVAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ALTERNATIVAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ALTERNATIVAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ALTERNATIVAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ALTERNATIVAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// RateLimitConfig throttles the public form endpoints per client IP.
type RateLimitConfig struct {
	Window       time.Duration `envconfig:"ALTERNATIVAS_RATE_LIMIT_WINDOW" default:"1m"`
	SearchLimit  int           `envconfig:"ALTERNATIVAS_RATE_LIMIT_SEARCH" default:"120"`
	SubmitLimit  int           `envconfig:"ALTERNATIVAS_RATE_LIMIT_SUBMIT" default:"30"`
	AllowedHosts []string      `envconfig:"ALTERNATIVAS_CORS_ALLOWED_ORIGINS" default:"*"`
}

// SearchConfig tunes the typeahead behavior shared by server and form client.
type SearchConfig struct {
	Debounce     time.Duration `envconfig:"ALTERNATIVAS_SEARCH_DEBOUNCE" default:"250ms"`
	DefaultLimit int           `envconfig:"ALTERNATIVAS_SEARCH_DEFAULT_LIMIT" default:"10"`
	MaxLimit     int           `envconfig:"ALTERNATIVAS_SEARCH_MAX_LIMIT" default:"25"`
}

// FormConfig carries the form client's environment.
type FormConfig struct {
	APIBaseURL  string `envconfig:"ALTERNATIVAS_FORM_API_BASE_URL" default:"http://localhost:8080"`
	StateDir    string `envconfig:"ALTERNATIVAS_FORM_STATE_DIR" default:".alternativas"`
	EmailDomain string `envconfig:"ALTERNATIVAS_FORM_EMAIL_DOMAIN" default:"@arellano.pe"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
