package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// per-request handler deadline
	RequestTimeoutSec int
	MaxBodyBytes      int64
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxInFlight       int64
	CORSOrigins       []string `mapstructure:"cors_origins"`
}

// AdminHTTP is the ops listener serving /metrics and /health.
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name     string
	Env      string
	CommitID string `mapstructure:"commit_id"`
	HTTP     HTTP
	Admin    AdminHTTP
}

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

// JWT verifies bearer tokens. With PublicKeyPEM set, tokens are RS256 (identity
// provider issued); otherwise HS256 with Secret.
type JWT struct {
	Secret            string
	Issuer            string
	Audience          string
	PublicKeyPEM      string `mapstructure:"public_key_pem"`
	AccessTokenTTLMin int
}

type Redis struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Identity is the identity provider's management API.
type Identity struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Audience     string `mapstructure:"audience"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	CacheTTLSec  int    `mapstructure:"cache_ttl_sec"`
}

type Ratings struct {
	EnforceRange bool `mapstructure:"enforce_range"`
}

type Config struct {
	App      App
	Log      Log
	JWT      JWT
	DB       DB
	Redis    Redis    `mapstructure:"redis"`
	Identity Identity `mapstructure:"identity"`
	Ratings  Ratings  `mapstructure:"ratings"`
}

func (i Identity) Timeout() time.Duration  { return seconds(i.TimeoutSec, 5) }
func (i Identity) CacheTTL() time.Duration { return seconds(i.CacheTTLSec, 60) }

func (h HTTP) RequestTimeout() time.Duration { return seconds(h.RequestTimeoutSec, 15) }

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// Load reads path, falling back to CONFIG_PATH and then ./configs/config.local.yaml.
// APP_-prefixed env vars override file values (APP_DB_DSN for db.dsn).
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "compass-backend")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.commit_id", "unknown")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 30)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.ratelimitrps", 200)
	v.SetDefault("app.http.ratelimitburst", 400)
	v.SetDefault("app.http.maxinflight", 256)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 9090)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:compass.db?_pragma=foreign_keys(1)")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("redis.prefix", "compass:")
	v.SetDefault("identity.timeout_sec", 5)
	v.SetDefault("identity.cache_ttl_sec", 60)
}
