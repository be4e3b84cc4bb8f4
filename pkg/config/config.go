package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "fastsale"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FASTSALE_DB_DSN"
	EnvDBHost = "FASTSALE_DB_HOST"
	EnvDBUser = "FASTSALE_DB_USER"
	EnvDBName = "FASTSALE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"FASTSALE_APP_ENV" required:"true"`
	Port         string `envconfig:"FASTSALE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FASTSALE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FASTSALE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FASTSALE_DB_DSN"`
	Driver string `envconfig:"FASTSALE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FASTSALE_DB_HOST"`
	LegacyPort     int    `envconfig:"FASTSALE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FASTSALE_DB_USER"`
	LegacyPassword string `envconfig:"FASTSALE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FASTSALE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FASTSALE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FASTSALE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FASTSALE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FASTSALE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FASTSALE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FASTSALE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FASTSALE_REDIS_ADDR"`
	Password     string        `envconfig:"FASTSALE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FASTSALE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FASTSALE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FASTSALE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FASTSALE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FASTSALE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FASTSALE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FASTSALE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FASTSALE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FASTSALE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FASTSALE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FASTSALE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FASTSALE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FASTSALE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FASTSALE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FASTSALE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FASTSALE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FASTSALE_AUTO_MIGRATE" default:"false"`
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
