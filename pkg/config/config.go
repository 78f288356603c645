package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CARVALUE_APP_ENV" required:"true"`
	Port         string `envconfig:"CARVALUE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARVALUE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARVALUE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARVALUE_DB_DSN"`
	Driver string `envconfig:"CARVALUE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARVALUE_DB_HOST"`
	LegacyPort     int    `envconfig:"CARVALUE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARVALUE_DB_USER"`
	LegacyPassword string `envconfig:"CARVALUE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARVALUE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARVALUE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARVALUE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARVALUE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARVALUE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARVALUE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the embedded sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"CARVALUE_REDIS_URL"`
	Address      string        `envconfig:"CARVALUE_REDIS_ADDR"`
	Password     string        `envconfig:"CARVALUE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARVALUE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARVALUE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARVALUE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARVALUE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARVALUE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARVALUE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. Auth rate
// limiting degrades to a pass-through when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	Secret       string `envconfig:"CARVALUE_SESSION_SECRET" required:"true"`
	Issuer       string `envconfig:"CARVALUE_SESSION_ISSUER" default:"carvalue"`
	CookieName   string `envconfig:"CARVALUE_SESSION_COOKIE_NAME" default:"carvalue_session"`
	TTLMinutes   int    `envconfig:"CARVALUE_SESSION_TTL_MINUTES" default:"10080"`
	CookieSecure bool   `envconfig:"CARVALUE_SESSION_COOKIE_SECURE" default:"false"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// PasswordConfig carries the scrypt parameters. Signup and signin share one
// instance; deriving with different key or salt lengths would lock every
// account out.
type PasswordConfig struct {
	ScryptN       int `envconfig:"CARVALUE_SCRYPT_N" default:"16384"`
	ScryptR       int `envconfig:"CARVALUE_SCRYPT_R" default:"8"`
	ScryptP       int `envconfig:"CARVALUE_SCRYPT_P" default:"1"`
	ScryptSaltLen int `envconfig:"CARVALUE_SCRYPT_SALT_LEN" default:"8"`
	ScryptKeyLen  int `envconfig:"CARVALUE_SCRYPT_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	SigninWindow     time.Duration `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNIN_WINDOW" default:"1m"`
	SigninEmailLimit int           `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNIN_EMAIL_LIMIT" default:"5"`
	SigninIPLimit    int           `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"CARVALUE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARVALUE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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
