package config

const (
	EnvPrefix = "carvalue"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Env var names reused by tests and error messages.
const (
	EnvAppEnv        = "CARVALUE_APP_ENV"
	EnvPort          = "CARVALUE_APP_PORT"
	EnvDBDSN         = "CARVALUE_DB_DSN"
	EnvDBHost        = "CARVALUE_DB_HOST"
	EnvDBUser        = "CARVALUE_DB_USER"
	EnvDBName        = "CARVALUE_DB_NAME"
	EnvSessionSecret = "CARVALUE_SESSION_SECRET"
	EnvRedisURL      = "CARVALUE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
