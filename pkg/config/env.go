package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "PRODUCTDB_APP_ENV"
	EnvPort   = "PRODUCTDB_APP_PORT"

	EnvDBDSN  = "PRODUCTDB_DB_DSN"
	EnvDBHost = "PRODUCTDB_DB_HOST"
	EnvDBUser = "PRODUCTDB_DB_USER"
	EnvDBName = "PRODUCTDB_DB_NAME"

	EnvRedisURL = "PRODUCTDB_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
