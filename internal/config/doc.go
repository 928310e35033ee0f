// Package config manages application configuration for the FreelanceHub API.
//
// Configuration is read from environment variables with development
// defaults, then checked with Validate, which reports every problem at once:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//	SERVER_PORT, SERVER_ENV          - listen port, development|production|test
//	SERVER_READ_TIMEOUT/WRITE_TIMEOUT
//	CORS_ALLOWED_ORIGINS             - comma separated
//	DB_DRIVER                        - surrealdb (default), mongodb, memory
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	MONGODB_URL, MONGODB_DATABASE
//	JWT_SECRET_KEY, JWT_ISSUER       - HS256 signing key and iss claim
//	BCRYPT_COST                      - work factor (default 12)
//
// In production JWT_SECRET_KEY must differ from DefaultJWTSecret and be at
// least MinProductionSecretLength bytes.
package config
