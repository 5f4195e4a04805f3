package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Users  UsersConfig  `mapstructure:"users"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	MaxBodyBytes           int64  `mapstructure:"max_body_bytes"           validate:"gt=0"`
}

// StoreConfig contains settings for the users file.
type StoreConfig struct {
	Path     string `mapstructure:"path"      validate:"required"`
	FileMode uint32 `mapstructure:"file_mode" validate:"lte=511"`
	// AllowEmptyOnLoadError starts the server with an empty collection when
	// the users file cannot be read. The next write replaces the file.
	AllowEmptyOnLoadError bool `mapstructure:"allow_empty_on_load_error"`
}

// UsersConfig contains settings for the user repository.
type UsersConfig struct {
	// CollationLocale is the BCP 47 tag whose rules order names in sorted listings.
	CollationLocale string `mapstructure:"collation_locale" validate:"required,bcp47_language_tag"`
}
