package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/appender"
	"github.com/sagarc03/logtable/database"
	logtablehttp "github.com/sagarc03/logtable/http"
	"github.com/sagarc03/logtable/layout"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for logtable.
type Config struct {
	Database database.Config         `mapstructure:"database" yaml:"database"`
	Appender AppenderConfig          `mapstructure:"appender" yaml:"appender"`
	Server   ServerConfig            `mapstructure:"server" yaml:"server"`
	Auth     AuthConfig              `mapstructure:"auth" yaml:"auth"`
	CORS     logtablehttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log      LogConfig               `mapstructure:"log" yaml:"log"`
}

// AppenderConfig holds the appender settings that do not concern the connection.
type AppenderConfig struct {
	Table  string       `mapstructure:"table" yaml:"table" validate:"required,tablename"`
	Layout *layout.Spec `mapstructure:"layout" yaml:"layout,omitempty"`
	// AdditionalFields keys are lowercased by viper.
	AdditionalFields map[string]any `mapstructure:"additional_fields" yaml:"additional_fields,omitempty"`
	Transactional    bool           `mapstructure:"transactional" yaml:"transactional"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int   `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	MaxBodySize int64 `mapstructure:"max_body_size" yaml:"max_body_size" validate:"min=0"`
}

// AuthConfig holds bearer token authentication for the HTTP server.
type AuthConfig struct {
	Read   string   `mapstructure:"read" yaml:"read" validate:"required,oneof=public private"`
	Write  string   `mapstructure:"write" yaml:"write" validate:"required,oneof=public private"`
	Tokens []string `mapstructure:"tokens" yaml:"tokens,omitempty" validate:"dive,required"`
	// TokensFile is a JSON file of additional tokens, see LoadTokens.
	TokensFile string `mapstructure:"tokens_file" yaml:"tokens_file,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	// Format is "text" for colored console output or "json".
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}

// Build returns the appender configuration writing through src.
func (c AppenderConfig) Build(src appender.ConnectionSource) appender.Config {
	return appender.Config{
		Connection:       src,
		Table:            c.Table,
		Layout:           c.Layout,
		AdditionalFields: c.AdditionalFields,
		Transactional:    c.Transactional,
	}
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"db-type":   "database.type",
	"db-dsn":    "database.dsn",
	"table":     "appender.table",
	"port":      "server.port",
	"log-level": "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "logtable.db")

	v.SetDefault("appender.table", appender.DefaultTable)
	v.SetDefault("appender.transactional", true)

	v.SetDefault("server.port", 5709)
	v.SetDefault("server.max_body_size", 1<<20)

	v.SetDefault("auth.read", "public")
	v.SetDefault("auth.write", "public")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// newValidator returns a validator with the tablename rule registered.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("tablename", func(fl validator.FieldLevel) bool {
		return logtable.IsValidTableName(fl.Field().String())
	})
	return validate
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("LOGTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
