package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Store    StoreConfig    `mapstructure:"store"`
	Export   ExportConfig   `mapstructure:"export"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AdminConfig holds the shared demo password. It is compared in plaintext.
type AdminConfig struct {
	Password string `mapstructure:"password"`
}

type StoreConfig struct {
	Key       string `mapstructure:"key"`
	FieldsKey string `mapstructure:"fields_key"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithComponent(ctx, "bootstrap.config")

	loadDotEnv(logCtx, ".env")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		case configFile != "" && errors.Is(err, os.ErrNotExist):
			logging.Warn(logCtx, "config file not found, fallback to defaults and env", slog.String("path", configFile))
		default:
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("store_key", cfg.Store.Key),
	)

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn is required")
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return errors.New("store.key is required")
	}
	if strings.TrimSpace(c.Store.FieldsKey) == "" {
		return errors.New("store.fields_key is required")
	}
	if c.Store.Key == c.Store.FieldsKey {
		return errors.New("store.key and store.fields_key must differ")
	}
	if c.Admin.Password == "" {
		return errors.New("admin.password is required")
	}
	return nil
}

// loadDotEnv exports variables from path without overriding the real environment.
func loadDotEnv(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logging.Warn(ctx, "load dotenv failed", slog.String("path", path), slog.Any("err", errs.Loggable(err)))
		return
	}
	logging.Info(ctx, "dotenv loaded", slog.String("path", path))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "feedbackdesk")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".feedbackdesk/state.sqlite")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("store.key", "feedback-store")
	v.SetDefault("store.fields_key", "feedback-fields")
	v.SetDefault("export.dir", ".")
}
