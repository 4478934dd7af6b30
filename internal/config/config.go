package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Spotify SpotifyConfig `yaml:"spotify" mapstructure:"spotify"`
	Sheet   SheetConfig   `yaml:"sheet" mapstructure:"sheet"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the enrichment API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// SpotifyConfig configures the metadata backend.
type SpotifyConfig struct {
	ClientID       string  `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret   string  `yaml:"client_secret" mapstructure:"client_secret"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	APIBaseURL     string  `yaml:"api_base_url" mapstructure:"api_base_url"`
	AccountsURL    string  `yaml:"accounts_url" mapstructure:"accounts_url"`
	WebTokenURL    string  `yaml:"web_token_url" mapstructure:"web_token_url"`
	EmbedBaseURL   string  `yaml:"embed_base_url" mapstructure:"embed_base_url"`
}

// SheetConfig configures spreadsheet import behavior.
type SheetConfig struct {
	AliasFile string `yaml:"alias_file" mapstructure:"alias_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SPOTSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})
	// Registered with empty defaults so AutomaticEnv can populate them.
	v.SetDefault("spotify.client_id", "")
	v.SetDefault("spotify.client_secret", "")
	v.SetDefault("sheet.alias_file", "")
	v.SetDefault("spotify.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) "+
			"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15")
	v.SetDefault("spotify.timeout_secs", 20)
	v.SetDefault("spotify.requests_per_sec", 5.0)
	v.SetDefault("spotify.api_base_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.accounts_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.web_token_url",
		"https://open.spotify.com/get_access_token?reason=transport&productType=web_player")
	v.SetDefault("spotify.embed_base_url", "https://open.spotify.com/embed/track/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
