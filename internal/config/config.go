package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "CLUBHUB"
	defaultHTTPAddress  = "0.0.0.0:8080"
	defaultDatabasePath = "clubhub.db"
	defaultLogLevel     = "info"
	defaultGraphQLURL   = "/graphql"
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress      string
	DatabasePath     string
	LogLevel         string
	IdentityIssuer   string
	IdentityJWKSURL  string
	IdentityAudience string
	WebhookSecret    string
	GraphQLPublicURL string
	UploadCloudName  string
	UploadPreset     string
	AllowedOrigins   []string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("graphql.public_url", defaultGraphQLURL)
	configViper.SetDefault("cors.allowed_origins", []string{})
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:      configViper.GetString("http.address"),
		DatabasePath:     configViper.GetString("database.path"),
		LogLevel:         configViper.GetString("log.level"),
		IdentityIssuer:   configViper.GetString("identity.issuer"),
		IdentityJWKSURL:  configViper.GetString("identity.jwks_url"),
		IdentityAudience: configViper.GetString("identity.audience"),
		WebhookSecret:    configViper.GetString("identity.webhook_secret"),
		GraphQLPublicURL: configViper.GetString("graphql.public_url"),
		UploadCloudName:  configViper.GetString("uploads.cloud_name"),
		UploadPreset:     configViper.GetString("uploads.preset"),
		AllowedOrigins:   configViper.GetStringSlice("cors.allowed_origins"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.IdentityIssuer) == "" {
		return fmt.Errorf("identity.issuer is required")
	}
	if strings.TrimSpace(c.IdentityJWKSURL) == "" {
		return fmt.Errorf("identity.jwks_url is required")
	}
	return nil
}
