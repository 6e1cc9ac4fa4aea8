package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/config"
	"github.com/campustech/clubhub/backend/internal/database"
	"github.com/campustech/clubhub/backend/internal/events"
	"github.com/campustech/clubhub/backend/internal/graph"
	"github.com/campustech/clubhub/backend/internal/logging"
	"github.com/campustech/clubhub/backend/internal/polls"
	"github.com/campustech/clubhub/backend/internal/projects"
	"github.com/campustech/clubhub/backend/internal/resources"
	"github.com/campustech/clubhub/backend/internal/server"
	"github.com/campustech/clubhub/backend/internal/users"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clubhub-api",
		Short: "ClubHub membership backend service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("identity-issuer", defaults.GetString("identity.issuer"), "Identity provider issuer URL")
	cmd.PersistentFlags().String("identity-jwks-url", defaults.GetString("identity.jwks_url"), "Identity provider JWKS URL")
	cmd.PersistentFlags().String("identity-audience", defaults.GetString("identity.audience"), "Expected token audience (optional)")
	cmd.PersistentFlags().String("webhook-secret", "", "Identity webhook signing secret (overrides env)")
	cmd.PersistentFlags().String("uploads-cloud-name", defaults.GetString("uploads.cloud_name"), "Upload provider cloud name")
	cmd.PersistentFlags().String("uploads-preset", defaults.GetString("uploads.preset"), "Upload provider unsigned preset")
	cmd.PersistentFlags().StringSlice("cors-allowed-origins", defaults.GetStringSlice("cors.allowed_origins"), "Allowed CORS origins")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "identity.issuer", "identity-issuer")
	bindFlag(cmd, "identity.jwks_url", "identity-jwks-url")
	bindFlag(cmd, "identity.audience", "identity-audience")
	bindFlag(cmd, "identity.webhook_secret", "webhook-secret")
	bindFlag(cmd, "uploads.cloud_name", "uploads-cloud-name")
	bindFlag(cmd, "uploads.preset", "uploads-preset")
	bindFlag(cmd, "cors.allowed_origins", "cors-allowed-origins")
	bindFlag(cmd, "log.level", "log-level")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	verifier, err := auth.NewSessionVerifier(auth.SessionVerifierConfig{
		Issuer:   appConfig.IdentityIssuer,
		JWKSURL:  appConfig.IdentityJWKSURL,
		Audience: appConfig.IdentityAudience,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	idProvider := database.NewUUIDProvider()

	userService, err := users.NewService(users.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	eventService, err := events.NewService(events.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	projectService, err := projects.NewService(projects.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	resourceService, err := resources.NewService(resources.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	pollService, err := polls.NewService(polls.ServiceConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	schema, err := graph.NewSchema(&graph.Resolvers{
		Users:     userService,
		Events:    eventService,
		Projects:  projectService,
		Resources: resourceService,
		Polls:     pollService,
	})
	if err != nil {
		return err
	}

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Verifier:       verifier,
		Users:          userService,
		Schema:         schema,
		WebhookSecret:  appConfig.WebhookSecret,
		AllowedOrigins: appConfig.AllowedOrigins,
		Uploads: server.UploadConfig{
			CloudName: appConfig.UploadCloudName,
			Preset:    appConfig.UploadPreset,
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("address", appConfig.HTTPAddress),
			zap.String("graphql_url", appConfig.GraphQLPublicURL))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
