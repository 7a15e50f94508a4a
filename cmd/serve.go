package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "github.com/taskboard/taskboard/internal/configs"
	httpapi "github.com/taskboard/taskboard/internal/http"
	"github.com/taskboard/taskboard/internal/mail"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/services"
	"github.com/taskboard/taskboard/internal/telemetry"
	"github.com/taskboard/taskboard/internal/verify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task board HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		userRepo := repository.NewUserRepository(database)
		workspaceRepo := repository.NewWorkspaceRepository(database)
		projectRepo := repository.NewProjectRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		tagRepo := repository.NewTagRepository(database)

		recorder := telemetry.NewRecorder(database, cfg.TelemetryEnabled)

		// Activation tokens live in redis when one is configured, so
		// they survive restarts; otherwise in process memory.
		var tokenStore verify.TokenStore
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			tokenStore = verify.NewRedisTokenStore(redisClient)
		} else {
			log.Println("REDIS_HOST not set, keeping activation tokens in memory")
			tokenStore = verify.NewMemoryTokenStore()
		}

		// Brevo when an API key is present, SMTP otherwise.
		var sender mail.Sender
		if cfg.BrevoAPIKey != "" {
			sender = mail.NewBrevoSender(cfg.BrevoEndpoint, cfg.BrevoAPIKey, cfg.FromEmail, cfg.SiteName)
		} else {
			sender = mail.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail, cfg.SiteName)
		}
		mailer := mail.NewService(sender)

		perms := services.NewPermissions(workspaceRepo)
		authService := services.NewAuthService(
			userRepo, tokenStore, mailer, recorder,
			cfg.SiteName, cfg.BaseURL, cfg.JWTSecret, cfg.JWTExpireHours,
			time.Duration(cfg.ActivationTTLHours)*time.Hour,
		)
		workspaceService := services.NewWorkspaceService(workspaceRepo, userRepo, perms, recorder)
		projectService := services.NewProjectService(projectRepo, workspaceRepo, taskRepo, tagRepo, perms, recorder)
		taskService := services.NewTaskService(taskRepo, projectRepo, workspaceRepo, tagRepo, userRepo, perms, recorder)
		tagService := services.NewTagService(tagRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		handler := httpapi.NewHandler(authService, workspaceService, projectService, taskService, tagService, recorder)
		httpapi.Register(e, handler, cfg.JWTSecret, userRepo)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
