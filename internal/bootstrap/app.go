package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/ai"
	"gide-backend/internal/ai/gemini"
	"gide-backend/internal/auth"
	"gide-backend/internal/dashboard"
	"gide-backend/internal/mail"
	"gide-backend/internal/passwordreset"
	"gide-backend/internal/resumes"
	sharedauth "gide-backend/internal/shared/auth"
	"gide-backend/internal/shared/config"
	"gide-backend/internal/shared/server"
	"gide-backend/internal/shared/storage/db"
	"gide-backend/internal/shared/telemetry"
	"gide-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Issuer *sharedauth.Issuer
	Mailer mail.Mailer
	AI     ai.Client

	UsersRepo   users.Repo
	ResumesRepo resumes.Repo

	UsersService   *users.Service
	ResetService   *passwordreset.Service
	ResumesService *resumes.Service
	AuthService    *auth.Service

	AuthHandler      *auth.Handler
	GoogleAuth       *auth.GoogleService
	ResetHandler     *passwordreset.Handler
	ResumeHandler    *resumes.Handler
	DashboardHandler *dashboard.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Issuer:           app.Issuer,
		AuthHandler:      app.AuthHandler,
		GoogleAuth:       app.GoogleAuth,
		ResetHandler:     app.ResetHandler,
		ResumeHandler:    app.ResumeHandler,
		DashboardHandler: app.DashboardHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	issuer, err := sharedauth.NewIssuer(app.Config.JWTSecret, app.Config.TokenTTL)
	if err != nil {
		return err
	}
	app.Issuer = issuer

	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.Mailer = buildMailer(app.Config)
	app.AI = buildAI(app.Config)

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResetService = passwordreset.NewService(app.UsersService, app.Mailer, app.Config.ResetCodeTTL)
	app.ResumesService = resumes.NewService(app.ResumesRepo)

	verifier := auth.NewGoogleVerifier(app.Config.GoogleClientID)
	app.AuthService = auth.NewService(app.UsersService, app.Issuer, verifier)

	app.AuthHandler = auth.NewHandler(app.AuthService)
	app.GoogleAuth = auth.NewGoogleService(
		app.AuthService,
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
	app.ResetHandler = passwordreset.NewHandler(app.ResetService)
	app.ResumeHandler = resumes.NewHandler(app.ResumesService, app.AI)
	app.DashboardHandler = dashboard.NewHandler(app.UsersService, app.ResumesService)

	return nil
}

func buildMailer(cfg config.Config) mail.Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		telemetry.Warn("bootstrap.log_mailer", map[string]any{
			"reason": "MAIL_SERVER empty",
		})
		return mail.LogMailer{}
	}
	return mail.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}
}

func buildAI(cfg config.Config) ai.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return ai.PlaceholderClient{}
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		telemetry.Warn("bootstrap.ai_placeholder", map[string]any{
			"error": err.Error(),
		})
		return ai.PlaceholderClient{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
