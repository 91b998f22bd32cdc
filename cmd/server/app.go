package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/config"
	"github.com/gabcerqueira/natours/internal/platform/logger"
	"github.com/gabcerqueira/natours/internal/platform/mail"
	"github.com/gabcerqueira/natours/internal/platform/mongodb"
	"github.com/gabcerqueira/natours/internal/service/auth"
	"github.com/gabcerqueira/natours/internal/store"
)

// application holds the wired dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client

	tourStore   store.TourStore
	userStore   store.UserStore
	reviewStore store.ReviewStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	mailer           mail.Mailer
}

// newApplication loads configuration, sets up logging, connects to the
// database and wires the stores and services together.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Raw error detail in responses is a development convenience only.
	shared.SetDevelopmentMode(!cfg.Server.IsProduction())

	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := client.Database(cfg.Database.Name)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure database indexes: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}

	var mailer mail.Mailer
	if cfg.Mail.Host != "" {
		if mailer, err = mail.NewSMTPMailer(cfg.Mail); err != nil {
			return nil, fmt.Errorf("failed to create mailer: %w", err)
		}
	} else {
		log.Warn("no smtp host configured, outbound mail will be logged only")
		mailer = mail.LogMailer{}
	}

	return &application{
		config:           cfg,
		logger:           log,
		mongoClient:      client,
		tourStore:        mongodb.NewTourStore(db, cfg.Query.DefaultLimit),
		userStore:        mongodb.NewUserStore(db, cfg.Query.DefaultLimit),
		reviewStore:      mongodb.NewReviewStore(db, cfg.Query.DefaultLimit),
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		mailer:           mailer,
	}, nil
}

// cleanup releases process-wide resources on shutdown.
func (app *application) cleanup(ctx context.Context) {
	if err := app.mongoClient.Disconnect(ctx); err != nil {
		app.logger.Error("failed to disconnect from database", "error", err)
	}
}
