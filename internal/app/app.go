// Package app wires configuration, storage, services and the HTTP server
// into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	api "github.com/vadimbarashkov/linknest/internal/api/http"
	"github.com/vadimbarashkov/linknest/internal/config"
	pgrepo "github.com/vadimbarashkov/linknest/internal/database/postgres"
	redisstore "github.com/vadimbarashkov/linknest/internal/database/redis"
	"github.com/vadimbarashkov/linknest/internal/mailer"
	"github.com/vadimbarashkov/linknest/internal/service"
	"github.com/vadimbarashkov/linknest/pkg/postgres"
)

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	redisClient, err := redisstore.New(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	defer redisClient.Close()

	userRepo := pgrepo.NewUserRepository(db)
	orgRepo := pgrepo.NewOrganizationRepository(db)
	namespaceRepo := pgrepo.NewNamespaceRepository(db)
	urlRepo := pgrepo.NewURLRepository(db)
	inviteRepo := pgrepo.NewInviteRepository(db)

	otpStore := redisstore.NewOTPStore(redisClient, cfg.Auth.OTPTTL)
	sessionStore := redisstore.NewSessionStore(redisClient, cfg.Auth.RefreshTokenTTL)

	mail := mailer.New(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName, cfg.BaseURL)
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	access := service.NewAccessControl(orgRepo)

	svcs := api.Services{
		Auth:          service.NewAuthService(userRepo, otpStore, sessionStore, mail, tokens),
		Organizations: service.NewOrganizationService(orgRepo, access),
		Namespaces:    service.NewNamespaceService(namespaceRepo, access),
		URLs:          service.NewURLService(urlRepo, namespaceRepo, access, cfg.ShortCodeLength),
		Invites:       service.NewInviteService(inviteRepo, orgRepo, access, mail, cfg.Auth.InviteTTL),
	}

	logger := httplog.NewLogger("linknest", httplog.Options{
		JSON:    cfg.Env == config.EnvProd,
		Concise: cfg.Env != config.EnvProd,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        api.NewRouter(logger, svcs),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
