package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/logichain/backend/auth"
	"github.com/logichain/backend/config"
	"github.com/logichain/backend/repository"
	"github.com/logichain/backend/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// an empty signing key must never boot a server
		return err
	}

	logger := auth.DefaultLogger()

	db, err := repository.OpenSQLite(cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	if err := repository.CreateSchema(ctx, db); err != nil {
		return err
	}

	repos := repository.NewManager(db)
	repos.MustValidate()

	if err := repository.EnsureDefaultAdmin(ctx, repos.Accounts(), repository.AdminSeed{
		Enabled:  cfg.SeedAdmin,
		Username: cfg.SeedAdminUsername,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	}, logger); err != nil {
		return err
	}

	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenLifetime, cfg.JWTIssuer, logger)
	if err != nil {
		return err
	}

	var store auth.CredentialStore
	if cfg.UseRedis() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		store = auth.NewRedisCredentialStore(client, cfg.OTPLifetime, cfg.ResetTokenLifetime, logger)
	} else {
		store = auth.NewMemoryCredentialStore(cfg.OTPLifetime, cfg.ResetTokenLifetime)
	}

	mailer := auth.NewSMTPMailer(auth.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		UseTLS:   cfg.SMTPUseTLS,
	}, logger)

	srv := server.New(server.Deps{
		Tokens: tokens,
		Auther: auth.NewAuthenticator(repos.Accounts(), tokens),
		Reset:  auth.NewPasswordResetFlow(repos.Accounts(), store, mailer),
		Repos:  repos,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.ListenAddr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		return srv.Shutdown()
	}
}
