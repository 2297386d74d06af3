package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/mail"
	"github.com/callmefred/thebestapp/pkg/config"
	"github.com/callmefred/thebestapp/pkg/cookie"
	"github.com/callmefred/thebestapp/pkg/email"
	"github.com/callmefred/thebestapp/pkg/httpserver"
	"github.com/callmefred/thebestapp/pkg/logger"
	"github.com/callmefred/thebestapp/pkg/pg"
	"github.com/callmefred/thebestapp/pkg/session"
	"github.com/callmefred/thebestapp/postgres"
	"github.com/callmefred/thebestapp/rbac"
	"github.com/callmefred/thebestapp/web"
)

func main() {
	ctx := context.Background()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, logger.WithAttr(logger.Component("server")))

	if err := run(ctx, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		pgCfg      pg.Config
		authCfg    auth.Config
		googleCfg  auth.GoogleConfig
		emailCfg   email.Config
		mailCfg    mail.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&pgCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&googleCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&httpCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	userStorage := postgres.NewUserStorage(pool)

	accounts := auth.NewService(userStorage, authCfg, auth.WithLogger(log))
	google := auth.NewGoogleService(userStorage, googleCfg, auth.WithGoogleLogger(log))

	sender, err := newSender(emailCfg, log)
	if err != nil {
		return err
	}
	mailer := mail.NewService(sender, mailCfg, mail.WithLogger(log))

	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	store, err := newSessionStore(ctx, sessionCfg, log)
	if err != nil {
		return err
	}

	sessions := session.New(
		session.WithStore(store),
		session.WithTransport(session.NewCookieTransport(cookieMgr, sessionCfg.CookieName)),
		session.WithConfig(sessionCfg),
	)

	authz, err := rbac.NewAuthorizer(ctx, postgres.NewRoleSource(pool))
	if err != nil {
		return err
	}

	handler, err := web.NewHandler(accounts, google, mailer, sessions, authz, userStorage,
		web.WithLogger(log))
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, handler.Router())
}

// newSender picks the Brevo client when an API key is configured, and the
// file-writing dev sender otherwise.
func newSender(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.BrevoAPIKey != "" {
		return email.NewBrevoClient(cfg)
	}
	log.Warn("BREVO_API_KEY not set, writing outbound mail to ./outbox")
	return email.NewDevSender("outbox"), nil
}

// newSessionStore picks Redis when REDIS_URL is configured, memory otherwise.
func newSessionStore(ctx context.Context, cfg session.Config, log *slog.Logger) (session.Store, error) {
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	log.Info("REDIS_URL not set, using in-memory session store")
	return session.NewMemoryStore(cfg.CleanupInterval), nil
}
