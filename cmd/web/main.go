// cmd/web/main.go
//
// Trampô – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start daily rotating logger (tees to console when running in a TTY).
//
//  2. Load configuration; `vault:` values are resolved through Vault when
//     VAULT_ADDR is set.
//
//  3. Install CSRF key and message overrides for the forms.
//
//  4. Open the database, optionally create missing tables.
//
//  5. Wire store, moderation, sessions, and ACL into component.Deps.
//
//  6. Build the chi router:
//
//     • every request     – request ID, client IP, request log, recover,
//                           HTTPS redirect, security headers
//     • /healthz /metrics – operational endpoints
//     • /api/*            – per-IP limiter, bot filter, CSRF, components
//
//  7. Start the backlog gauge and serve until SIGINT / SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/acl"
	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/config"
	"github.com/edupaziani/trampo-conecta-talentos/internal/database"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/message"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
	"github.com/edupaziani/trampo-conecta-talentos/internal/middleware"
	"github.com/edupaziani/trampo-conecta-talentos/internal/moderation"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/server"
	"github.com/edupaziani/trampo-conecta-talentos/internal/session"
	"github.com/edupaziani/trampo-conecta-talentos/internal/store"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
	"github.com/edupaziani/trampo-conecta-talentos/internal/vault"

	_ "github.com/edupaziani/trampo-conecta-talentos/components/admin"
	_ "github.com/edupaziani/trampo-conecta-talentos/components/csrf"
	_ "github.com/edupaziani/trampo-conecta-talentos/components/jobs"
	_ "github.com/edupaziani/trampo-conecta-talentos/components/leads"
)

// outboxKeep is how many decision emails the outbox retains.
const outboxKeep = 200

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	logOut, err := logger.New(config.RootDir(), runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, logOut)
	stop()
	if err != nil {
		logOut.Errorw("trampo exited", "err", err)
	}
	_ = logOut.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, logOut *zap.SugaredLogger) error {
	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	var sec config.SecretResolver
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut)
		if err != nil {
			return fmt.Errorf("vault: %w", err)
		}
		sec = vc
	}
	cfg, err := config.Load(ctx, sec)
	if err != nil {
		return err
	}

	//
	// ── 2.  Forms: CSRF key and message overrides ──────────────────────
	//
	if !form.SetCSRFKey([]byte(cfg.Security.CSRFKey)) {
		logOut.Warnw("security.csrf_key not set, using ephemeral key",
			"effect", "tokens die on restart and differ per instance")
	}
	if cfg.Forms.MessagesDir != "" {
		if err := form.RegisterMessages([]string{cfg.Forms.MessagesDir}); err != nil {
			return fmt.Errorf("form messages: %w", err)
		}
	}

	//
	// ── 3.  Database ────────────────────────────────────────────────────
	//
	db, err := database.OpenWithOptions(ctx, cfg.Database.Driver, cfg.Database.DSN,
		cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db)
	if cfg.Database.Migrate {
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		logOut.Infow("schema migrated", "driver", cfg.Database.Driver)
	}

	//
	// ── 4.  Shared dependencies ─────────────────────────────────────────
	//
	deps := component.Deps{
		Config:     cfg,
		Leads:      st,
		Jobs:       st,
		Moderation: moderation.NewService(st, message.NewOutbox(outboxKeep)),
		ACL:        acl.NewChecker(db),
		Auth:       session.NewManager([]byte(cfg.Security.SessionKey), cfg.Security.SessionTTL),
		Forms: component.NewFormSessions(cfg.RateLimit.Sessions, submission.Options{
			MaxAttempts:        cfg.RateLimit.MaxAttempts,
			Window:             cfg.RateLimit.Window,
			CountLocalFailures: cfg.RateLimit.CountLocalFailures,
		}),
	}

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		middleware.RealIP(cfg.HTTP.TrustedProxies),
		middleware.RequestLog(logOut),
		chimw.Recoverer,
		middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS),
		middleware.Security,
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respond.Error(w, r, http.StatusServiceUnavailable, "db_down", "database unavailable")
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	limiter := middleware.NewIPLimiter(cfg.RateLimit.IPPerSecond, cfg.RateLimit.IPBurst, cfg.RateLimit.Sessions)
	var mountErr error
	r.Group(func(api chi.Router) {
		api.Use(limiter.Handler, middleware.BlockBots, middleware.RequireCSRF)
		mountErr = component.Mount(api, deps)
	})
	if mountErr != nil {
		return mountErr
	}

	//
	// ── 6.  Background jobs and HTTP server ─────────────────────────────
	//
	backlog := moderation.NewBacklog(st, metrics.PendingJobs, cfg.Moderation.BacklogSchedule)
	if err := backlog.Start(ctx); err != nil {
		return err
	}

	return server.Run(ctx, server.New(cfg.HTTP.ListenAddr, r))
}
