// Package web parses web service configuration and launches the service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/galien/internal/platform/cmd"
	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/platform/id"
	"github.com/louisbranch/galien/internal/platform/timeouts"
	"github.com/louisbranch/galien/internal/registration"
	"github.com/louisbranch/galien/internal/registration/drafttoken"
	"github.com/louisbranch/galien/internal/services/web"
	"github.com/louisbranch/galien/internal/services/web/platform/metrics"
	"github.com/louisbranch/galien/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"GALIEN_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"GALIEN_WEB_DB_PATH" envDefault:"data/galien-web.db"`
	CSRFKey             string        `env:"GALIEN_WEB_CSRF_KEY"`
	DraftSecret         string        `env:"GALIEN_WEB_DRAFT_SECRET"`
	DraftTTL            time.Duration `env:"GALIEN_WEB_DRAFT_TTL" envDefault:"72h"`
	SubmitTimeout       time.Duration `env:"GALIEN_WEB_SUBMIT_TIMEOUT"`
	DefaultLocale       string        `env:"GALIEN_WEB_DEFAULT_LOCALE" envDefault:"fr"`
	TrustForwardedProto bool          `env:"GALIEN_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.CSRFKey, "csrf-key", cfg.CSRFKey, "Secret key for form XSRF tokens")
	fs.StringVar(&cfg.DraftSecret, "draft-secret", cfg.DraftSecret, "Secret key for registration draft cookies")
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", cfg.DraftTTL, "How long an unfinished registration is kept")
	fs.StringVar(&cfg.DefaultLocale, "locale", cfg.DefaultLocale, "Default page language (fr or en)")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto from a reverse proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = timeouts.Submission
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports missing secrets and unsupported values.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if strings.TrimSpace(c.CSRFKey) == "" {
		errs = append(errs, errors.New("GALIEN_WEB_CSRF_KEY is required"))
	}
	if strings.TrimSpace(c.DraftSecret) == "" {
		errs = append(errs, errors.New("GALIEN_WEB_DRAFT_SECRET is required"))
	}
	if c.DraftTTL <= 0 {
		errs = append(errs, errors.New("draft ttl must be positive"))
	}
	if _, ok := i18n.ParseLocale(c.DefaultLocale); !ok {
		errs = append(errs, fmt.Errorf("unsupported locale %q", c.DefaultLocale))
	}
	return errors.Join(errs...)
}

// Run starts the web service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open web store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close web store: %v", err)
		}
	}()

	locale, _ := i18n.ParseLocale(cfg.DefaultLocale)
	m := metrics.New()
	service, err := registration.NewService(registration.Config{
		Drafts:        store,
		Submitter:     store,
		Observer:      m,
		NewID:         id.NewID,
		SubmitTimeout: cfg.SubmitTimeout,
	})
	if err != nil {
		return fmt.Errorf("init registration: %w", err)
	}
	codec, err := drafttoken.NewCodec([]byte(cfg.DraftSecret), cfg.DraftTTL, nil)
	if err != nil {
		return fmt.Errorf("init draft tokens: %w", err)
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		CSRFKey:             cfg.CSRFKey,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Localization:        i18n.NewProvider(locale),
		Metrics:             m,
		Registration:        service,
		DraftTokens:         codec,
		Participants:        store,
		DraftSweeper:        store,
		DraftTTL:            cfg.DraftTTL,
		Logger:              log.Default(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
