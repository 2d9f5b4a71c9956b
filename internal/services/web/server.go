// Package web hosts the registration and organizer dashboard HTTP service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/platform/timeouts"
	"github.com/louisbranch/galien/internal/registration/drafttoken"
	webapp "github.com/louisbranch/galien/internal/services/web/app"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/modules"
	"github.com/louisbranch/galien/internal/services/web/modules/dashboard"
	"github.com/louisbranch/galien/internal/services/web/modules/registration"
	"github.com/louisbranch/galien/internal/services/web/platform/csrf"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
	"github.com/louisbranch/galien/internal/services/web/platform/httpx"
	"github.com/louisbranch/galien/internal/services/web/platform/metrics"
	"github.com/louisbranch/galien/internal/services/web/platform/observability"
	"github.com/louisbranch/galien/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/galien/internal/services/web/platform/weberror"
	webstatic "github.com/louisbranch/galien/internal/services/web/static"
	"golang.org/x/sync/errgroup"
)

// DraftSweeper removes registration drafts that were abandoned before cutoff.
type DraftSweeper interface {
	DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	CSRFKey             string
	TrustForwardedProto bool
	Localization        *i18n.Provider
	Metrics             *metrics.Metrics
	Registration        registration.Workflow
	DraftTokens         *drafttoken.Codec
	Participants        dashboard.Gateway
	// DraftSweeper and DraftTTL enable periodic removal of stale drafts.
	DraftSweeper DraftSweeper
	DraftTTL     time.Duration
	Logger       *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr     string
	httpServer   *http.Server
	sweeper      DraftSweeper
	draftTTL     time.Duration
	sweepEvery   time.Duration
	logger       *log.Logger
	now          func() time.Time
	shutdownWait time.Duration
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	protector, err := csrf.New(cfg.CSRFKey, policy)
	if err != nil {
		return nil, err
	}
	localization := cfg.Localization
	if localization == nil {
		localization = i18n.NewProvider(i18n.DefaultLocale)
	}
	deps := module.Dependencies{
		Localization: localization,
		CSRF:         protector,
		Flash:        flash.Store{Policy: policy},
		Metrics:      cfg.Metrics,
		RequestMeta:  policy,
	}

	root, err := webapp.BuildRootHandler(webapp.Config{
		Dependencies: deps,
		Modules: modules.DefaultModules(modules.Dependencies{
			Registration: cfg.Registration,
			DraftTokens:  cfg.DraftTokens,
			Participants: cfg.Participants,
		}),
		StaticFS: webstatic.FS,
	})
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}

	onReject := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Printf("csrf rejected method=%s path=%s request_id=%s", r.Method, r.URL.Path, httpx.RequestIDFor(r))
		weberror.WriteModuleError(w, r, err, deps)
	}
	return httpx.Chain(root,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		httpx.SecurityHeaders(),
		observability.Trace("web"),
		observability.RequestLogger(logger),
		protector.Middleware(onReject),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sweeper:      cfg.DraftSweeper,
		draftTTL:     cfg.DraftTTL,
		sweepEvery:   sweepInterval(cfg.DraftTTL),
		logger:       logger,
		now:          time.Now,
		shutdownWait: timeouts.Shutdown,
	}, nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	groupCtx, stop := context.WithCancel(groupCtx)
	defer stop()
	group.Go(func() error {
		defer stop()
		s.logger.Printf("web listening addr=%s", s.httpAddr)
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("serve web http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownWait)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	})
	if s.sweeper != nil && s.sweepEvery > 0 {
		group.Go(func() error {
			s.sweepDrafts(groupCtx)
			return nil
		})
	}
	return group.Wait()
}

func (s *Server) sweepDrafts(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Server) sweepOnce(ctx context.Context) {
	removed, err := s.sweeper.DeleteDraftsBefore(ctx, s.now().Add(-s.draftTTL))
	if err != nil {
		s.logger.Printf("draft sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Printf("draft sweep removed=%d", removed)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
