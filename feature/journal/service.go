package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"journal-loader/core/metrics"
	"journal-loader/core/reconcile"
	"journal-loader/core/storage"
	"journal-loader/feature/journal/sources"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrSyncInProgress is returned when a sync with different inputs is running.
var ErrSyncInProgress = errors.New("a different journal sync is already running")

// Request describes the inputs of one sync run.
type Request struct {
	// Medline lists Medline file locators, processed first.
	Medline []string `json:"medline"`
	// PMC lists NIH PMC type A CSV locators, processed after Medline.
	PMC []string `json:"pmc"`
	// DryRun simulates all writes.
	DryRun bool `json:"dry_run"`
}

type sourceSpec struct {
	kind    sources.Kind
	locator string
}

// flightKey identifies runs that may share one execution.
func (r Request) flightKey() string {
	return fmt.Sprintf("dry_run=%t|medline=%s|pmc=%s",
		r.DryRun, strings.Join(r.Medline, ","), strings.Join(r.PMC, ","))
}

// specs returns the sources of the request in processing order.
func (r Request) specs() []sourceSpec {
	out := make([]sourceSpec, 0, len(r.Medline)+len(r.PMC))
	for _, loc := range r.Medline {
		out = append(out, sourceSpec{kind: sources.KindMedline, locator: loc})
	}
	for _, loc := range r.PMC {
		out = append(out, sourceSpec{kind: sources.KindPMC, locator: loc})
	}
	return out
}

// Service runs journal syncs against the repository.
type Service struct {
	repo    reconcile.Repository
	client  storage.Client
	logger  *zap.Logger
	metrics *metrics.Metrics

	sf       singleflight.Group
	mu       sync.RWMutex
	last     *reconcile.Summary
	inflight string
	callers  int
}

// NewService creates a new journal sync service. client and m may be nil;
// without a client s3:// locators are rejected.
func NewService(repo reconcile.Repository, client storage.Client, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		client:  client,
		logger:  logger,
		metrics: m,
	}
}

// Validate checks a request before any source is opened.
func (s *Service) Validate(req Request) error {
	specs := req.specs()
	if len(specs) == 0 {
		return fmt.Errorf("%w: at least one medline or pmc source is required", reconcile.ErrConfiguration)
	}
	for _, spec := range specs {
		if !sources.IsRemote(spec.locator) {
			continue
		}
		if _, _, err := sources.ParseLocator(spec.locator); err != nil {
			return err
		}
		if s.client == nil {
			return fmt.Errorf("%w: %s requires object storage, none configured", reconcile.ErrConfiguration, spec.locator)
		}
	}
	return nil
}

// Run executes a sync. Calls with identical requests made while a run is in
// flight wait for it and receive its result; a call with a different request
// fails with ErrSyncInProgress. The run itself is detached from ctx, so a
// caller giving up only stops its own wait.
func (s *Service) Run(ctx context.Context, req Request) (*reconcile.Summary, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	key := req.flightKey()
	if err := s.acquire(key); err != nil {
		return nil, err
	}

	runCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (any, error) {
		return s.run(runCtx, req)
	})

	select {
	case <-ctx.Done():
		// Hold the slot until the run ends so a different request cannot overlap it.
		go func() {
			<-ch
			s.release()
		}()
		return nil, ctx.Err()
	case res := <-ch:
		s.release()
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Info("Joined in-flight journal sync")
		}
		summary := *res.Val.(*reconcile.Summary)
		return &summary, nil
	}
}

// acquire registers a caller for key, failing when a run with another key is active.
func (s *Service) acquire(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callers > 0 && s.inflight != key {
		return ErrSyncInProgress
	}
	s.inflight = key
	s.callers++
	return nil
}

func (s *Service) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callers--
	if s.callers == 0 {
		s.inflight = ""
	}
}

// LastRun returns the summary of the last completed run.
func (s *Service) LastRun() (*reconcile.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, false
	}
	summary := *s.last
	return &summary, true
}

func (s *Service) run(ctx context.Context, req Request) (*reconcile.Summary, error) {
	start := time.Now()
	l := s.logger.With(zap.Bool("dry_run", req.DryRun))
	l.Info("Starting journal sync",
		zap.Strings("medline", req.Medline),
		zap.Strings("pmc", req.PMC),
	)

	opts := reconcile.Options{DryRun: req.DryRun}
	if s.metrics != nil {
		opts.Observer = s.metrics
		s.metrics.RunStarted()
	}

	summary, err := s.runSources(ctx, req, opts, l)
	if s.metrics != nil {
		s.metrics.RunFinished(req.DryRun, summary, time.Since(start))
	}
	if err != nil {
		l.Error("Journal sync aborted", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return summary, nil
}

func (s *Service) runSources(ctx context.Context, req Request, opts reconcile.Options, l *zap.Logger) (*reconcile.Summary, error) {
	engine, err := reconcile.Open(ctx, s.repo, l, opts)
	if err != nil {
		return nil, err
	}

	for _, spec := range req.specs() {
		src, err := sources.Open(ctx, spec.kind, spec.locator, s.client)
		if err != nil {
			return nil, err
		}

		err = engine.Run(ctx, src)
		if closeErr := src.Close(); closeErr != nil {
			l.Warn("Failed to close source", zap.String("source", src.Name()), zap.Error(closeErr))
		}
		if err != nil {
			return nil, err
		}
	}

	summary := engine.Close()
	l.Debug("Match index after run", zap.Int("journals", engine.Index().Len()))
	return &summary, nil
}
