package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/skill-to-role/internal/catalog"
	"github.com/spigell/skill-to-role/internal/export"
	"github.com/spigell/skill-to-role/internal/filtering"
	"github.com/spigell/skill-to-role/internal/logger"
	"github.com/spigell/skill-to-role/internal/matcher"
)

var (
	// ErrMissingInput is returned when analysis is requested without any skills.
	ErrMissingInput = errors.New("enter skills")
	// ErrNoAnalysis is returned when exporting before any analysis has run.
	ErrNoAnalysis = errors.New("no analysis to export, analyze skills first")
)

// Options configure a Service. A non-positive Limit means matcher.DefaultLimit and
// ExportDir is used when Export is called without a path. DisabledFilters names
// filter steps that are skipped.
type Options struct {
	Limit           int
	Filters         *filtering.Config
	DisabledFilters []string
	ExportDir       string
}

// Service holds the catalog and the most recent run.
type Service struct {
	store   *catalog.Store
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
	newID   func() uuid.UUID
	mu      sync.RWMutex
	lastRun *Run
}

func New(store *catalog.Store, opts Options, log *zap.Logger) *Service {
	if store == nil {
		store = catalog.NewStore()
	}
	if opts.Filters == nil {
		opts.Filters = &filtering.Config{}
	}

	return &Service{
		store:  store,
		opts:   opts,
		logger: logger.WithFields(log),
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Analyze scores the catalog against the comma separated skills and stores the
// result as the current run. Blank input returns ErrMissingInput and leaves the
// current run untouched.
func (s *Service) Analyze(ctx context.Context, input string) (*Run, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrMissingInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.store.State() != catalog.Loaded {
		s.logger.Warn("catalog is not loaded yet, no roles to score")
	}

	skills := matcher.ParseSkills(input)
	scored := matcher.ScoreAll(skills, s.store.Roles())

	filtered, err := filtering.Run(ctx, s.opts.Filters, filtering.Deps{Logger: s.logger}, s.steps(), scored)
	if err != nil {
		return nil, fmt.Errorf("filtering roles: %w", err)
	}

	run := &Run{
		ID:        s.newID(),
		Skills:    skills.List(),
		CreatedAt: s.now().UTC(),
		Roles:     matcher.Top(filtered, s.opts.Limit),
	}

	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()

	s.logger.Info("analysis completed",
		append(logger.RunFields(run.ID.String(), logger.TruncateForLog(input, 120)),
			zap.Int("catalog_roles", len(scored)),
			zap.Int("matched_roles", run.Len()),
			zap.Strings("top_roles", run.RoleNames()),
		)...,
	)

	return run, nil
}

// Last returns the most recent run.
func (s *Service) Last() (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastRun != nil
}

// Export renders the most recent run on w and saves it. An empty path means
// export.DefaultFilename inside the configured export directory.
func (s *Service) Export(ctx context.Context, path string, w export.Writer) (string, error) {
	run, ok := s.Last()
	if !ok {
		return "", ErrNoAnalysis
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if strings.TrimSpace(path) == "" {
		path = filepath.Join(s.opts.ExportDir, export.DefaultFilename)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	instr := export.Format(run.View())
	if err := export.Render(w, instr); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	if err := w.Save(path); err != nil {
		return "", fmt.Errorf("saving report to %q: %w", path, err)
	}

	s.logger.Info("report exported",
		zap.String(logger.FieldRunID, run.ID.String()),
		zap.String("path", path),
		zap.Int("pages", export.Pages(instr)),
	)

	return path, nil
}

// Filters describes the filter steps as configured for the service.
func (s *Service) Filters() []filtering.Status {
	steps := s.steps()
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(s.opts.Filters); err != nil {
			step.Disable(err.Error())
		}
	}
	return filtering.Describe(steps)
}

// steps builds a fresh filter chain for one call.
func (s *Service) steps() []filtering.Filter {
	steps := filtering.Default()
	for _, name := range s.opts.DisabledFilters {
		filtering.DisableByName(steps, strings.TrimSpace(name), "disabled by config")
	}
	return steps
}
