package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/skill-to-role/internal/matcher"
)

type minimumMatchFilter struct {
	disabled bool
	reason   string
	minimum  int
}

// NewMinimumMatch creates a filter that drops roles below the configured match percentage.
func NewMinimumMatch() Filter {
	return &minimumMatchFilter{}
}

func (f *minimumMatchFilter) Name() string { return "minimum_match" }

func (f *minimumMatchFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumMatchFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumMatchFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumMatch < 0 || cfg.MinimumMatch > 100 {
		return fmt.Errorf("minimum match must be between 0 and 100, got %d", cfg.MinimumMatch)
	}
	f.minimum = cfg.MinimumMatch
	return nil
}

func (f *minimumMatchFilter) Apply(_ context.Context, deps Deps, roles []matcher.ScoredRole) ([]matcher.ScoredRole, Step, error) {
	initial := len(roles)
	if f.minimum == 0 {
		return roles, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept, dropped := keep(roles, func(r matcher.ScoredRole) bool {
		return r.MatchPercentage >= f.minimum
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping roles below minimum match",
			zap.Int("minimum_match", f.minimum),
			zap.Int("dropped", len(dropped)),
			zap.Int("roles_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *minimumMatchFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_match": strconv.Itoa(f.minimum)},
	}
}
