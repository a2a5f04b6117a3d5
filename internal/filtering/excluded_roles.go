package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-to-role/internal/matcher"
)

type excludedRolesFilter struct {
	disabled bool
	reason   string
	roles    map[string]struct{}
	names    []string
}

// NewExcludedRoles creates a filter that removes roles listed in the config.
func NewExcludedRoles() Filter {
	return &excludedRolesFilter{}
}

func (f *excludedRolesFilter) Name() string { return "excluded_roles" }

func (f *excludedRolesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludedRolesFilter) IsEnabled() bool { return !f.disabled }

func (f *excludedRolesFilter) Validate(cfg *Config) error {
	f.roles = make(map[string]struct{})
	f.names = nil
	if cfg == nil {
		return nil
	}
	for _, name := range cfg.ExcludeRoles {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f.roles[strings.ToLower(name)] = struct{}{}
		f.names = append(f.names, name)
	}
	return nil
}

func (f *excludedRolesFilter) Apply(_ context.Context, deps Deps, roles []matcher.ScoredRole) ([]matcher.ScoredRole, Step, error) {
	initial := len(roles)
	if len(f.roles) == 0 {
		return roles, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept, dropped := keep(roles, func(r matcher.ScoredRole) bool {
		_, excluded := f.roles[strings.ToLower(strings.TrimSpace(r.Role))]
		return !excluded
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding roles from config",
			zap.Strings("excluded_roles", dropped),
			zap.Int("roles_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *excludedRolesFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["roles"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
