package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// State reports whether the catalog has been loaded.
type State int

const (
	NotLoaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "not_loaded"
}

type SalaryInsights struct {
	CurrentRangeIndia string `mapstructure:"currentRangeIndia" json:"currentRangeIndia"`
	HigherRangeIndia  string `mapstructure:"higherRangeIndia" json:"higherRangeIndia"`
}

// RoleRecord is a single job role of the catalog. Records are read-only once loaded.
type RoleRecord struct {
	Role                   string         `mapstructure:"role" json:"role"`
	RequiredSkills         []string       `mapstructure:"requiredSkills" json:"requiredSkills"`
	OptionalSkills         []string       `mapstructure:"optionalSkills" json:"optionalSkills"`
	ImprovementSuggestions []string       `mapstructure:"improvementSuggestions" json:"improvementSuggestions"`
	ProjectIdeas           []string       `mapstructure:"projectIdeas" json:"projectIdeas"`
	CareerTip              string         `mapstructure:"careerTip" json:"careerTip"`
	SalaryInsights         SalaryInsights `mapstructure:"salaryInsights" json:"salaryInsights"`
}

// Store holds the role catalog. Until Load or Set succeeds it is NotLoaded and
// yields no roles, so callers may query it before the catalog is available.
type Store struct {
	mu     sync.RWMutex
	state  State
	roles  []RoleRecord
	source string
}

func NewStore() *Store {
	return &Store{}
}

// Load reads the catalog from path and marks the store as loaded.
// On failure the previous contents are kept.
func (s *Store) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	roles, err := ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading catalog %q: %w", path, err)
	}

	s.set(roles, path)
	return nil
}

// Set replaces the catalog with the provided roles.
func (s *Store) Set(roles []RoleRecord) {
	s.set(roles, "")
}

func (s *Store) set(roles []RoleRecord, source string) {
	copied := make([]RoleRecord, len(roles))
	copy(copied, roles)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles = copied
	s.source = source
	s.state = Loaded
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Roles returns the catalog in file order. It is empty while the store is not loaded.
func (s *Store) Roles() []RoleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != Loaded {
		return nil
	}

	roles := make([]RoleRecord, len(s.roles))
	copy(roles, s.roles)
	return roles
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roles)
}

func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.roles))
	for _, r := range s.roles {
		names = append(names, r.Role)
	}
	return names
}

// FindByName looks a role up by its name, ignoring case.
func (s *Store) FindByName(name string) *RoleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for i := range s.roles {
		if strings.EqualFold(s.roles[i].Role, name) {
			role := s.roles[i]
			return &role
		}
	}
	return nil
}
