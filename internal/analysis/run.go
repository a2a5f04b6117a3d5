package analysis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/skill-to-role/internal/matcher"
	"github.com/spigell/skill-to-role/internal/report"
)

// Run is the result of one analysis. It is never modified after it is stored.
type Run struct {
	ID        uuid.UUID            `json:"id"`
	Skills    []string             `json:"skills"`
	CreatedAt time.Time            `json:"createdAt"`
	Roles     []matcher.ScoredRole `json:"roles"`
}

func (r *Run) Len() int {
	return len(r.Roles)
}

// View builds the report view model for the run.
func (r *Run) View() report.ViewModel {
	return report.Build(r.Roles)
}

// RoleNames returns the ranked role names.
func (r *Run) RoleNames() []string {
	names := make([]string, 0, len(r.Roles))
	for _, role := range r.Roles {
		names = append(names, role.Role)
	}
	return names
}

// DumpToTmpFile writes the run as indented JSON to a new temporary file.
func (r *Run) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "skill_to_role_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
