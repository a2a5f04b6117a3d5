package matcher

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/skill-to-role/internal/catalog"
)

const (
	// DefaultLimit is the number of top roles kept by Rank.
	DefaultLimit = 3

	requiredWeight = 2
	optionalWeight = 1
)

type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
)

type SkillAssessment struct {
	Skill   string `json:"skill"`
	Impact  Impact `json:"impact"`
	Matched bool   `json:"matched"`
}

// ScoredRole is a catalog role together with its fit against a skill set.
type ScoredRole struct {
	catalog.RoleRecord

	Rank               int               `json:"rank"`
	Score              int               `json:"score"`
	MaxScore           int               `json:"maxScore"`
	MatchPercentage    int               `json:"matchPercentage"`
	SkillEffectiveness []SkillAssessment `json:"skillEffectiveness"`
}

// Matched returns the names of the matched skills in assessment order.
func (s ScoredRole) Matched() []string {
	return s.filter(true)
}

// Missing returns the names of the skills the user does not have.
func (s ScoredRole) Missing() []string {
	return s.filter(false)
}

func (s ScoredRole) filter(matched bool) []string {
	out := make([]string, 0, len(s.SkillEffectiveness))
	for _, a := range s.SkillEffectiveness {
		if a.Matched == matched {
			out = append(out, a.Skill)
		}
	}
	return out
}

// SkillSet is the lowercased set of skills a user submitted.
type SkillSet map[string]struct{}

// ParseSkills splits comma separated input into a skill set.
// Tokens are trimmed and lowercased; empty tokens are kept.
func ParseSkills(text string) SkillSet {
	set := make(SkillSet)
	for _, token := range strings.Split(text, ",") {
		set[strings.ToLower(strings.TrimSpace(token))] = struct{}{}
	}
	return set
}

func (s SkillSet) Has(skill string) bool {
	_, ok := s[strings.ToLower(skill)]
	return ok
}

// List returns the non-empty skills sorted alphabetically.
func (s SkillSet) List() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		if skill == "" {
			continue
		}
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// ScoreRole weighs required skills twice as much as optional ones.
// A role without any skills scores 0%.
func ScoreRole(role catalog.RoleRecord, skills SkillSet) ScoredRole {
	scored := ScoredRole{
		RoleRecord:         role,
		SkillEffectiveness: make([]SkillAssessment, 0, len(role.RequiredSkills)+len(role.OptionalSkills)),
	}

	assess := func(list []string, weight int, impact Impact) {
		for _, skill := range list {
			scored.MaxScore += weight
			matched := skills.Has(skill)
			if matched {
				scored.Score += weight
			}
			scored.SkillEffectiveness = append(scored.SkillEffectiveness, SkillAssessment{
				Skill:   skill,
				Impact:  impact,
				Matched: matched,
			})
		}
	}

	assess(role.RequiredSkills, requiredWeight, ImpactHigh)
	assess(role.OptionalSkills, optionalWeight, ImpactMedium)

	scored.MatchPercentage = Percentage(scored.Score, scored.MaxScore)
	return scored
}

// Percentage rounds score/max to a whole percent, half away from zero. Zero max gives 0.
func Percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(maxScore)))
}

// ScoreAll scores every role and orders them by match percentage, highest first.
// Roles with equal percentages keep their catalog order.
func ScoreAll(skills SkillSet, roles []catalog.RoleRecord) []ScoredRole {
	scored := make([]ScoredRole, 0, len(roles))
	for _, role := range roles {
		scored = append(scored, ScoreRole(role, skills))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchPercentage > scored[j].MatchPercentage
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored
}

// Top keeps the first limit roles and renumbers their ranks.
// A non-positive limit means DefaultLimit.
func Top(scored []ScoredRole, limit int) []ScoredRole {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]ScoredRole, len(scored))
	copy(out, scored)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Rank parses the user input, scores the catalog and returns the best matches.
func Rank(text string, roles []catalog.RoleRecord, limit int) []ScoredRole {
	return Top(ScoreAll(ParseSkills(text), roles), limit)
}
