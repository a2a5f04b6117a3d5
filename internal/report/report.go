// Package report assembles the presentation model shared by every report output.
//
// Build is the only place where scored roles are turned into display content. The
// terminal and HTML renderers in this package and the PDF export all consume the
// resulting ViewModel, so they differ in encoding only.
package report

import (
	"github.com/spigell/skill-to-role/internal/matcher"
	"github.com/spigell/skill-to-role/internal/textnorm"
)

const (
	Title        = "Skill-to-Role Intelligence Report"
	SalaryTitle  = "Salary Comparison (Top Matches)"
	NoResultsMsg = "No matching roles found."

	// gaugeCircumference matches a circle of radius 50.
	gaugeCircumference = 314.0
)

type Tier string

const (
	TierGood     Tier = "good"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// TierFor maps a match percentage to its color tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 75:
		return TierGood
	case percentage >= 50:
		return TierWarning
	default:
		return TierCritical
	}
}

// Color returns the hex color used for the tier.
func (t Tier) Color() string {
	switch t {
	case TierGood:
		return "#27ae60"
	case TierWarning:
		return "#f39c12"
	default:
		return "#e74c3c"
	}
}

// Card is the content of one ranked role. GaugeOffset is the stroke-dashoffset
// of the circular percentage gauge.
type Card struct {
	Rank            int
	Role            string
	MatchPercentage int
	Tier            Tier
	GaugeOffset     float64
	Skills          []matcher.SkillAssessment
	Improvements    []string
	Projects        []string
	CareerTip       string
	CurrentSalary   string
	UpgradedSalary  string
}

type SalaryRow struct {
	Role     string
	Current  string
	Upgraded string
}

type ViewModel struct {
	Title    string
	Cards    []Card
	Salaries []SalaryRow
}

func (v ViewModel) Empty() bool {
	return len(v.Cards) == 0
}

// Build converts ranked roles into the view model. Only the salary strings are
// normalized, free text is kept as written.
func Build(scored []matcher.ScoredRole) ViewModel {
	vm := ViewModel{
		Title:    Title,
		Cards:    make([]Card, 0, len(scored)),
		Salaries: make([]SalaryRow, 0, len(scored)),
	}

	for i, r := range scored {
		rank := r.Rank
		if rank == 0 {
			rank = i + 1
		}

		current := textnorm.Normalize(r.SalaryInsights.CurrentRangeIndia)
		upgraded := textnorm.Normalize(r.SalaryInsights.HigherRangeIndia)

		vm.Cards = append(vm.Cards, Card{
			Rank:            rank,
			Role:            r.Role,
			MatchPercentage: r.MatchPercentage,
			Tier:            TierFor(r.MatchPercentage),
			GaugeOffset:     gaugeCircumference - gaugeCircumference*float64(r.MatchPercentage)/100,
			Skills:          append([]matcher.SkillAssessment(nil), r.SkillEffectiveness...),
			Improvements:    append([]string(nil), r.ImprovementSuggestions...),
			Projects:        append([]string(nil), r.ProjectIdeas...),
			CareerTip:       r.CareerTip,
			CurrentSalary:   current,
			UpgradedSalary:  upgraded,
		})

		vm.Salaries = append(vm.Salaries, SalaryRow{
			Role:     r.Role,
			Current:  current,
			Upgraded: upgraded,
		})
	}

	return vm
}
