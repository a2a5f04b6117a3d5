package export

import (
	"fmt"

	"github.com/spigell/skill-to-role/internal/matcher"
	"github.com/spigell/skill-to-role/internal/report"
)

// Layout holds the page geometry in millimetres of an A4 page.
type Layout struct {
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64

	// RoleBreakAt and SummaryBreakAt force a new page before a role block or the
	// summary section when the offset is already past them.
	RoleBreakAt    float64
	SummaryBreakAt float64

	LineHeight float64
	ItemHeight float64
	TitleGap   float64
	BlockGap   float64
	RowGap     float64

	Left        float64
	Indent      float64
	ValueIndent float64
	RowIndent   float64
}

var DefaultLayout = Layout{
	PageHeight:     297,
	TopMargin:      15,
	BottomMargin:   10,
	RoleBreakAt:    260,
	SummaryBreakAt: 240,
	LineHeight:     7,
	ItemHeight:     6,
	TitleGap:       12,
	BlockGap:       10,
	RowGap:         4,
	Left:           10,
	Indent:         12,
	ValueIndent:    16,
	RowIndent:      14,
}

const summaryTitle = "Salary Comparison (Top Roles)"

// FormatRoles builds the view model for the roles and formats it.
func FormatRoles(scored []matcher.ScoredRole) []Instruction {
	return Format(report.Build(scored))
}

// Format turns the view model into draw instructions using DefaultLayout.
func Format(vm report.ViewModel) []Instruction {
	return DefaultLayout.Format(vm)
}

// Format emits the title, one block per card in rank order and the salary summary.
// Page breaks are only inserted between blocks: before a block when the offset is
// past the break threshold or when the whole block would not fit on the page.
func (l Layout) Format(vm report.ViewModel) []Instruction {
	f := &formatter{layout: l, y: l.TopMargin}

	f.style(StyleNormal)
	f.style(StyleBold)
	f.line(l.Left, vm.Title, l.TitleGap)

	for _, card := range vm.Cards {
		f.breakBefore(l.RoleBreakAt, l.cardHeight(card))
		f.card(card)
	}

	f.breakBefore(l.SummaryBreakAt, l.summaryHeight(vm.Salaries))
	f.summary(vm.Salaries)

	return f.out
}

func (l Layout) cardHeight(card report.Card) float64 {
	lines := 11.0
	items := float64(len(card.Skills) + len(card.Improvements) + len(card.Projects))
	return lines*l.LineHeight + items*l.ItemHeight + l.LineHeight + l.BlockGap
}

func (l Layout) summaryHeight(rows []report.SalaryRow) float64 {
	row := 2*l.LineHeight + l.LineHeight + l.RowGap
	return l.LineHeight + 2 + float64(len(rows))*row
}

type formatter struct {
	layout Layout
	y      float64
	blocks int
	out    []Instruction
}

func (f *formatter) style(s Style) {
	f.out = append(f.out, SetStyle{Style: s})
}

func (f *formatter) line(x float64, content string, advance float64) {
	f.out = append(f.out, Text{X: x, Y: f.y, Content: content})
	f.y += advance
}

// breakBefore starts a new page for the next block. An oversized first block
// stays on the title page since a fresh page would not fit it either.
func (f *formatter) breakBefore(threshold, height float64) {
	l := f.layout
	overflow := f.y+height > l.PageHeight-l.BottomMargin
	if f.y > threshold || (overflow && f.blocks > 0 && f.y > l.TopMargin) {
		f.out = append(f.out, PageBreak{})
		f.y = l.TopMargin
	}
	f.blocks++
}

func (f *formatter) card(card report.Card) {
	l := f.layout

	f.style(StyleBold)
	f.line(l.Left, fmt.Sprintf("%d. %s", card.Rank, card.Role), l.LineHeight)

	f.style(StyleNormal)
	f.line(l.Left, fmt.Sprintf("Match Percentage: %d%%", card.MatchPercentage), l.LineHeight)

	f.style(StyleBold)
	f.line(l.Left, "Salary Details:", l.LineHeight)

	f.style(StyleNormal)
	f.line(l.Indent, "Current Salary (Based on Current Skills):", l.LineHeight)
	f.line(l.ValueIndent, card.CurrentSalary, l.LineHeight)
	f.line(l.Indent, "Potential Salary (After Skill Upgrade):", l.LineHeight)
	f.line(l.ValueIndent, card.UpgradedSalary, l.LineHeight)

	f.style(StyleBold)
	f.line(l.Left, "Skill Effectiveness:", l.LineHeight)
	f.style(StyleNormal)
	for _, s := range card.Skills {
		f.line(l.Indent, skillLine(s), l.ItemHeight)
	}

	f.list("Improvements:", card.Improvements)
	f.list("Projects:", card.Projects)

	f.style(StyleBold)
	f.line(l.Left, "Career Tip:", l.LineHeight)
	f.style(StyleNormal)
	f.line(l.Indent, card.CareerTip, l.LineHeight+l.BlockGap)
}

func (f *formatter) list(title string, items []string) {
	l := f.layout

	f.style(StyleBold)
	f.line(l.Left, title, l.LineHeight)
	f.style(StyleNormal)
	for _, item := range items {
		f.line(l.Indent, "- "+item, l.ItemHeight)
	}
}

func (f *formatter) summary(rows []report.SalaryRow) {
	l := f.layout

	f.style(StyleBold)
	f.line(l.Left, summaryTitle, l.LineHeight+2)

	for _, row := range rows {
		f.style(StyleBold)
		f.line(l.Left, row.Role, l.LineHeight)
		f.style(StyleNormal)
		f.line(l.RowIndent, "Current Salary: "+row.Current, l.LineHeight)
		f.line(l.RowIndent, "After Skill Upgrade: "+row.Upgraded, l.LineHeight+l.RowGap)
	}
}

func skillLine(s matcher.SkillAssessment) string {
	state := "unmatched"
	if s.Matched {
		state = "matched"
	}
	return fmt.Sprintf("- %s (%s impact) - %s", s.Skill, s.Impact, state)
}
