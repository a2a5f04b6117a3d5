package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"

	"github.com/spigell/skill-to-role/internal/matcher"
)

const gaugeWidth = 20

type TextOptions struct {
	// Color enables ANSI colors for the gauge, headings and skill icons.
	Color bool
}

// RenderText writes the report for a terminal.
func RenderText(w io.Writer, vm ViewModel, opts TextOptions) error {
	var b strings.Builder
	bold := styler(opts.Color, promptui.Styler(promptui.FGBold))

	b.WriteString(bold(vm.Title))
	b.WriteString("\n\n")

	if vm.Empty() {
		b.WriteString(NoResultsMsg)
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, card := range vm.Cards {
		writeCard(&b, card, opts)
		b.WriteString("\n")
	}

	b.WriteString(bold(SalaryTitle))
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tCURRENT SALARY\tAFTER SKILL UPGRADE")
	for _, row := range vm.Salaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Role, row.Current, row.Upgraded)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, card Card, opts TextOptions) {
	bold := styler(opts.Color, promptui.Styler(promptui.FGBold))

	fmt.Fprintf(b, "%s  %s %d%%\n", bold(fmt.Sprintf("%d. %s", card.Rank, card.Role)), gauge(card, opts.Color), card.MatchPercentage)

	b.WriteString("   Skill Effectiveness\n")
	for _, s := range card.Skills {
		fmt.Fprintf(b, "     %s %s (%s)\n", skillIcon(s, opts.Color), s.Skill, s.Impact)
	}

	writeList(b, "Improvements", card.Improvements)
	writeList(b, "Projects", card.Projects)

	if card.CareerTip != "" {
		fmt.Fprintf(b, "   Career Tip: %s\n", card.CareerTip)
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "   %s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "     - %s\n", item)
	}
}

// gauge draws the percentage as a fixed width bar colored by tier.
func gauge(card Card, color bool) string {
	filled := card.MatchPercentage * gaugeWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	return "[" + tierStyler(card.Tier, color)(bar) + "]"
}

func skillIcon(s matcher.SkillAssessment, color bool) string {
	if !color {
		if s.Matched {
			return "[x]"
		}
		return "[ ]"
	}
	if s.Matched {
		return promptui.IconGood
	}
	return promptui.IconBad
}

func tierStyler(t Tier, color bool) func(string) string {
	switch t {
	case TierGood:
		return styler(color, promptui.Styler(promptui.FGGreen))
	case TierWarning:
		return styler(color, promptui.Styler(promptui.FGYellow))
	default:
		return styler(color, promptui.Styler(promptui.FGRed))
	}
}

func styler(color bool, style func(interface{}) string) func(string) string {
	if !color {
		return func(s string) string { return s }
	}
	return func(s string) string { return style(s) }
}
