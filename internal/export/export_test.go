package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skill-to-role/internal/catalog"
	"github.com/spigell/skill-to-role/internal/matcher"
	"github.com/spigell/skill-to-role/internal/report"
)

func fiveRoles() []catalog.RoleRecord {
	mk := func(name string, required, optional []string) catalog.RoleRecord {
		return catalog.RoleRecord{
			Role:                   name,
			RequiredSkills:         required,
			OptionalSkills:         optional,
			ImprovementSuggestions: []string{"Improve " + name},
			ProjectIdeas:           []string{"Project for " + name},
			CareerTip:              "Tip for " + name,
			SalaryInsights: catalog.SalaryInsights{
				CurrentRangeIndia: "₹4–6 LPA¹",
				HigherRangeIndia:  "₹10—12 LPA",
			},
		}
	}

	return []catalog.RoleRecord{
		mk("Data Analyst", []string{"Python", "SQL"}, []string{"Excel"}),
		mk("Backend Developer", []string{"Go", "SQL"}, []string{"Docker"}),
		mk("ML Engineer", []string{"Python", "PyTorch"}, []string{"SQL", "Docker"}),
		mk("Frontend Developer", []string{"JavaScript", "CSS"}, []string{"React"}),
		mk("Spreadsheet Wizard", nil, []string{"Excel"}),
	}
}

func heavyRoles(n, skills int) []catalog.RoleRecord {
	roles := make([]catalog.RoleRecord, 0, n)
	for i := 0; i < n; i++ {
		required := make([]string, 0, skills)
		for j := 0; j < skills; j++ {
			required = append(required, fmt.Sprintf("skill-%d-%d", i, j))
		}
		roles = append(roles, catalog.RoleRecord{Role: fmt.Sprintf("Role %d", i), RequiredSkills: required})
	}
	return roles
}

func texts(instr []Instruction) []Text {
	var out []Text
	for _, in := range instr {
		if t, ok := in.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func headings(instr []Instruction) []string {
	var out []string
	for _, t := range texts(instr) {
		if t.X == DefaultLayout.Left && len(t.Content) > 2 && t.Content[0] >= '1' && t.Content[0] <= '9' && t.Content[1] == '.' {
			out = append(out, t.Content)
		}
	}
	return out
}

// assertPagination checks that no text is drawn below the printable area and that
// page breaks only happen right before a role heading or the summary.
func assertPagination(t *testing.T, instr []Instruction) {
	t.Helper()

	limit := DefaultLayout.PageHeight - DefaultLayout.BottomMargin
	for idx, in := range instr {
		switch v := in.(type) {
		case Text:
			assert.LessOrEqual(t, v.Y, limit, "text %q drawn past the page end", v.Content)
		case PageBreak:
			next := nextText(instr[idx+1:])
			require.NotNil(t, next, "page break at the end of the document")
			assert.Equal(t, DefaultLayout.TopMargin, next.Y)
			isHeading := strings.Contains(next.Content, ". ")
			assert.True(t, isHeading || next.Content == summaryTitle, "page break before %q", next.Content)
		}
	}
}

func nextText(instr []Instruction) *Text {
	for _, in := range instr {
		if t, ok := in.(Text); ok {
			return &t
		}
	}
	return nil
}

func TestFormatTopThreeInRankOrder(t *testing.T) {
	scored := matcher.Rank("python, sql, docker, excel", fiveRoles(), matcher.DefaultLimit)
	require.Len(t, scored, 3)

	instr := FormatRoles(scored)

	assert.Equal(t, []string{
		"1. Data Analyst",
		"2. Spreadsheet Wizard",
		"3. ML Engineer",
	}, headings(instr))
	assertPagination(t, instr)

	all := texts(instr)
	assert.Equal(t, report.Title, all[0].Content)
	assert.Equal(t, DefaultLayout.TopMargin, all[0].Y)
	assert.Equal(t, "Match Percentage: 100%", all[2].Content)
}

func TestFormatSingleRoleLayout(t *testing.T) {
	roles := []catalog.RoleRecord{{
		Role:           "Go Developer",
		RequiredSkills: []string{"Go"},
		CareerTip:      "Ship it",
		SalaryInsights: catalog.SalaryInsights{CurrentRangeIndia: "₹5 LPA", HigherRangeIndia: "₹9 LPA"},
	}}

	instr := FormatRoles(matcher.Rank("go", roles, 3))

	assert.Equal(t, SetStyle{Style: StyleNormal}, instr[0])
	assert.Equal(t, SetStyle{Style: StyleBold}, instr[1])

	expected := []Text{
		{X: 10, Y: 15, Content: report.Title},
		{X: 10, Y: 27, Content: "1. Go Developer"},
		{X: 10, Y: 34, Content: "Match Percentage: 100%"},
		{X: 10, Y: 41, Content: "Salary Details:"},
		{X: 12, Y: 48, Content: "Current Salary (Based on Current Skills):"},
		{X: 16, Y: 55, Content: "₹5 LPA"},
		{X: 12, Y: 62, Content: "Potential Salary (After Skill Upgrade):"},
		{X: 16, Y: 69, Content: "₹9 LPA"},
		{X: 10, Y: 76, Content: "Skill Effectiveness:"},
		{X: 12, Y: 83, Content: "- Go (High impact) - matched"},
		{X: 10, Y: 89, Content: "Improvements:"},
		{X: 10, Y: 96, Content: "Projects:"},
		{X: 10, Y: 103, Content: "Career Tip:"},
		{X: 12, Y: 110, Content: "Ship it"},
		{X: 10, Y: 127, Content: summaryTitle},
		{X: 10, Y: 136, Content: "Go Developer"},
		{X: 14, Y: 143, Content: "Current Salary: ₹5 LPA"},
		{X: 14, Y: 150, Content: "After Skill Upgrade: ₹9 LPA"},
	}
	assert.Equal(t, expected, texts(instr))
	assert.Equal(t, 1, Pages(instr))
}

func TestFormatStylesHeadingsBold(t *testing.T) {
	instr := FormatRoles(matcher.Rank("go", fiveRoles(), 3))

	var current Style
	for _, in := range instr {
		switch v := in.(type) {
		case SetStyle:
			current = v.Style
		case Text:
			switch {
			case strings.HasSuffix(v.Content, ":") && v.X == DefaultLayout.Left:
				assert.Equal(t, StyleBold, current, "label %q", v.Content)
			case strings.HasPrefix(v.Content, "- "):
				assert.Equal(t, StyleNormal, current, "item %q", v.Content)
			}
		}
	}
}

func TestFormatNormalizesSalaries(t *testing.T) {
	instr := FormatRoles(matcher.Rank("go", fiveRoles(), 1))

	var found bool
	for _, t2 := range texts(instr) {
		if t2.Content == "Current Salary: ₹4-6 LPA" {
			found = true
		}
		assert.NotContains(t, t2.Content, "¹")
		assert.NotContains(t, t2.Content, "—")
	}
	assert.True(t, found)
}

func TestFormatPaginatesBetweenBlocks(t *testing.T) {
	instr := FormatRoles(matcher.Rank("", heavyRoles(3, 20), 3))

	assert.Equal(t, []string{"1. Role 0", "2. Role 1", "3. Role 2"}, headings(instr))
	assert.Equal(t, 4, Pages(instr))
	assertPagination(t, instr)
}

func TestFormatBreaksPastRoleThreshold(t *testing.T) {
	layout := DefaultLayout
	layout.BottomMargin = -1000 // only the threshold triggers breaks

	instr := layout.Format(report.Build(matcher.Rank("", heavyRoles(2, 30), 2)))

	// first block ends at 27+274 which is past 260
	require.Equal(t, 2, Pages(instr)-1)
	for idx, in := range instr {
		if _, ok := in.(PageBreak); ok {
			assert.NotNil(t, nextText(instr[idx+1:]))
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	instr := FormatRoles(nil)

	all := texts(instr)
	require.Len(t, all, 2)
	assert.Equal(t, report.Title, all[0].Content)
	assert.Equal(t, summaryTitle, all[1].Content)
	assert.Equal(t, 1, Pages(instr))
}

type recorder struct {
	applied []Instruction
	failAt  int
}

func (r *recorder) Apply(in Instruction) error {
	if r.failAt > 0 && len(r.applied)+1 == r.failAt {
		return fmt.Errorf("boom")
	}
	r.applied = append(r.applied, in)
	return nil
}

func (r *recorder) Save(string) error { return nil }

func TestRenderReplaysInOrder(t *testing.T) {
	instr := FormatRoles(matcher.Rank("python", fiveRoles(), 3))

	rec := &recorder{}
	require.NoError(t, Render(rec, instr))
	assert.Equal(t, instr, rec.applied)

	failing := &recorder{failAt: 3}
	err := Render(failing, instr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction 2")
	assert.Len(t, failing.applied, 2)
}

type unknownInstruction struct{}

func (unknownInstruction) instruction() {}

func TestPDFWriter(t *testing.T) {
	instr := FormatRoles(matcher.Rank("", heavyRoles(3, 20), 3))

	w := NewPDFWriter()
	require.NoError(t, Render(w, instr))
	assert.Equal(t, Pages(instr), w.PageCount())

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, w.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFWriterOutput(t *testing.T) {
	w := NewPDFWriter()
	require.NoError(t, Render(w, FormatRoles(matcher.Rank("go", fiveRoles(), 3))))

	var buf bytes.Buffer
	require.NoError(t, w.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFWriterKeepsRupeeSalaries(t *testing.T) {
	w := NewPDFWriter()
	w.pdf.SetCompression(false)
	require.NoError(t, Render(w, []Instruction{Text{X: 10, Y: 20, Content: "₹4-7 LPA"}}))

	var buf bytes.Buffer
	require.NoError(t, w.Output(&buf))
	assert.Contains(t, buf.String(), "(Rs.4-7 LPA)")
	assert.NotContains(t, buf.String(), "(.4-7 LPA)")
}

func TestFormatOversizedFirstRoleStaysOnTitlePage(t *testing.T) {
	instr := FormatRoles(matcher.Rank("", heavyRoles(1, 40), 1))

	all := texts(instr)
	require.GreaterOrEqual(t, len(all), 2)
	assert.Equal(t, report.Title, all[0].Content)
	assert.Equal(t, Text{X: DefaultLayout.Left, Y: 27, Content: "1. Role 0"}, all[1])

	var breaks []int
	for idx, in := range instr {
		if _, ok := in.(PageBreak); ok {
			breaks = append(breaks, idx)
		}
	}
	require.Len(t, breaks, 1)
	assert.Equal(t, summaryTitle, nextText(instr[breaks[0]+1:]).Content)
	assert.Equal(t, 2, Pages(instr))
}

func TestSkillLineStates(t *testing.T) {
	assert.Equal(t, "- Go (High impact) - matched", skillLine(matcher.SkillAssessment{Skill: "Go", Impact: matcher.ImpactHigh, Matched: true}))
	assert.Equal(t, "- Docker (Medium impact) - unmatched", skillLine(matcher.SkillAssessment{Skill: "Docker", Impact: matcher.ImpactMedium}))
}

func TestPDFWriterRejectsUnknownInstruction(t *testing.T) {
	w := NewPDFWriter()
	assert.Error(t, w.Apply(unknownInstruction{}))
}
