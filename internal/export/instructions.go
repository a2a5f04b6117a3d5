package export

import "fmt"

// DefaultFilename is the name of the exported report.
const DefaultFilename = "Skill_to_Role_Report.pdf"

type Style int

const (
	StyleNormal Style = iota
	StyleBold
)

func (s Style) String() string {
	if s == StyleBold {
		return "bold"
	}
	return "normal"
}

// Instruction is a single draw command for a paginated document.
type Instruction interface {
	instruction()
}

// Text places a line of text with its baseline at Y on the current page.
type Text struct {
	X       float64
	Y       float64
	Content string
}

type SetStyle struct {
	Style Style
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Text) instruction() {}
func (SetStyle) instruction() {}
func (PageBreak) instruction() {}

func (t Text) String() string { return fmt.Sprintf("text(%.0f,%.0f) %q", t.X, t.Y, t.Content) }
func (s SetStyle) String() string { return "style " + s.Style.String() }
func (PageBreak) String() string { return "page break" }

// Pages counts the pages the instructions span.
func Pages(instr []Instruction) int {
	pages := 1
	for _, in := range instr {
		if _, ok := in.(PageBreak); ok {
			pages++
		}
	}
	return pages
}
