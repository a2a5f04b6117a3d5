package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	fontSize   = 11
)

// cp1252Fallbacks spells out symbols the core fonts cannot encode.
var cp1252Fallbacks = strings.NewReplacer(
	"₹", "Rs.",
)

// Writer is a paginated document that draw instructions are replayed on.
type Writer interface {
	Apply(in Instruction) error
	Save(path string) error
}

// Render replays the instructions on w in order.
func Render(w Writer, instr []Instruction) error {
	for idx, in := range instr {
		if err := w.Apply(in); err != nil {
			return fmt.Errorf("instruction %d (%v): %w", idx, in, err)
		}
	}
	return nil
}

// PDFWriter draws instructions on an A4 portrait PDF in millimetres.
type PDFWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewPDFWriter() *PDFWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", fontSize)
	pdf.AddPage()

	// core fonts are cp1252 encoded
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	return &PDFWriter{
		pdf: pdf,
		tr: func(s string) string {
			return translate(cp1252Fallbacks.Replace(s))
		},
	}
}

func (w *PDFWriter) Apply(in Instruction) error {
	switch v := in.(type) {
	case Text:
		w.pdf.Text(v.X, v.Y, w.tr(v.Content))
	case SetStyle:
		style := ""
		if v.Style == StyleBold {
			style = "B"
		}
		w.pdf.SetFont(fontFamily, style, fontSize)
	case PageBreak:
		w.pdf.AddPage()
	default:
		return fmt.Errorf("unsupported instruction %T", in)
	}

	return w.pdf.Error()
}

func (w *PDFWriter) PageCount() int {
	return w.pdf.PageCount()
}

// Output writes the document to out and closes it.
func (w *PDFWriter) Output(out io.Writer) error {
	return w.pdf.Output(out)
}

// Save writes the document to path and closes it.
func (w *PDFWriter) Save(path string) error {
	return w.pdf.OutputFileAndClose(path)
}
