package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/annoview/internal/webanno"
	"github.com/fumiama/go-docx"
)

// DOCX writes doc as a Word document, shading highlighted tokens with their
// annotation color.
func DOCX(w io.Writer, doc *webanno.Document, opts Options) error {
	f := docx.New().WithDefaultTheme()

	title := doc.Title
	if title == "" {
		title = "WebAnno TSV Visualization"
	}
	f.AddParagraph().AddText(title).Bold().Size("32")

	views := View(doc, opts)
	if len(views) == 0 {
		f.AddParagraph().AddText("No annotation data found in the selected file").Italic()
	}
	for _, v := range views {
		f.AddParagraph().AddText(fmt.Sprintf("Text Section %d", v.Index)).Bold().Size("26")
		f.AddParagraph().AddText(v.Text).Italic()

		p := f.AddParagraph()
		for i, t := range v.Tokens {
			if i > 0 {
				p.AddText(" ")
			}
			run := p.AddText(t.Text)
			if !t.Highlighted() {
				continue
			}
			run.Shade("clear", "auto", docxColor(t.Background)).Color(docxColor(hexColor(t.Foreground)))
			p.AddText("[" + t.Label + "]").Size("14").Color(docxColor(t.Background))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// docxColor converts "#rrggbb" to the bare upper-case hex Word expects.
func docxColor(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}
