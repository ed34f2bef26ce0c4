package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/annoview/internal/palette"
	"github.com/dgallion1/annoview/internal/webanno"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const pageStyle = `body{font-family:sans-serif;margin:1rem}
.section,.legend,.notes{margin-bottom:1rem;padding:.75rem;background:#f3f4f6;border-radius:.25rem}
.text{color:#374151}
.tokens,.items{display:flex;flex-wrap:wrap;gap:.25rem}
.token{display:inline-flex;flex-direction:column;align-items:center}
.tok{padding:.1rem .25rem;border-radius:.25rem}
.label{font-size:.65rem}
.swatch{display:inline-block;width:1rem;height:1rem;margin-right:.25rem;vertical-align:middle}
.empty{color:#6b7280;text-align:center}`

// HTML writes a standalone page for doc. notesHTML, when non-empty, is an
// HTML fragment placed above the legend.
func HTML(w io.Writer, doc *webanno.Document, opts Options, notesHTML string) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html)
	root.AppendChild(page)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), doc.Title))
	head.AppendChild(withText(element(atom.Style), pageStyle))
	page.AppendChild(head)

	body := element(atom.Body)
	page.AppendChild(body)
	body.AppendChild(withText(element(atom.H2), "WebAnno TSV Visualization"))
	if doc.Title != "" {
		body.AppendChild(withText(element(atom.P, attr("class", "file")), doc.Title))
	}

	if notesHTML != "" {
		notes := element(atom.Div, attr("class", "notes"))
		nodes, err := html.ParseFragment(strings.NewReader(notesHTML), element(atom.Div))
		if err != nil {
			return fmt.Errorf("parse notes: %w", err)
		}
		for _, n := range nodes {
			notes.AppendChild(n)
		}
		body.AppendChild(notes)
	}

	body.AppendChild(legendNode())

	views := View(doc, opts)
	if len(views) == 0 {
		body.AppendChild(withText(element(atom.Div, attr("class", "empty")), "No annotation data found in the selected file"))
	}
	for _, v := range views {
		body.AppendChild(sectionNode(v))
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func sectionNode(v SectionView) *html.Node {
	div := element(atom.Div, attr("class", "section"))
	div.AppendChild(withText(element(atom.H3), fmt.Sprintf("Text Section %d", v.Index)))
	div.AppendChild(withText(element(atom.P, attr("class", "text")), v.Text))

	tokens := element(atom.Div, attr("class", "tokens"))
	for _, t := range v.Tokens {
		cell := element(atom.Div, attr("class", "token"), attr("title", t.Span))
		style := fmt.Sprintf("background-color:%s;color:%s", t.Background, t.Foreground)
		cell.AppendChild(withText(element(atom.Span, attr("class", "tok"), attr("style", style)), t.Text))
		if t.Highlighted() {
			label := element(atom.Span,
				attr("class", "label"),
				attr("data-category", string(t.Category)),
				attr("style", "color:"+t.Background),
			)
			cell.AppendChild(withText(label, t.Label))
		}
		tokens.AppendChild(cell)
	}
	div.AppendChild(tokens)
	return div
}

func legendNode() *html.Node {
	div := element(atom.Div, attr("class", "legend"))
	div.AppendChild(withText(element(atom.H3), "Legend"))
	for _, g := range palette.Legend() {
		group := element(atom.Div, attr("data-category", string(g.Category)))
		group.AppendChild(withText(element(atom.H4), g.Title))
		items := element(atom.Div, attr("class", "items"))
		for _, it := range g.Items {
			item := element(atom.Span)
			item.AppendChild(element(atom.Span, attr("class", "swatch"), attr("style", "background-color:"+it.Color)))
			item.AppendChild(&html.Node{Type: html.TextNode, Data: it.Type})
			items.AppendChild(item)
		}
		group.AppendChild(items)
		div.AppendChild(group)
	}
	return div
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
