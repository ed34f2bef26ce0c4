// Package render turns parsed WebAnno documents into highlighted views.
//
// Which annotation drives a token's color is controlled by Options, passed
// explicitly on every call. Named entities win over semantic predicates,
// which win over relation types; a disabled category is skipped.
package render

import (
	"github.com/dgallion1/annoview/internal/palette"
	"github.com/dgallion1/annoview/internal/webanno"
)

// Transparent is the background of tokens without a visible annotation.
const Transparent = "transparent"

// Options selects which annotation categories are highlighted.
type Options struct {
	NamedEntities      bool `json:"named_entities"`
	SemanticPredicates bool `json:"semantic_predicates"`
	RelationTypes      bool `json:"relation_types"`
}

// DefaultOptions enables every category.
func DefaultOptions() Options {
	return Options{NamedEntities: true, SemanticPredicates: true, RelationTypes: true}
}

// Token is one annotation prepared for display.
type Token struct {
	Text       string           `json:"text"`
	Span       string           `json:"span"`
	Label      string           `json:"label,omitempty"`
	Category   palette.Category `json:"category,omitempty"`
	Background string           `json:"background"`
	Foreground string           `json:"foreground"`
}

// Highlighted reports whether the token carries a visible annotation.
func (t Token) Highlighted() bool {
	return t.Label != ""
}

// Highlight resolves display attributes for every annotation in s.
func Highlight(s webanno.Section, opts Options) []Token {
	tokens := make([]Token, 0, len(s.Annotations))
	for _, a := range s.Annotations {
		tok := Token{
			Text:       a.Token,
			Span:       a.Span,
			Background: Transparent,
			Foreground: "black",
		}

		ne := webanno.Value(a.NamedEntityType)
		pred := webanno.Value(a.SemPredType)
		rel := webanno.Value(a.RelationType)

		switch {
		case ne != "" && opts.NamedEntities:
			tok.Label, tok.Category = ne, palette.NamedEntity
		case pred != "" && opts.SemanticPredicates:
			tok.Label, tok.Category = pred, palette.SemanticPredicate
		case rel != "" && opts.RelationTypes:
			tok.Label, tok.Category = rel, palette.Relation
		}
		if tok.Label != "" {
			tok.Background = palette.Color(tok.Label)
			tok.Foreground = palette.TextColor(tok.Background)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// SectionView is a section with its highlighted tokens.
type SectionView struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// View highlights every section of doc.
func View(doc *webanno.Document, opts Options) []SectionView {
	views := make([]SectionView, 0, len(doc.Sections))
	for i, s := range doc.Sections {
		views = append(views, SectionView{
			Index:  i + 1,
			Text:   s.Text,
			Tokens: Highlight(s, opts),
		})
	}
	return views
}

func hexColor(name string) string {
	switch name {
	case "white":
		return "#ffffff"
	case "black":
		return "#000000"
	}
	return name
}
