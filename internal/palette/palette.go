// Package palette resolves annotation type names to display colors.
package palette

import (
	"regexp"
	"strconv"
	"strings"
)

// Category groups annotation types for legends and filtering.
type Category string

const (
	NamedEntity       Category = "named_entity"
	SemanticPredicate Category = "semantic_predicate"
	Relation          Category = "relation"
)

// DefaultColor is returned for unknown or empty types.
const DefaultColor = "#cccccc"

type entry struct {
	Type     string
	Color    string
	Category Category
}

// Ordered for legend output.
var entries = []entry{
	{"LOC_NAME", "#8dd3c7", NamedEntity},
	{"DATE", "#5e4fa2", NamedEntity},
	{"DOC", "#bebada", NamedEntity},
	{"PRF", "#fb8072", NamedEntity},
	{"PER_NAME", "#80b1d3", NamedEntity},
	{"SHIP_TYPE", "#fdb462", NamedEntity},
	{"SHIP", "#b3de69", NamedEntity},
	{"LOC_ADJ", "#fccde5", NamedEntity},
	{"ETH_REL", "#d9d9d9", NamedEntity},
	{"STATUS", "#bc80bd", NamedEntity},
	{"PER_ATTR", "#ccebc5", NamedEntity},
	{"ORG", "#d7191c", NamedEntity},
	{"CMTY_QUANT", "#a6cee3", NamedEntity},

	{"EndingContractualAgreement", "#1f78b4", SemanticPredicate},
	{"Request", "#33a02c", SemanticPredicate},
	{"Giving", "#e31a1c", SemanticPredicate},
	{"SocialStatusChange", "#ff7f00", SemanticPredicate},
	{"Arriving", "#6a3d9a", SemanticPredicate},
	{"SocialInteraction", "#b15928", SemanticPredicate},
	{"Transportation", "#a6761d", SemanticPredicate},
	{"HavingInternalState-", "#e6ab02", SemanticPredicate},
	{"ForceToAct", "#66a61e", SemanticPredicate},
	{"Destroying", "#e7298a", SemanticPredicate},
	{"Leaving", "#7570b3", SemanticPredicate},

	{"isOfType", "#d95f02", Relation},
	{"evokes", "#1b9e77", Relation},
}

var colors = func() map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Type] = e.Color
	}
	return m
}()

var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// BaseType strips a trailing "[n]" disambiguation index, e.g. "DATE[22]" -> "DATE".
func BaseType(t string) string {
	return indexSuffix.ReplaceAllString(t, "")
}

// Color returns the display color for an annotation type.
func Color(t string) string {
	if c, ok := colors[BaseType(t)]; ok {
		return c
	}
	return DefaultColor
}

// Known reports whether t maps to a color other than the default.
func Known(t string) bool {
	_, ok := colors[BaseType(t)]
	return ok
}

// IsDark reports whether a "#rrggbb" color needs light text on top of it.
// Anything not in that form is treated as light.
func IsDark(hex string) bool {
	if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
		return false
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	return luminance < 0.5
}

// TextColor returns the foreground to use on bg.
func TextColor(bg string) string {
	if IsDark(bg) {
		return "white"
	}
	return "black"
}

// LegendItem is one colored type in a legend group.
type LegendItem struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// LegendGroup lists the types of one category.
type LegendGroup struct {
	Category Category     `json:"category"`
	Title    string       `json:"title"`
	Items    []LegendItem `json:"items"`
}

var categoryTitles = map[Category]string{
	NamedEntity:       "Named Entity Types",
	SemanticPredicate: "Semantic Predicate Types",
	Relation:          "Relation Types",
}

// Categories in display order.
var Categories = []Category{NamedEntity, SemanticPredicate, Relation}

// Title returns the display heading for c.
func (c Category) Title() string {
	return categoryTitles[c]
}

// Legend returns all known types grouped by category.
func Legend() []LegendGroup {
	groups := make([]LegendGroup, 0, len(Categories))
	for _, c := range Categories {
		g := LegendGroup{Category: c, Title: c.Title()}
		for _, e := range entries {
			if e.Category == c {
				g.Items = append(g.Items, LegendItem{Type: e.Type, Color: e.Color})
			}
		}
		groups = append(groups, g)
	}
	return groups
}
