package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/dgallion1/annoview/internal/palette"
	"github.com/dgallion1/annoview/internal/webanno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(token, ne, pred, rel string) webanno.Annotation {
	return webanno.Annotation{
		ID: "1-1", Span: "0-1", Token: token,
		NamedEntityInfo: "_", NamedEntityType: ne,
		SemArgInfo: "_", SemArgType: "_",
		SemPredInfo: "_", SemPredType: pred,
		RelationType: rel,
	}
}

func sampleDoc() *webanno.Document {
	return &webanno.Document{
		Title: "sample",
		Sections: []webanno.Section{{
			Text: "Jan gave 3 ships <today>.",
			Annotations: []webanno.Annotation{
				row("Jan", "PER_NAME", "_", "_"),
				row("gave", "_", "Giving[4]", "evokes"),
				row("3", "_", "_", "isOfType"),
				row("ships", "SHIP", "Transportation", "evokes"),
				row("<today>", "_", "_", "_"),
			},
		}},
	}
}

func TestHighlight_Priority(t *testing.T) {
	tokens := Highlight(sampleDoc().Sections[0], DefaultOptions())
	require.Len(t, tokens, 5)

	assert.Equal(t, "PER_NAME", tokens[0].Label)
	assert.Equal(t, palette.NamedEntity, tokens[0].Category)
	assert.Equal(t, "#80b1d3", tokens[0].Background)

	assert.Equal(t, "Giving[4]", tokens[1].Label)
	assert.Equal(t, palette.SemanticPredicate, tokens[1].Category)
	assert.Equal(t, palette.Color("Giving"), tokens[1].Background)
	assert.Equal(t, "white", tokens[1].Foreground)

	assert.Equal(t, palette.Relation, tokens[2].Category)
	assert.Equal(t, "SHIP", tokens[3].Label)

	assert.False(t, tokens[4].Highlighted())
	assert.Equal(t, Transparent, tokens[4].Background)
	assert.Equal(t, "black", tokens[4].Foreground)
}

func TestHighlight_DisabledCategoriesFallThrough(t *testing.T) {
	opts := Options{SemanticPredicates: true, RelationTypes: true}
	tokens := Highlight(sampleDoc().Sections[0], opts)

	assert.False(t, tokens[0].Highlighted(), "named entity hidden")
	assert.Equal(t, "Transportation", tokens[3].Label)

	tokens = Highlight(sampleDoc().Sections[0], Options{RelationTypes: true})
	assert.Equal(t, "evokes", tokens[1].Label)
	assert.Equal(t, "evokes", tokens[3].Label)

	tokens = Highlight(sampleDoc().Sections[0], Options{})
	for _, tok := range tokens {
		assert.False(t, tok.Highlighted())
	}
}

func TestView_IndexesFromOne(t *testing.T) {
	doc := sampleDoc()
	doc.Sections = append(doc.Sections, webanno.Section{Text: "empty"})
	views := View(doc, DefaultOptions())
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].Index)
	assert.Equal(t, 2, views[1].Index)
	assert.Empty(t, views[1].Tokens)
}

func TestHTML_EscapesAndIncludesLegend(t *testing.T) {
	var buf bytes.Buffer
	notes, err := Notes([]byte("# Notes\n\nCurated by **team**."))
	require.NoError(t, err)
	require.NoError(t, HTML(&buf, sampleDoc(), DefaultOptions(), notes))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Text Section 1")
	assert.Contains(t, out, "&lt;today&gt;")
	assert.NotContains(t, out, "<today>")
	assert.Contains(t, out, "Legend")
	assert.Contains(t, out, "Named Entity Types")
	assert.Contains(t, out, "<strong>team</strong>")
	assert.Contains(t, out, "background-color:#80b1d3;color:black")
}

func TestHTML_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, &webanno.Document{Title: "none"}, DefaultOptions(), ""))
	assert.Contains(t, buf.String(), "No annotation data found")
}

func TestNotes_EmptyAndRawHTML(t *testing.T) {
	out, err := Notes([]byte("   \n"))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Notes([]byte("<script>alert(1)</script>\n\ntext"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestTerminal_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, sampleDoc(), DefaultOptions(), 0))
	out := buf.String()
	assert.Contains(t, out, "Text Section 1")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "[PER_NAME]")
	assert.Contains(t, out, "<today>")
}

func TestTerminalLegend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TerminalLegend(&buf))
	assert.Contains(t, buf.String(), "Relation Types")
	assert.Contains(t, buf.String(), "evokes #1b9e77")
}

func TestDOCX_WritesArchive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DOCX(&buf, sampleDoc(), DefaultOptions()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(data)
	}
	require.NotEmpty(t, body, "expected word/document.xml")
	assert.Contains(t, body, "Text Section 1")
	assert.Contains(t, body, "80B1D3")
}

func TestDocxColor(t *testing.T) {
	assert.Equal(t, "5E4FA2", docxColor("#5e4fa2"))
	assert.Equal(t, "FFFFFF", docxColor(hexColor("white")))
}
