package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/annoview/internal/webanno"
)

// SectionMarker introduces the reference text of every section.
const SectionMarker = "\n\n#Text="

// CommentPrefix marks lines that are never token rows.
const CommentPrefix = "#"

// ErrNoSections is returned when a document contains no section marker.
var ErrNoSections = errors.New("invalid WebAnno TSV format: could not find text sections")

// TSVParser handles WebAnno TSV exports.
type TSVParser struct{}

func (p *TSVParser) Parse(r io.Reader, filename string) (*webanno.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	raw := string(src)

	sections, err := ParseSections(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	format, layers := ParseHeader(raw)
	return &webanno.Document{
		Title:    strings.TrimSuffix(filename, filepath.Ext(filename)),
		Format:   format,
		Layers:   layers,
		Sections: sections,
	}, nil
}

// ParseSections splits raw into sections. Short rows are padded with the
// placeholder, blank and comment lines are skipped, extra columns are dropped.
// The only failure is a document without any section marker. CRLF line
// endings are read as LF, so "\r\n\r\n#Text=" also opens a section.
func ParseSections(raw string) ([]webanno.Section, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	pieces := strings.Split(raw, SectionMarker)
	if len(pieces) <= 1 {
		return nil, ErrNoSections
	}

	// pieces[0] is the preamble.
	sections := make([]webanno.Section, 0, len(pieces)-1)
	for _, piece := range pieces[1:] {
		lines := strings.Split(piece, "\n")
		section := webanno.Section{
			Text:        lines[0],
			Annotations: []webanno.Annotation{},
		}
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, CommentPrefix) {
				continue
			}
			section.Annotations = append(section.Annotations, parseRow(line))
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func parseRow(line string) webanno.Annotation {
	var fields [webanno.FieldCount]string
	parts := strings.Split(line, "\t")
	for i := range fields {
		if i < len(parts) {
			fields[i] = parts[i]
		} else {
			fields[i] = webanno.Placeholder
		}
	}
	return webanno.FromFields(fields)
}

// ParseHeader reads the format line and layer declarations from the preamble.
// It never fails; a document without a preamble yields zero values.
func ParseHeader(raw string) (string, []webanno.Layer) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	preamble, _, _ := strings.Cut(raw, SectionMarker)

	var format string
	var layers []webanno.Layer
	for _, line := range strings.Split(preamble, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "#FORMAT="); ok {
			format = v
			continue
		}
		for _, kind := range []string{"SP", "CH", "RL"} {
			v, ok := strings.CutPrefix(line, "#T_"+kind+"=")
			if !ok {
				continue
			}
			parts := strings.Split(v, "|")
			layer := webanno.Layer{Kind: kind, Name: parts[0]}
			if len(parts) > 1 {
				layer.Features = parts[1:]
			}
			layers = append(layers, layer)
		}
	}
	return format, layers
}
