package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/annoview/internal/parser"
	"github.com/dgallion1/annoview/internal/render"
	"github.com/dgallion1/annoview/internal/webanno"
	"github.com/spf13/cobra"
)

// =============================================================================
// RENDER
// =============================================================================

type renderFlags struct {
	format string
	output string
	width  int
	noNE   bool
	noPred bool
	noRel  bool
}

func newRenderCmd(logger func() *slog.Logger) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a WebAnno TSV file as text, html, docx or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), logger(), args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "output format: text, html, docx or json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().IntVar(&f.width, "width", 100, "wrap width for text output (0 disables)")
	cmd.Flags().BoolVar(&f.noNE, "no-ne", false, "hide named entity types")
	cmd.Flags().BoolVar(&f.noPred, "no-pred", false, "hide semantic predicate types")
	cmd.Flags().BoolVar(&f.noRel, "no-rel", false, "hide relation types")
	return cmd
}

// createOutput opens the -o destination.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func runRender(stdout io.Writer, log *slog.Logger, path string, f renderFlags) error {
	format := strings.ToLower(strings.TrimSpace(f.format))
	switch format {
	case "text", "html", "docx", "json":
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
	if format == "docx" && f.output == "" {
		return fmt.Errorf("docx output requires --output")
	}

	doc, err := parseFile(log, path)
	if err != nil {
		return err
	}

	opts := render.Options{
		NamedEntities:      !f.noNE,
		SemanticPredicates: !f.noPred,
		RelationTypes:      !f.noRel,
	}

	if f.output == "" {
		return writeFormat(stdout, format, path, doc, opts, f.width)
	}

	out, err := createOutput(f.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeFormat(out, format, path, doc, opts, f.width); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	log.Info("wrote output", "path", f.output, "format", format)
	return nil
}

func writeFormat(w io.Writer, format, path string, doc *webanno.Document, opts render.Options, width int) error {
	switch format {
	case "text":
		return render.Terminal(w, doc, opts, width)
	case "html":
		notesHTML, err := notesFor(path)
		if err != nil {
			return err
		}
		return render.HTML(w, doc, opts, notesHTML)
	case "docx":
		return render.DOCX(w, doc, opts)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func parseFile(log *slog.Logger, path string) (*webanno.Document, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	doc, err := p.Parse(file, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	log.Debug("parsed", "file", path, "sections", len(doc.Sections),
		"annotations", doc.AnnotationCount(), "duration", time.Since(start))
	return doc, nil
}

// notesFor reads the optional "<stem>.md" next to path.
func notesFor(path string) (string, error) {
	data, err := os.ReadFile(strings.TrimSuffix(path, filepath.Ext(path)) + ".md")
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return render.Notes(data)
}

// =============================================================================
// CHECK
// =============================================================================

func newCheckCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Verify that files parse as WebAnno TSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), logger(), args)
		},
	}
}

func runCheck(stdout io.Writer, log *slog.Logger, paths []string) error {
	failed := 0
	for _, path := range paths {
		doc, err := parseFile(log, path)
		if err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s: %d sections, %d annotations\n", path, len(doc.Sections), doc.AnnotationCount())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

// =============================================================================
// LEGEND
// =============================================================================

func newLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the annotation type color legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.TerminalLegend(cmd.OutOrStdout())
		},
	}
}
