// Package library serves WebAnno TSV files from a local directory.
//
// Files are addressed by their slash-separated path relative to the library
// root. Parsed documents are cached by path and invalidated when the file's
// size or modification time changes, or when Watch sees it change on disk.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgallion1/annoview/internal/metrics"
	"github.com/dgallion1/annoview/internal/parser"
	"github.com/dgallion1/annoview/internal/webanno"
	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Pattern selects the files listed by the library.
const Pattern = "**/*.tsv"

// Entry describes one available file.
type Entry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	HasNotes bool      `json:"has_notes"`
}

type cached struct {
	size    int64
	modTime time.Time
	doc     *webanno.Document
}

// Library is safe for concurrent use.
type Library struct {
	root    string
	fsys    fs.FS
	cache   *lru.Cache[string, cached]
	log     *slog.Logger
	metrics *metrics.Recorder
}

// Open prepares a library rooted at dir, creating the directory if needed.
func Open(dir string, cacheSize int, log *slog.Logger, rec *metrics.Recorder) (*Library, error) {
	if cacheSize <= 0 {
		cacheSize = 64
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve library dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	cache, err := lru.New[string, cached](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Library{
		root:    abs,
		fsys:    os.DirFS(abs),
		cache:   cache,
		log:     log,
		metrics: rec,
	}, nil
}

// Root returns the absolute library directory.
func (l *Library) Root() string {
	return l.root
}

// List returns the available files sorted by name.
func (l *Library) List() ([]Entry, error) {
	names, err := doublestar.Glob(l.fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("glob library: %w", err)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		info, err := fs.Stat(l.fsys, name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		_, notesErr := fs.Stat(l.fsys, notesName(name))
		entries = append(entries, Entry{
			Name:     name,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			HasNotes: notesErr == nil,
		})
	}
	return entries, nil
}

// Load returns the parsed document for name. The returned document is shared
// with the cache and must not be modified.
func (l *Library) Load(name string) (*webanno.Document, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if c, ok := l.cache.Get(name); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		l.metrics.ObserveCache(true)
		return c.doc, nil
	}
	l.metrics.ObserveCache(false)

	p, err := parser.ForFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, err)
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	start := time.Now()
	doc, err := p.Parse(f, path.Base(name))
	l.metrics.ObserveParse("library", time.Since(start), doc, err)
	if err != nil {
		return nil, err
	}

	l.cache.Add(name, cached{size: info.Size(), modTime: info.ModTime(), doc: doc})
	l.log.Debug("library file parsed", "name", name, "sections", len(doc.Sections))
	return doc, nil
}

// Notes returns the Markdown sidecar for name ("<stem>.md"), or nil when
// there is none.
func (l *Library) Notes(name string) ([]byte, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, notesName(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	return data, nil
}

// Evict drops any cached document for name.
func (l *Library) Evict(name string) {
	if name, err := cleanName(name); err == nil {
		l.cache.Remove(name)
	}
}

// Cached reports the number of cached documents.
func (l *Library) Cached() int {
	return l.cache.Len()
}

func notesName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ".md"
}

// cleanName validates a slash-separated name relative to the library root.
func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.Contains(name, `\`) || !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
