package epubtxt

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/simp-lee/epubtxt/internal/epub"
	"github.com/simp-lee/epubtxt/internal/textconv"
)

// Archive is an opened book as the pipeline uses it.
type Archive interface {
	NavSource
	ItemReader
	Title() string
	HasTOC() bool
	Close() error
}

// Result summarises one Process call.
type Result struct {
	// Skipped is set when the input name was filtered out; nothing else is set then.
	Skipped bool

	// Basename is the input name without its extension.
	Basename string

	// Title is the book title used in diagnostics.
	Title string

	// Chapters is the number of chapter files written.
	Chapters int

	// Failed is the number of chapters whose content could not be retrieved.
	Failed int

	// Repaired is the number of written chapters read through the
	// fragment-stripped reference.
	Repaired int
}

// Pipeline converts archives into text files. It is not safe for
// concurrent use; create one Pipeline per goroutine.
type Pipeline struct {
	cfg    Config
	conv   textconv.Converter
	logger *slog.Logger
	open   func(path string) (Archive, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for diagnostics. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithConverter replaces the converter selected by Config.Format.
func WithConverter(c textconv.Converter) Option {
	return func(p *Pipeline) {
		p.conv = c
	}
}

// New returns a Pipeline for cfg. Empty fields take their defaults.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg, open: openEPub}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.conv == nil {
		conv, err := textconv.New(cfg.Format)
		if err != nil {
			return nil, err
		}
		p.conv = conv
	}
	return p, nil
}

func openEPub(path string) (Archive, error) {
	b, err := epub.Open(path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Accepts reports whether name is processed: it must not start with '.'
// and must end in the configured extension.
func (p *Pipeline) Accepts(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return filepath.Ext(name) == p.cfg.Extension
}

// ProcessPath converts the archive at path, reading it from path's
// directory instead of SourceDir.
func (p *Pipeline) ProcessPath(path string) (Result, error) {
	return p.process(filepath.Dir(path), filepath.Base(path))
}

// Process converts the archive name found in SourceDir.
//
// Filtered names return a skipped Result without touching the file system.
// Failing chapter lookups are logged and the chapter is left out; any other
// failure is returned. The archive is closed before Process returns.
func (p *Pipeline) Process(name string) (Result, error) {
	return p.process(p.cfg.SourceDir, name)
}

func (p *Pipeline) process(dir, name string) (Result, error) {
	if !p.Accepts(name) {
		p.logger.Debug("skipping file", "file", name)
		return Result{Skipped: true}, nil
	}

	p.ensureDir(p.cfg.OutputDir)
	p.ensureDir(p.cfg.ChapterDir)

	res := Result{Basename: strings.TrimSuffix(name, p.cfg.Extension)}

	p.logger.Info("opening file", "file", name)
	book, err := p.open(filepath.Join(dir, name))
	if err != nil {
		return res, fmt.Errorf("epubtxt: %s: %w", name, err)
	}
	defer func() {
		if err := book.Close(); err != nil {
			p.logger.Warn("failed to close archive", "file", name, "error", err)
		}
	}()

	for _, w := range warningsOf(book) {
		p.logger.Warn("archive warning", "file", name, "warning", w)
	}

	res.Title = book.Title()
	if res.Title == "" {
		res.Title = res.Basename
	}
	p.logger.Info("starting on book", "title", res.Title)

	if !book.HasTOC() {
		return res, fmt.Errorf("epubtxt: %s: %w", name, epub.ErrNoTOC)
	}
	entries, err := ResolveChapters(book)
	if err != nil {
		return res, fmt.Errorf("epubtxt: %s: %w", name, err)
	}

	retriever := NewRetriever(book, res.Title, p.logger)
	contents := make([]ChapterContent, 0, len(entries))
	for _, e := range entries {
		r := retriever.Retrieve(e)
		if !r.OK() {
			res.Failed++
			continue
		}
		if r.Repaired {
			res.Repaired++
		}
		text, err := p.conv.Convert(r.Content)
		if err != nil {
			return res, fmt.Errorf("epubtxt: %s: chapter %s %q: %w", name, e.Order, e.Title, err)
		}
		contents = append(contents, ChapterContent{Entry: e, Text: text})
	}

	w := NewWriter(p.cfg.OutputDir, p.cfg.ChapterDir, p.cfg.SanitizeTitles)
	if err := w.Write(res.Basename, contents); err != nil {
		return res, fmt.Errorf("epubtxt: %s: %w", name, err)
	}
	res.Chapters = len(contents)
	return res, nil
}

// warningsOf returns the open-time diagnostics of archives that keep them.
func warningsOf(a Archive) []string {
	if w, ok := a.(interface{ Warnings() []string }); ok {
		return w.Warnings()
	}
	return nil
}

// ensureDir creates dir. Failures are logged only; a later write into the
// directory reports the real error.
func (p *Pipeline) ensureDir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.logger.Warn("failed to mkdirs", "dir", dir, "error", err)
	}
}
