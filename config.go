package epubtxt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/simp-lee/epubtxt/internal/textconv"
)

const (
	// DefaultExtension is the file extension of convertible archives.
	DefaultExtension = ".epub"

	// DefaultChapterSubdir is the chapter directory inside OutputDir when
	// ChapterDir is not set.
	DefaultChapterSubdir = "chapters"

	// maxConfigSize caps the configuration file size.
	maxConfigSize = 1 << 20
)

// Config holds the settings of one Pipeline. Each Pipeline keeps its own
// copy, so pipelines with different settings can run in one process.
type Config struct {
	// SourceDir is the directory Process resolves input names against.
	SourceDir string `yaml:"source_dir" toml:"source_dir"`

	// OutputDir receives the aggregate {basename}.txt files.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// ChapterDir receives the per-chapter files.
	// Empty means {OutputDir}/chapters.
	ChapterDir string `yaml:"chapter_dir" toml:"chapter_dir"`

	// Extension is the archive extension, compared case-sensitively.
	Extension string `yaml:"extension" toml:"extension"`

	// Format selects the markup converter: "markdown" or "plain".
	Format string `yaml:"format" toml:"format"`

	// SanitizeTitles replaces path separators and reserved characters in
	// chapter titles before they become file names. Off by default so names
	// match the titles exactly.
	SanitizeTitles bool `yaml:"sanitize_titles" toml:"sanitize_titles"`
}

// DefaultConfig returns the configuration used by the command line tool
// when no flags are given.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ChapterDir == "" {
		c.ChapterDir = filepath.Join(c.OutputDir, DefaultChapterSubdir)
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Format == "" {
		c.Format = textconv.FormatMarkdown
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Extension != "" && (!strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2) {
		return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidConfig, c.Extension)
	}
	if _, err := textconv.New(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a configuration file: TOML when the name ends in
// ".toml", YAML otherwise. Unknown keys are rejected. Fields absent from
// the file stay empty; call WithDefaults to fill them.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("epubtxt: read config %s: %w", path, err)
	}
	if len(data) > maxConfigSize {
		return cfg, fmt.Errorf("%w: %s: %d bytes (max %d)", ErrConfigParse, path, len(data), maxConfigSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	} else {
		err = yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict())
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	return cfg, nil
}
