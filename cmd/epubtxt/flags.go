package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/simp-lee/epubtxt"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	epubPath       string
	outputDir      string
	chapterDir     string
	config         string
	format         string
	sanitizeTitles bool
	quiet          bool
	version        bool
}

// parseFlags parses args (without the program name). The returned FlagSet
// reports which flags were given explicitly.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("epubtxt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.epubPath, "epub-file-path", "f", "", "path of the epub file to convert")
	fs.StringVarP(&f.outputDir, "output-dir", "o", ".", "directory for the aggregate text file")
	fs.StringVarP(&f.chapterDir, "output-chapter-dir", "c", "", "directory for per-chapter files (default {output-dir}/"+epubtxt.DefaultChapterSubdir+")")
	fs.StringVar(&f.config, "config", "", "YAML config file; flags override its values")
	fs.StringVar(&f.format, "format", "", "chapter text format: markdown, plain (default markdown)")
	fs.BoolVar(&f.sanitizeTitles, "sanitize-titles", false, "replace reserved characters in chapter file names")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log warnings and errors")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return f, fs, nil
}

// mergeFlags overrides cfg with every flag set on the command line. The
// output directory flag also applies when cfg leaves it empty, so its
// default is kept.
func mergeFlags(cfg epubtxt.Config, f *cliFlags, fs *flag.FlagSet) epubtxt.Config {
	if fs.Changed("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = f.outputDir
	}
	if fs.Changed("output-chapter-dir") {
		cfg.ChapterDir = f.chapterDir
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("sanitize-titles") {
		cfg.SanitizeTitles = f.sanitizeTitles
	}
	return cfg
}
