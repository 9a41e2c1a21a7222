// Command epubtxt converts an ePub book into an aggregate text file and one
// text file per chapter.
//
//	epubtxt -f books/alice.epub -o out
//
// writes out/alice.txt and out/chapters/alice--00001--{title}.txt and so on.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/simp-lee/epubtxt"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1 // missing input or failed conversion
	ExitUsage   = 2 // bad flags or config
)

// Environment holds the output streams so tests can capture them.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the process streams.
func DefaultEnv() *Environment {
	return &Environment{Stdout: os.Stdout, Stderr: os.Stderr}
}

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

func run(args []string, env *Environment) int {
	f, fs, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if f.version {
		fmt.Fprintf(env.Stdout, "epubtxt %s\n", Version)
		return ExitSuccess
	}
	if f.epubPath == "" {
		fmt.Fprintln(env.Stderr, "Must provide an epub file!")
		return ExitFailure
	}

	var cfg epubtxt.Config
	if f.config != "" {
		if cfg, err = epubtxt.LoadConfig(f.config); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}
	}
	cfg = mergeFlags(cfg, f, fs)

	level := slog.LevelInfo
	if f.quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(env.Stdout, &slog.HandlerOptions{Level: level}))

	p, err := epubtxt.New(cfg, epubtxt.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	res, err := p.ProcessPath(f.epubPath)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitFailure
	}
	if res.Skipped {
		logger.Warn("input skipped", "file", f.epubPath, "extension", p.Config().Extension)
	} else {
		logger.Info("book written", "title", res.Title, "chapters", res.Chapters, "repaired", res.Repaired, "failed", res.Failed)
	}

	if !f.quiet {
		fmt.Fprintln(env.Stdout, "Done!")
	}
	return ExitSuccess
}
