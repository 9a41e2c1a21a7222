package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/simp-lee/epubtxt"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantPath string
		wantOut  string
		wantCh   string
		wantErr  bool
	}{
		{name: "no args", args: nil, wantOut: "."},
		{name: "short", args: []string{"-f", "a.epub", "-o", "out", "-c", "ch"}, wantPath: "a.epub", wantOut: "out", wantCh: "ch"},
		{name: "long", args: []string{"--epub-file-path=a.epub", "--output-dir", "out"}, wantPath: "a.epub", wantOut: "out"},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: true},
		{name: "missing value", args: []string{"-f"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, _, err := parseFlags(tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if f.epubPath != tt.wantPath || f.outputDir != tt.wantOut || f.chapterDir != tt.wantCh {
				t.Errorf("parseFlags() = %+v", f)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	fromFile := epubtxt.Config{OutputDir: "file-out", ChapterDir: "file-ch", Format: "plain", SanitizeTitles: true}

	tests := []struct {
		name string
		cfg  epubtxt.Config
		args []string
		want epubtxt.Config
	}{
		{
			name: "defaults without file",
			args: []string{"-f", "a.epub"},
			want: epubtxt.Config{OutputDir: "."},
		},
		{
			name: "file values kept",
			cfg:  fromFile,
			args: []string{"-f", "a.epub"},
			want: fromFile,
		},
		{
			name: "flags override file",
			cfg:  fromFile,
			args: []string{"-f", "a.epub", "-o", "o", "-c", "c", "--format", "markdown", "--sanitize-titles=false"},
			want: epubtxt.Config{OutputDir: "o", ChapterDir: "c", Format: "markdown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, fs, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			if got := mergeFlags(tt.cfg, f, fs); got != tt.want {
				t.Errorf("mergeFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeFlags_ChapterDirDefault(t *testing.T) {
	t.Parallel()
	f, fs, err := parseFlags([]string{"-f", "a.epub", "-o", "out"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	cfg := mergeFlags(epubtxt.Config{}, f, fs).WithDefaults()
	if want := filepath.Join("out", "chapters"); cfg.ChapterDir != want {
		t.Errorf("ChapterDir = %q, want %q", cfg.ChapterDir, want)
	}
}
