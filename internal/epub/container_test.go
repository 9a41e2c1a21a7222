package epub

import (
	"errors"
	"testing"
)

func TestLocateOPF(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    string
		wantErr error
	}{
		{
			name:  "container.xml",
			files: map[string]string{"META-INF/container.xml": testContainerXML, "OEBPS/content.opf": "<package/>"},
			want:  "OEBPS/content.opf",
		},
		{
			name:  "container.xml case-insensitive",
			files: map[string]string{"meta-inf/CONTAINER.xml": testContainerXML},
			want:  "OEBPS/content.opf",
		},
		{
			name:  "container.xml with BOM",
			files: map[string]string{"META-INF/container.xml": "\xEF\xBB\xBF" + testContainerXML},
			want:  "OEBPS/content.opf",
		},
		{
			name:  "no container falls back to .opf entry",
			files: map[string]string{"book/Package.OPF": "<package/>"},
			want:  "book/Package.OPF",
		},
		{
			name:    "no container and no .opf",
			files:   map[string]string{"readme.txt": "x"},
			wantErr: ErrInvalidEPub,
		},
		{
			name: "prefers rootfile by media type",
			files: map[string]string{"META-INF/container.xml": `<container><rootfiles>
  <rootfile full-path="other.xml" media-type="application/xml"/>
  <rootfile full-path="OPS/package.opf" media-type="application/oebps-package+xml"/>
</rootfiles></container>`},
			want: "OPS/package.opf",
		},
		{
			name: "first non-empty rootfile without media type",
			files: map[string]string{"META-INF/container.xml": `<container><rootfiles>
  <rootfile full-path=" "/>
  <rootfile full-path="a.opf"/>
</rootfiles></container>`},
			want: "a.opf",
		},
		{
			name:    "empty rootfiles",
			files:   map[string]string{"META-INF/container.xml": `<container><rootfiles></rootfiles></container>`},
			wantErr: ErrInvalidEPub,
		},
		{
			name:    "only empty full-path",
			files:   map[string]string{"META-INF/container.xml": `<container><rootfiles><rootfile full-path=""/></rootfiles></container>`},
			wantErr: ErrInvalidEPub,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Book{zip: zipReader(t, tt.files)}
			b.buildZipIndex()

			got, err := b.locateOPF()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("locateOPF() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("locateOPF() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("locateOPF() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocateOPF_MalformedContainer(t *testing.T) {
	b := &Book{zip: zipReader(t, map[string]string{"META-INF/container.xml": "<container><rootfiles>"})}
	b.buildZipIndex()
	if _, err := b.locateOPF(); err == nil {
		t.Fatal("locateOPF() on malformed container.xml should fail")
	}
}
