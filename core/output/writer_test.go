package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteSinglePage(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	paths, err := w.WriteAll("", []Artifact{
		{Name: IndexFile, Data: []byte("<html></html>")},
		{Name: "styles.css", Data: []byte("body {}")},
	})
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(paths) != 2 || paths[0] != filepath.Join(dir, IndexFile) {
		t.Fatalf("paths = %v", paths)
	}
	got, err := os.ReadFile(filepath.Join(dir, "styles.css"))
	if err != nil || string(got) != "body {}" {
		t.Errorf("styles.css = %q, %v", got, err)
	}
}

func TestWritePageSubdir(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "nested", "out"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := w.Write("home-screen", Artifact{Name: JSONFile, Data: []byte("{}")})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := filepath.Join(dir, "nested", "out", "home-screen", JSONFile)
	if p != want {
		t.Errorf("path = %s, want %s", p, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("stat: %v", err)
	}
}

func TestWriteRejectsBadName(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.Write("", Artifact{Name: ".."}); err == nil {
		t.Error("expected error for '..'")
	}
}

func TestFileNameMatchesWrittenFile(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := w.Write("", Artifact{Name: "my site.css"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := filepath.Base(p); got != FileName("my site.css") {
		t.Errorf("written as %q, FileName says %q", got, FileName("my site.css"))
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"styles.css":      "styles.css",
		"../etc/passwd":   ".._etc_passwd",
		"my page.html":    "my_page.html",
		"  design.json  ": "design.json",
		"..":              "",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
