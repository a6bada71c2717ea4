package rolodex

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestEmbeddedTemplates(t *testing.T) {
	// Verify that the embedded templates FS holds every output template.
	for _, name := range []string{"card.tmpl", "vcard.tmpl", "help.tmpl"} {
		data, err := fs.ReadFile(Templates, name)
		if err != nil {
			t.Fatalf("reading embedded %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("embedded %s is empty", name)
		}
	}
}

func TestOverlayFS_NoLocalDir(t *testing.T) {
	// Given: an overlay without a local directory
	embedded := fstest.MapFS{
		"card.tmpl": &fstest.MapFile{Data: []byte("embedded card")},
	}

	// When: opening a file
	data, err := fs.ReadFile(OverlayFS("", embedded), "card.tmpl")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: the embedded file is used
	if string(data) != "embedded card" {
		t.Errorf("got %q, want %q", string(data), "embedded card")
	}
}

func TestOverlayFS_EmbeddedOnly(t *testing.T) {
	// Given: an embedded FS with a file and a local dir without it
	embedded := fstest.MapFS{
		"card.tmpl": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir() // empty

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "card.tmpl")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: embedded content is returned
	if string(data) != "from embedded" {
		t.Errorf("got %q, want %q", string(data), "from embedded")
	}
}

func TestOverlayFS_LocalOverride(t *testing.T) {
	// Given: both local and embedded have the same file
	embedded := fstest.MapFS{
		"card.tmpl": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(localDir, "card.tmpl"), []byte("from local"), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "card.tmpl")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: local file takes precedence
	if string(data) != "from local" {
		t.Errorf("got %q, want %q", string(data), "from local")
	}
}

func TestOverlayFS_Mixed(t *testing.T) {
	// Given: local has one file, embedded has another
	embedded := fstest.MapFS{
		"card.tmpl":  &fstest.MapFile{Data: []byte("embedded-card")},
		"vcard.tmpl": &fstest.MapFile{Data: []byte("embedded-vcard")},
	}
	localDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(localDir, "card.tmpl"), []byte("local-card"), 0o644); err != nil {
		t.Fatal(err)
	}

	ofs := OverlayFS(localDir, embedded)

	// When/Then: card.tmpl comes from local, vcard.tmpl comes from embedded
	dataCard, err := fs.ReadFile(ofs, "card.tmpl")
	if err != nil {
		t.Fatalf("ReadFile(card.tmpl) error = %v", err)
	}
	if string(dataCard) != "local-card" {
		t.Errorf("card.tmpl = %q, want %q", string(dataCard), "local-card")
	}

	dataVCard, err := fs.ReadFile(ofs, "vcard.tmpl")
	if err != nil {
		t.Fatalf("ReadFile(vcard.tmpl) error = %v", err)
	}
	if string(dataVCard) != "embedded-vcard" {
		t.Errorf("vcard.tmpl = %q, want %q", string(dataVCard), "embedded-vcard")
	}
}

func TestOverlayFS_NotFound(t *testing.T) {
	// Given: neither local nor embedded has the file
	embedded := fstest.MapFS{}
	localDir := t.TempDir()

	ofs := OverlayFS(localDir, embedded)

	// When/Then: Open returns an error
	_, err := fs.ReadFile(ofs, "missing.tmpl")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOverlayFS_RejectsInvalidPath(t *testing.T) {
	// Given: an overlay FS
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	// When/Then: invalid paths are rejected per fs.ValidPath contract
	for _, name := range []string{"../escape", "/absolute", "bad\\slash"} {
		_, err := ofs.Open(name)
		if err == nil {
			t.Errorf("Open(%q) should return error", name)
		}
	}
}
