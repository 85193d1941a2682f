package assets

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLibrary(t *testing.T) {
	lib, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if lib.Len() == 0 {
		t.Fatal("expected embedded images")
	}
	for i, img := range lib.Images() {
		if img.Index != i {
			t.Errorf("image %d has index %d", i, img.Index)
		}
		rc, err := lib.Read(i)
		if err != nil {
			t.Fatalf("Read(%d) failed: %v", i, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil || len(data) < 8 || string(data[1:4]) != "PNG" {
			t.Errorf("image %s is not a PNG", img.Src)
		}
	}
}

func TestLoadManifestOrdersByIndex(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "slides.json", `[{"src":"b.png","index":1},{"src":"a.png","index":0}]`},
		{"yaml", "slides.yaml", "- src: b.png\n  index: 1\n- src: a.png\n  index: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			lib, err := LoadManifest(path)
			if err != nil {
				t.Fatalf("LoadManifest failed: %v", err)
			}
			images := lib.Images()
			if len(images) != 2 || images[0].Src != "a.png" || images[1].Src != "b.png" {
				t.Errorf("unexpected order: %+v", images)
			}
		})
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"empty list", "empty.json", `[]`},
		{"duplicate index", "dup.json", `[{"src":"a.png","index":0},{"src":"b.png","index":0}]`},
		{"missing src", "nosrc.json", `[{"index":0}]`},
		{"bad json", "bad.json", `{`},
		{"unsupported", "slides.txt", `a.png`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadManifest(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"02.jpg", "01.png", "notes.txt", ".hidden.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	lib, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	images := lib.Images()
	if len(images) != 2 || images[0].Src != "01.png" || images[1].Src != "02.jpg" {
		t.Fatalf("unexpected images: %+v", images)
	}

	rc, err := lib.Read(1)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	_ = rc.Close()

	if _, err := lib.Read(2); err == nil {
		t.Error("expected out of range error")
	}
}

func TestScanDirEmpty(t *testing.T) {
	if _, err := ScanDir(t.TempDir()); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestOpenDefault(t *testing.T) {
	lib, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	if lib.Source != "embedded" {
		t.Errorf("Source = %q", lib.Source)
	}
}
