package assets

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed images.json images/*.png
var embedded embed.FS

// ErrEmpty is returned when a source yields no slides
var ErrEmpty = errors.New("no images found")

// Image describes one slide of the carousel
type Image struct {
	Src   string `json:"src" yaml:"src"`
	Index int    `json:"index" yaml:"index"`
}

// Library is an ordered list of slides and a way to read them
type Library struct {
	Source string
	images []Image
	open   func(src string) (io.ReadCloser, error)
}

// imageExtensions are the formats render can decode
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Open resolves a slide source: "" for the built-in set, a directory of
// images, or a JSON/YAML manifest file.
func Open(source string) (*Library, error) {
	if source == "" {
		return Default()
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to access image source: %w", err)
	}
	if info.IsDir() {
		return ScanDir(source)
	}
	return LoadManifest(source)
}

// Default returns the embedded slide set.
func Default() (*Library, error) {
	data, err := embedded.ReadFile("images.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded manifest: %w", err)
	}
	images, err := parseManifest(data, ".json")
	if err != nil {
		return nil, err
	}
	return &Library{
		Source: "embedded",
		images: images,
		open: func(src string) (io.ReadCloser, error) {
			return embedded.Open(src)
		},
	}, nil
}

// LoadManifest reads a list of image descriptors from a .json, .yaml or .yml
// file. Relative src paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	images, err := parseManifest(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Library{
		Source: path,
		images: images,
		open:   fileOpener(filepath.Dir(path)),
	}, nil
}

// ScanDir builds a library from the images in dir, ordered by file name.
func ScanDir(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmpty)
	}
	sort.Strings(names)

	images := make([]Image, len(names))
	for i, name := range names {
		images[i] = Image{Src: name, Index: i}
	}
	return &Library{
		Source: dir,
		images: images,
		open:   fileOpener(dir),
	}, nil
}

func fileOpener(base string) func(string) (io.ReadCloser, error) {
	return func(src string) (io.ReadCloser, error) {
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, filepath.FromSlash(src))
		}
		return os.Open(path)
	}
}

func parseManifest(data []byte, ext string) ([]Image, error) {
	var images []Image
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &images); err != nil {
			return nil, fmt.Errorf("invalid YAML manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &images); err != nil {
			return nil, fmt.Errorf("invalid JSON manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest type %q (expected .json, .yaml or .yml)", ext)
	}

	if len(images) == 0 {
		return nil, ErrEmpty
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Index < images[j].Index
	})
	for i, img := range images {
		if img.Src == "" {
			return nil, fmt.Errorf("image at index %d has no src", img.Index)
		}
		if i > 0 && images[i-1].Index == img.Index {
			return nil, fmt.Errorf("duplicate image index %d", img.Index)
		}
	}
	return images, nil
}

// Images returns the slides in display order.
func (l *Library) Images() []Image {
	out := make([]Image, len(l.images))
	copy(out, l.images)
	return out
}

func (l *Library) Len() int {
	return len(l.images)
}

// Read opens the i-th slide in display order.
func (l *Library) Read(i int) (io.ReadCloser, error) {
	if i < 0 || i >= len(l.images) {
		return nil, fmt.Errorf("image %d out of range (have %d)", i, len(l.images))
	}
	rc, err := l.open(l.images[i].Src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %q not found", l.images[i].Src)
		}
		return nil, fmt.Errorf("failed to open image %q: %w", l.images[i].Src, err)
	}
	return rc, nil
}
