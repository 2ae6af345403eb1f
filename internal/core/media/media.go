// Package media selects and validates image files for upload.
package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxImageSize is the largest image the API accepts.
const MaxImageSize = 5 << 20

var (
	ErrTooLarge    = errors.New("Image size should be less than 5MB")
	ErrNotAnImage  = errors.New("Please select a valid image file")
	ErrNoMatch     = errors.New("no files matched")
	ErrIsDirectory = errors.New("path is a directory")
)

// Image is a validated image file ready for upload.
type Image struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// Expand resolves each pattern to files. Patterns may use doublestar globs
// such as "photos/**/*.{png,jpg}"; literal paths pass through unchanged.
// Results keep pattern order and contain no duplicates.
func Expand(patterns ...string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !hasMeta(pattern) {
			if !slices.Contains(out, pattern) {
				out = append(out, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}
		for _, m := range matches {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// Validate checks that path is an image no larger than MaxImageSize.
// The content type is sniffed from the file contents, not the extension.
func Validate(path string) (Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Image{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() > MaxImageSize {
		return Image{}, ErrTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Image{}, fmt.Errorf("read %s: %w", path, err)
	}

	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return Image{}, ErrNotAnImage
	}

	return Image{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}

// Select expands pattern and validates the single file it must resolve to.
func Select(pattern string) (Image, error) {
	paths, err := Expand(pattern)
	if err != nil {
		return Image{}, err
	}
	if len(paths) != 1 {
		return Image{}, fmt.Errorf("pattern %q matched %d files, expected exactly one", pattern, len(paths))
	}
	return Validate(paths[0])
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
