// Package pk3 provides read access to .pk3 resource packs (zip archives).
package pk3

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/Faultbox/animset/pkg/encoding"
)

// ErrFileNotFound is returned when a path is not in the archive.
var ErrFileNotFound = errors.New("file not found in pack")

// maxEntrySize bounds a single uncompressed entry.
const maxEntrySize = 64 << 20

// Archive represents an opened pack.
type Archive struct {
	path     string
	reader   *zip.ReadCloser
	fileList map[string]*zip.File
}

// Open opens a pack for reading.
func Open(path string) (*Archive, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening pack: %w", err)
	}

	archive := &Archive{
		path:     path,
		reader:   reader,
		fileList: make(map[string]*zip.File, len(reader.File)),
	}

	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		archive.fileList[encoding.NormalizePath(f.Name)] = f
	}

	return archive, nil
}

// Path returns the file the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.reader != nil {
		return a.reader.Close()
	}
	return nil
}

// List returns all file paths in the archive, normalized.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for path := range a.fileList {
		result = append(result, path)
	}
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.fileList[encoding.NormalizePath(path)]
	return ok
}

// Read reads a file from the archive.
func (a *Archive) Read(path string) ([]byte, error) {
	f, ok := a.fileList[encoding.NormalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if f.UncompressedSize64 > maxEntrySize {
		return nil, fmt.Errorf("%s: entry too large (%d bytes)", path, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
