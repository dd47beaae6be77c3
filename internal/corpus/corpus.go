// Package corpus reads the transcript corpus: one JSON file of segments per
// video, named after the video's title and source id.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/seanblong/transcriptsearch/pkg/models"
)

var errNotArray = errors.New("content is not a JSON array of segments")

// DefaultExt is the extension of corpus files.
const DefaultExt = ".json"

// DirLister lists the names of the candidate files in a directory.
type DirLister interface {
	List(dir string) ([]string, error)
}

// FileReader defines the interface for reading files
type FileReader interface {
	ReadFile(filename string) ([]byte, error)
}

// DefaultDirLister implements DirLister using godirwalk. Names come back in
// the order the filesystem returns them, which differs across platforms.
type DefaultDirLister struct{}

func (d *DefaultDirLister) List(dir string) ([]string, error) {
	des, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		switch {
		case de.IsRegular():
			names = append(names, de.Name())
		case de.IsSymlink():
			// Keep links only when they resolve to a regular file.
			fi, err := os.Stat(filepath.Join(dir, de.Name()))
			if err == nil && fi.Mode().IsRegular() {
				names = append(names, de.Name())
			}
		}
	}
	return names, nil
}

// DefaultFileReader implements FileReader using os
type DefaultFileReader struct{}

func (d *DefaultFileReader) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// Corpus is a read-only directory of transcript files.
type Corpus struct {
	Dir string
	Ext string
	// SortFiles orders files by name instead of directory-listing order.
	SortFiles bool
	Lister    DirLister
	Reader    FileReader
}

// File is one corpus file and the metadata parsed from its name.
type File struct {
	Path string
	Meta FileMeta
}

// New creates a Corpus over dir backed by the real filesystem.
func New(dir, ext string, sortFiles bool) *Corpus {
	return NewWithDependencies(dir, ext, sortFiles, &DefaultDirLister{}, &DefaultFileReader{})
}

// NewWithDependencies creates a Corpus with custom dependencies for testing
func NewWithDependencies(dir, ext string, sortFiles bool, lister DirLister, reader FileReader) *Corpus {
	if ext == "" {
		ext = DefaultExt
	}
	return &Corpus{
		Dir:       dir,
		Ext:       ext,
		SortFiles: sortFiles,
		Lister:    lister,
		Reader:    reader,
	}
}

// List returns the corpus files in directory-listing order, or sorted by
// name when SortFiles is set.
func (c *Corpus) List() ([]File, error) {
	names, err := c.Lister.List(c.Dir)
	if err != nil {
		return nil, &FSError{Op: "list", Path: c.Dir, Err: err}
	}
	if c.SortFiles {
		sort.Strings(names)
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, c.Ext) {
			continue
		}
		files = append(files, File{
			Path: filepath.Join(c.Dir, name),
			Meta: ParseFileName(name, c.Ext),
		})
	}
	return files, nil
}

// Segments reads and decodes one corpus file. Read failures are *FSError,
// malformed content is *ParseError.
func (c *Corpus) Segments(f File) ([]models.Segment, error) {
	b, err := c.Reader.ReadFile(f.Path)
	if err != nil {
		return nil, &FSError{Op: "read", Path: f.Path, Err: err}
	}
	var raw []*models.Segment
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, &ParseError{File: f.Meta.Name, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{File: f.Meta.Name, Err: errNotArray}
	}
	segs := make([]models.Segment, len(raw))
	for i, s := range raw {
		if s == nil {
			return nil, &ParseError{File: f.Meta.Name, Err: fmt.Errorf("segment %d is null", i)}
		}
		segs[i] = *s
	}
	return segs, nil
}

// Readable reports whether the corpus directory can be listed.
func (c *Corpus) Readable() error {
	if _, err := c.Lister.List(c.Dir); err != nil {
		return &FSError{Op: "list", Path: c.Dir, Err: err}
	}
	return nil
}
