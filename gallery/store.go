package gallery

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"path"
	"strings"
)

// ErrNotFound is returned (wrapped) by Resolve for every failure: a bad
// segment, a missing folder, a missing file or a read error.
var ErrNotFound = errors.New("template not found")

// Template is a single HTML file inside a folder.
type Template struct {
	Folder  string // Folder name on disk
	Name    string // File name on disk, including extension
	Content string // Verbatim file content
}

// Label returns the breadcrumb text "folder / name".
func (t Template) Label() string {
	return t.Folder + " / " + t.Name
}

// Link returns the URL path of the template page.
func (t Template) Link() string {
	return "/" + url.PathEscape(ToSlug(t.Folder)) + "/" + url.PathEscape(ToSlug(t.Name))
}

// Folder groups the templates found directly under one folder.
type Folder struct {
	Name      string
	Templates []Template
}

// Collection is every folder of the templates root, in directory order.
type Collection []Folder

// Count returns the number of templates across all folders.
func (c Collection) Count() int {
	n := 0
	for i := range c {
		n += len(c[i].Templates)
	}
	return n
}

// Store resolves template pages and lists the template collection.
type Store interface {
	// Resolve loads the template addressed by a folder and file slug.
	Resolve(folderSlug, fileSlug string) (Template, error)
	// List reads every template of every folder.
	List() (Collection, error)
}

// DirStore is a Store that reads the file system on every call. The
// file system's root is the templates directory; each sub-directory is a
// folder and each file inside it is a template.
type DirStore struct {
	fs   fs.FS
	mode SlugMode
}

// NewDirStore returns a DirStore over fsys using the given slug mode.
func NewDirStore(fsys fs.FS, mode SlugMode) *DirStore {
	return &DirStore{fs: fsys, mode: mode}
}

// Resolve loads the template addressed by folderSlug and fileSlug. Any
// failure is reported as an error wrapping ErrNotFound.
func (s *DirStore) Resolve(folderSlug, fileSlug string) (Template, error) {
	if !validSegment(folderSlug) || !validSegment(fileSlug) {
		return Template{}, fmt.Errorf("Resolve: invalid path %q/%q: %w", folderSlug, fileSlug, ErrNotFound)
	}
	var (
		folder, name string
		err          error
	)
	if s.mode == SlugLegacy {
		folder, name = FolderName(folderSlug), fileSlug+".html"
	} else {
		folder, name, err = s.lookup(folderSlug, fileSlug)
		if err != nil {
			return Template{}, fmt.Errorf("Resolve: %w", err)
		}
	}
	p := path.Join(folder, name)
	if !fs.ValidPath(p) {
		return Template{}, fmt.Errorf("Resolve: invalid path %q: %w", p, ErrNotFound)
	}
	b, err := fs.ReadFile(s.fs, p)
	if err != nil {
		return Template{}, fmt.Errorf("Resolve: %w: %w", ErrNotFound, err)
	}
	return Template{Folder: folder, Name: name, Content: string(b)}, nil
}

// lookup finds the folder and file whose slugs match. When several files
// share a slug, the first one ending in ".html" wins, otherwise the first one.
func (s *DirStore) lookup(folderSlug, fileSlug string) (string, string, error) {
	folders, err := fs.ReadDir(s.fs, ".")
	if err != nil {
		return "", "", fmt.Errorf("lookup: %w: %w", ErrNotFound, err)
	}
	var folder string
	for _, entry := range folders {
		if ToSlug(entry.Name()) == folderSlug && s.isDir(".", entry) {
			folder = entry.Name()
			break
		}
	}
	if folder == "" {
		return "", "", fmt.Errorf("lookup: no folder for %q: %w", folderSlug, ErrNotFound)
	}
	files, err := fs.ReadDir(s.fs, folder)
	if err != nil {
		return "", "", fmt.Errorf("lookup: %w: %w", ErrNotFound, err)
	}
	var name string
	for _, entry := range files {
		if ToSlug(entry.Name()) != fileSlug || s.isDir(folder, entry) {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".html") {
			return folder, entry.Name(), nil
		}
		if name == "" {
			name = entry.Name()
		}
	}
	if name == "" {
		return "", "", fmt.Errorf("lookup: no file for %q in %q: %w", fileSlug, folder, ErrNotFound)
	}
	return folder, name, nil
}

// List reads every folder under the root and every file directly inside
// each folder, content included. Nothing is filtered, so hidden and
// non-HTML files are listed too. Nested directories and files at the root
// are skipped. A folder or file that cannot be read is logged and left out;
// only a failure to read the root is returned.
func (s *DirStore) List() (Collection, error) {
	entries, err := fs.ReadDir(s.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	c := make(Collection, 0, len(entries))
	for _, entry := range entries {
		if !s.isDir(".", entry) {
			continue
		}
		files, err := fs.ReadDir(s.fs, entry.Name())
		if err != nil {
			log.Printf("List: %s", err)
			continue
		}
		f := Folder{Name: entry.Name()}
		for _, file := range files {
			if s.isDir(entry.Name(), file) {
				continue
			}
			b, err := fs.ReadFile(s.fs, path.Join(entry.Name(), file.Name()))
			if err != nil {
				log.Printf("List: %s", err)
				continue
			}
			f.Templates = append(f.Templates, Template{
				Folder:  entry.Name(),
				Name:    file.Name(),
				Content: string(b),
			})
		}
		c = append(c, f)
	}
	return c, nil
}

// isDir reports whether entry, found in dir, is a directory. Symbolic
// links are followed.
func (s *DirStore) isDir(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	fi, err := fs.Stat(s.fs, path.Join(dir, entry.Name()))
	if err != nil {
		return false
	}
	return fi.IsDir()
}
