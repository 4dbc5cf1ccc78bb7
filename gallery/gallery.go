/*
Package gallery serves a browsable gallery of static HTML templates kept in a
directory tree. The site root holds a "templates" folder with one sub-folder
per group of templates:

	templates/
		getting started/
			intro.html
			pricing.html
		newsletters/
			march.html

A request for "/<folder>/<file>" shows the selected template's raw source next
to a sidebar of scaled live previews for every template. A request for "/" shows
the sidebar alone, along with the rendered "index.md" from the site root if one
exists. Every other path is not found.

The file system is read on every request, so the page always reflects what is
on disk. Wrap the site file system with a cache (for example
github.com/ancientlore/cachefs) if that is too slow.

Slugs

Folder and file names become URL segments through ToSlug: whitespace turns into
dashes and a trailing ".html" is dropped, so "getting started/intro.html" is
served at "/getting-started/intro". By default a segment is resolved by looking
for the directory entry whose slug matches, which works for any name the
sidebar links to. The "legacy" slug mode instead turns dashes back into spaces
for the folder and appends ".html" to the file segment as-is.

Configuration

A special file "gallery.cfg" at the root can hold settings in TOML format:

	title = "Email templates"
	slugs = "lookup"
	previewwidth = 240
	expires = "1m"

	[headers]
	X-Frame-Options = "SAMEORIGIN"

Templates

The page is rendered with html/template using a built-in layout. A site may
replace it with "template/page.html", which must define "page" and may define
"notfound". Custom templates can use these helpers:

	slug(name string) string
		The same as ToSlug
	folder(slug string) string
		The same as FolderName
	join(parts ...string) string
		The same as path.Join
	ext(path string) string
		The same as path.Ext
	trimsuffix(string, string) string
		The same as strings.TrimSuffix
	trimprefix(string, string) string
		The same as strings.TrimPrefix

Previews are rendered inside sandboxed iframes, so template scripts never run
in the context of the gallery page.
*/
package gallery

import (
	"fmt"
	"html/template"
	"io/fs"
	"sync"
)

// TemplatesDir is the folder under the site root that holds the templates.
const TemplatesDir = "templates"

const (
	frameWidth   = 1920
	frameHeight  = 1080
	defaultWidth = 240
	defaultTitle = "Templates"
)

// Gallery is an http.Handler that renders the template gallery.
type Gallery struct {
	site     fs.FS
	store    Store
	slugs    SlugMode
	title    string
	width    int
	tpl      *template.Template
	tplMutex sync.RWMutex
}

// An Option configures a Gallery.
type Option func(*Gallery)

// WithStore replaces the default DirStore over the templates folder.
func WithStore(s Store) Option {
	return func(g *Gallery) {
		g.store = s
	}
}

// WithSlugMode sets how the default store resolves URL segments.
func WithSlugMode(m SlugMode) Option {
	return func(g *Gallery) {
		g.slugs = m
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(g *Gallery) {
		g.title = title
	}
}

// WithPreviewWidth sets the width of the sidebar previews in pixels.
func WithPreviewWidth(width int) Option {
	return func(g *Gallery) {
		if width > 0 {
			g.width = width
		}
	}
}

// New returns a Gallery for the given site.
func New(site fs.FS, opts ...Option) (*Gallery, error) {
	g := Gallery{
		site:  site,
		title: defaultTitle,
		width: defaultWidth,
	}
	for _, opt := range opts {
		opt(&g)
	}
	if g.store == nil {
		templates, err := fs.Sub(site, TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("New: %w", err)
		}
		g.store = NewDirStore(templates, g.slugs)
	}
	_, err := g.loadTemplates()
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Store returns the store the gallery reads from.
func (g *Gallery) Store() Store {
	return g.store
}
