package gallery

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

//go:embed page.html
var defaultTemplate string

// customTemplate is the site file that replaces the built-in layout.
const customTemplate = "template/page.html"

// preview describes the geometry of a sidebar preview.
type preview struct {
	Width       int     // Width of the preview box
	Height      int     // Height of the preview box
	Scale       float64 // Scale applied to the full-size frame
	FrameWidth  int     // Width the template is laid out at
	FrameHeight int     // Height the template is laid out at
}

// newPreview returns the geometry for a preview box of the given width.
func newPreview(width int) preview {
	return preview{
		Width:       width,
		Height:      width * frameHeight / frameWidth,
		Scale:       float64(width) / frameWidth,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
	}
}

// data is what is passed to the page template.
type data struct {
	Title   string        // Page title
	Intro   template.HTML // Rendered index.md, home page only
	Folders Collection    // Sidebar contents
	Current *Template     // Selected template, nil on the home page
	Preview preview       // Sidebar preview geometry
}

// getTemplates returns the page templates.
func (g *Gallery) getTemplates() *template.Template {
	g.tplMutex.RLock()
	defer g.tplMutex.RUnlock()
	return g.tpl
}

// loadTemplates parses the built-in layout and, if present, the site's
// template/page.html on top of it. It returns true if a custom layout was found.
func (g *Gallery) loadTemplates() (bool, error) {
	funcMap := template.FuncMap{
		"slug":       ToSlug,
		"folder":     FolderName,
		"join":       path.Join,
		"ext":        path.Ext,
		"trimsuffix": strings.TrimSuffix,
		"trimprefix": strings.TrimPrefix,
	}
	tpl, err := template.New("gallery").Funcs(funcMap).Parse(defaultTemplate)
	if err != nil {
		return false, fmt.Errorf("loadTemplates: %w", err)
	}
	custom := false
	_, err = fs.Stat(g.site, customTemplate)
	if err == nil {
		tpl, err = tpl.ParseFS(g.site, customTemplate)
		if err != nil {
			return false, fmt.Errorf("loadTemplates: %w", err)
		}
		custom = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("loadTemplates: %w", err)
	}
	g.tplMutex.Lock()
	defer g.tplMutex.Unlock()
	g.tpl = tpl
	return custom, nil
}
