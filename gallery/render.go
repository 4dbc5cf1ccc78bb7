package gallery

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ServeHTTP renders the home page for "/" and a template page for
// "/<folder>/<file>". Every other path is not found.
func (g *Gallery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	segments, ok := splitPath(r.URL.EscapedPath())
	if !ok {
		g.notFound(w, r)
		return
	}
	d := data{
		Title:   g.title,
		Preview: newPreview(g.width),
	}
	switch len(segments) {
	case 0:
		front, intro, err := g.renderIntro()
		if err == nil {
			d.Intro = intro
			if front.Title != "" {
				d.Title = front.Title
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("ServeHTTP: %s", err)
		}
	case 2:
		t, err := g.store.Resolve(segments[0], segments[1])
		if err != nil {
			g.notFound(w, r)
			return
		}
		d.Current = &t
	default:
		g.notFound(w, r)
		return
	}
	var err error
	d.Folders, err = g.store.List()
	if err != nil {
		log.Printf("ServeHTTP: %s", err)
		serverError(w, r)
		return
	}
	var out bytes.Buffer
	err = g.getTemplates().ExecuteTemplate(&out, "page", d)
	if err != nil {
		log.Printf("ServeHTTP: %s", err)
		serverError(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	_, err = w.Write(out.Bytes())
	if err != nil {
		log.Printf("ServeHTTP: %s", err)
	}
}

// splitPath splits an escaped URL path into unescaped segments. It returns
// false if a segment is empty or cannot be unescaped. The root path has no
// segments.
func splitPath(escaped string) ([]string, bool) {
	escaped = strings.TrimPrefix(escaped, "/")
	if escaped == "" {
		return nil, true
	}
	parts := strings.Split(escaped, "/")
	for i, part := range parts {
		s, err := url.PathUnescape(part)
		if err != nil || s == "" {
			return nil, false
		}
		parts[i] = s
	}
	return parts, true
}

// notFound renders the not found page.
func (g *Gallery) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusNotFound)
	err := g.getTemplates().ExecuteTemplate(w, "notfound", data{Title: g.title})
	if err != nil {
		log.Printf("notFound: %s", err)
	}
}

// serverError writes a plain 500 response.
func serverError(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
