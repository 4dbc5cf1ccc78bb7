package gallery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func get(t *testing.T, g *Gallery, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestServeTemplate(t *testing.T) {
	g, err := New(testSite())
	if err != nil {
		t.Error(err)
		return
	}
	w := get(t, g, http.MethodGet, "/getting-started/intro")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 but got %d", w.Code)
		return
	}
	body := w.Body.String()
	for _, s := range []string{
		"getting started / intro.html",
		"<pre>&lt;h1&gt;Hi&lt;/h1&gt;</pre>",
		`srcdoc="&lt;h1&gt;Hi&lt;/h1&gt;"`,
		`sandbox=""`,
		`href="/"`,
		`href="/news-letters/march"`,
		`href="/getting-started/pricing-table"`,
	} {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q", s)
		}
	}
	if strings.Contains(body, "<h1>Hi</h1>") {
		t.Error("Template source must not be injected into the page unescaped")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}
}

func TestServeNotFound(t *testing.T) {
	g, err := New(testSite())
	if err != nil {
		t.Error(err)
		return
	}
	for _, target := range []string{
		"/getting-started",
		"/missing-folder/intro",
		"/getting-started/missing",
		"/getting-started/intro/",
		"/getting-started/intro/extra",
		"//intro",
		"/getting-started/%2E%2E",
		"/getting-started/..%2Fnews-letters%2Fmarch",
	} {
		w := get(t, g, http.MethodGet, target)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 but got %d", target, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), "404") {
			t.Errorf("%s: expected the not found page", target)
		}
	}
}

func TestServeEscapedSegments(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/50% off/sale #1.html": {Data: []byte("<b>sale</b>")},
	}
	g, err := New(fsys)
	if err != nil {
		t.Error(err)
		return
	}
	link := Template{Folder: "50% off", Name: "sale #1.html"}.Link()
	if link != "/50%25-off/sale-%231" {
		t.Errorf("Unexpected link %q", link)
	}
	w := get(t, g, http.MethodGet, link)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 but got %d", w.Code)
	}
}

func TestServeHome(t *testing.T) {
	g, err := New(testSite())
	if err != nil {
		t.Error(err)
		return
	}
	w := get(t, g, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 but got %d", w.Code)
		return
	}
	body := w.Body.String()
	for _, s := range []string{"<h5>getting started</h5>", "<h5>news-letters</h5>", "Select a template", "<title>Templates</title>"} {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q", s)
		}
	}
	if n := strings.Count(body, `class="preview"`); n != 5 {
		t.Errorf("Expected 5 previews but got %d", n)
	}
	if !strings.Contains(body, "width: 240px; height: 135px") || !strings.Contains(body, "scale(0.125)") {
		t.Error("Expected 240x135 previews scaled by 0.125")
	}
}

func TestServeHomeIntro(t *testing.T) {
	fsys := testSite()
	fsys["index.md"] = &fstest.MapFile{Data: []byte("+++\ntitle = \"Email Gallery\"\n+++\n## Welcome\n\nPick a template.\n")}
	g, err := New(fsys)
	if err != nil {
		t.Error(err)
		return
	}
	body := get(t, g, http.MethodGet, "/").Body.String()
	for _, s := range []string{"<title>Email Gallery</title>", "<h2>", "Welcome", "Pick a template."} {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q", s)
		}
	}
	if strings.Contains(body, "Select a template") {
		t.Error("Expected the intro to replace the placeholder")
	}
}

func TestServeEmpty(t *testing.T) {
	g, err := New(fstest.MapFS{"templates/.keep": {}})
	if err != nil {
		t.Error(err)
		return
	}
	body := get(t, g, http.MethodGet, "/").Body.String()
	if !strings.Contains(body, "No templates found.") {
		t.Error("Expected the empty message")
	}
}

func TestServeMethod(t *testing.T) {
	g, err := New(testSite())
	if err != nil {
		t.Error(err)
		return
	}
	w := get(t, g, http.MethodPost, "/getting-started/intro")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 but got %d", w.Code)
	}
	w = get(t, g, http.MethodHead, "/getting-started/intro")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for HEAD but got %d", w.Code)
	}
}

type brokenStore struct{}

func (brokenStore) Resolve(folderSlug, fileSlug string) (Template, error) {
	return Template{Folder: folderSlug, Name: fileSlug}, nil
}

func (brokenStore) List() (Collection, error) {
	return nil, errors.New("disk on fire")
}

func TestServeListError(t *testing.T) {
	g, err := New(testSite(), WithStore(brokenStore{}))
	if err != nil {
		t.Error(err)
		return
	}
	for _, target := range []string{"/", "/a/b"} {
		w := get(t, g, http.MethodGet, target)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500 but got %d", target, w.Code)
		}
	}
}

func TestServeLegacySlugs(t *testing.T) {
	fsys := testSite()
	fsys[ConfigFile] = &fstest.MapFile{Data: []byte("slugs = \"legacy\"\ntitle = \"Legacy\"\npreviewwidth = 480\n")}
	cfg, err := LoadConfig(fsys)
	if err != nil {
		t.Error(err)
		return
	}
	g, err := New(fsys, cfg.Options()...)
	if err != nil {
		t.Error(err)
		return
	}
	if w := get(t, g, http.MethodGet, "/getting-started/intro"); w.Code != http.StatusOK {
		t.Errorf("Expected 200 but got %d", w.Code)
	}
	if w := get(t, g, http.MethodGet, "/getting-started/pricing-table"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 but got %d", w.Code)
	}
	body := get(t, g, http.MethodGet, "/").Body.String()
	if !strings.Contains(body, "<title>Legacy</title>") || !strings.Contains(body, "width: 480px; height: 270px") {
		t.Error("Expected settings from gallery.cfg to apply")
	}
}

func TestCustomTemplate(t *testing.T) {
	fsys := testSite()
	fsys[customTemplate] = &fstest.MapFile{Data: []byte(`{{define "page"}}custom {{len .Folders}}{{with .Current}} {{slug .Name}}{{end}}{{end}}`)}
	g, err := New(fsys)
	if err != nil {
		t.Error(err)
		return
	}
	if body := get(t, g, http.MethodGet, "/getting-started/intro").Body.String(); body != "custom 2 intro" {
		t.Errorf("Unexpected body %q", body)
	}
	// the built-in not found page is kept
	if w := get(t, g, http.MethodGet, "/x"); w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "404") {
		t.Error("Expected the built-in not found page")
	}
}

func TestNewPreview(t *testing.T) {
	p := newPreview(240)
	if p.Width != 240 || p.Height != 135 || p.Scale != 0.125 || p.FrameWidth != 1920 || p.FrameHeight != 1080 {
		t.Errorf("Unexpected preview %+v", p)
	}
}

func TestSplitPath(t *testing.T) {
	var tests = []struct {
		in  string
		out []string
		ok  bool
	}{
		{"/", nil, true},
		{"", nil, true},
		{"/a", []string{"a"}, true},
		{"/a/b", []string{"a", "b"}, true},
		{"/a%20b/c%2Fd", []string{"a b", "c/d"}, true},
		{"/a//b", nil, false},
		{"/a/b/", nil, false},
		{"/a/%zz", nil, false},
	}
	for _, test := range tests {
		out, ok := splitPath(test.in)
		if ok != test.ok || strings.Join(out, "|") != strings.Join(test.out, "|") {
			t.Errorf("splitPath(%q): expected %q %v but got %q %v", test.in, test.out, test.ok, out, ok)
		}
	}
}
