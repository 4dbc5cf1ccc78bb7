// Command gallerylist prints the templates of a gallery site as TOML,
// along with the link each one is served at.
package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/ancientlore/gallery/gallery"
	"github.com/facebookgo/flagenv"
	"github.com/pelletier/go-toml/v2"
)

type listing struct {
	Folders []folder `toml:"folder"`
}

type folder struct {
	Name      string  `toml:"name"`
	Slug      string  `toml:"slug"`
	Templates []entry `toml:"template"`
}

type entry struct {
	Name    string `toml:"name"`
	Link    string `toml:"link"`
	Size    int    `toml:"size"`
	Content string `toml:"content,omitempty"`
}

func main() {
	root := flag.String("root", ".", "Root of gallery site.")
	content := flag.Bool("content", false, "Include template source in the output.")

	flag.Parse()
	flagenv.Parse()

	site := os.DirFS(*root)
	cfg, err := gallery.LoadConfig(site)
	if err != nil {
		log.Fatal(err)
	}
	templates, err := fs.Sub(site, gallery.TemplatesDir)
	if err != nil {
		log.Fatal(err)
	}
	c, err := gallery.NewDirStore(templates, cfg.Slugs).List()
	if err != nil {
		log.Fatal(err)
	}

	var l listing
	for _, f := range c {
		out := folder{Name: f.Name, Slug: gallery.ToSlug(f.Name)}
		for _, t := range f.Templates {
			e := entry{Name: t.Name, Link: t.Link(), Size: len(t.Content)}
			if *content {
				e.Content = t.Content
			}
			out.Templates = append(out.Templates, e)
		}
		l.Folders = append(l.Folders, out)
	}

	err = toml.NewEncoder(os.Stdout).Encode(l)
	if err != nil {
		log.Fatal(err)
	}
}
