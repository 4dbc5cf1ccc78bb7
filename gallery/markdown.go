package gallery

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"github.com/russross/blackfriday/v2"
)

// IntroFile is the optional Markdown file shown on the home page.
const IntroFile = "index.md"

// renderIntro renders the home page Markdown and returns its front matter.
func (g *Gallery) renderIntro() (*FrontMatter, template.HTML, error) {
	var front FrontMatter
	b, err := fs.ReadFile(g.site, IntroFile)
	if err != nil {
		return nil, "", fmt.Errorf("renderIntro: %w", err)
	}
	fm, r := extractFrontMatter(b)
	if len(fm) > 0 {
		err = toml.Unmarshal(fm, &front)
		if err != nil {
			return nil, "", fmt.Errorf("renderIntro: %w", err)
		}
	}
	md := template.HTML(blackfriday.Run(r, blackfriday.WithExtensions(blackfriday.CommonExtensions)))
	return &front, md, nil
}
