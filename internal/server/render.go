// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderHTML converts Markdown text to HTML for the result tabs. Each call
// builds a fresh parser; gomarkdown parsers are single-use.
func renderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return string(markdown.Render(doc, renderer))
}
