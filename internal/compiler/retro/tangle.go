package retro

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tangle returns the code of a literate Retro document: the contents of
// its fenced code blocks in document order. Headings and prose are dropped.
func Tangle(doc []byte) (string, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(doc))

	var code bytes.Buffer
	err := gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		block, ok := n.(*gast.FencedCodeBlock)
		if !ok {
			return gast.WalkContinue, nil
		}
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(doc))
		}
		return gast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", err
	}
	return code.String(), nil
}

// Sections returns the heading text of every section of a literate
// document, in order.
func Sections(doc []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(doc))

	var titles []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gast.Heading)
		if !ok {
			continue
		}
		var title bytes.Buffer
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*gast.Text); ok {
				title.Write(t.Segment.Value(doc))
			}
		}
		titles = append(titles, title.String())
	}
	return titles
}
