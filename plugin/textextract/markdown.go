// Package textextract turns file bytes into plain text for indexing.
package textextract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Markdown strips Markdown formatting and returns the plain text content.
// Headings, emphasis, links and lists collapse to their visible text; code
// blocks keep their literal lines.
func Markdown(source []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate block-level nodes so words don't run together.
			if _, isBlock := n.(*ast.Paragraph); isBlock {
				sb.WriteString("\n")
			} else if _, isHeading := n.(*ast.Heading); isHeading {
				sb.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteString("\n")
			}
		case *ast.FencedCodeBlock:
			writeCodeLines(&sb, node.Lines(), source)
		case *ast.CodeBlock:
			writeCodeLines(&sb, node.Lines(), source)
		case *ast.CodeSpan:
			// Inline code children are Text nodes, handled above.
		case *ast.AutoLink:
			sb.Write(node.URL(source))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

func writeCodeLines(sb *strings.Builder, lines *text.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
}
