package richtext

import (
	"fmt"
	"strings"
)

// ToMarkdown converts a document tree to the flat Markdown shared with the
// AI assistant. Blocks are separated by a blank line. Nested lists are
// flattened to a single prefix level; the editor never produces deeper
// nesting today, so the round-trip holds for everything it emits.
func ToMarkdown(doc Node) string {
	var parts []string

	var visit func(nodes []Node, listPrefix string)
	visit = func(nodes []Node, listPrefix string) {
		for _, node := range nodes {
			switch node.Type {
			case TypeParagraph:
				text := renderInline(node.Content)
				if strings.TrimSpace(text) == "" {
					continue
				}
				if listPrefix != "" {
					parts = append(parts, listPrefix+" "+text)
				} else {
					parts = append(parts, text)
				}

			case TypeHeading:
				level := 1
				if node.Attrs != nil && node.Attrs.Level >= 1 && node.Attrs.Level <= 6 {
					level = node.Attrs.Level
				}
				parts = append(parts, strings.Repeat("#", level)+" "+renderInline(node.Content))

			case TypeBulletList, TypeOrderedList:
				ordered := node.Type == TypeOrderedList
				for i, item := range node.Content {
					if item.Type != TypeListItem {
						continue
					}
					prefix := "-"
					if ordered {
						prefix = fmt.Sprintf("%d.", i+1)
					}
					visit(item.Content, prefix)
				}

			case TypeBlockquote:
				parts = append(parts, "> "+renderInline(node.Content))

			default:
				// Unknown container: recurse without adding markup.
				visit(node.Content, listPrefix)
			}
		}
	}

	visit(doc.Content, "")
	return strings.Join(parts, "\n\n")
}

// renderInline flattens child text runs to Markdown, re-emitting the
// supported marks so they survive a tree -> markdown -> tree round trip.
func renderInline(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		if node.Type != TypeText {
			sb.WriteString(renderInline(node.Content))
			continue
		}
		if href, ok := node.linkHref(); ok {
			sb.WriteString("[" + node.Text + "](" + href + ")")
			continue
		}
		text := node.Text
		if node.hasMark(MarkCode) {
			text = "`" + text + "`"
		}
		if node.hasMark(MarkItalic) {
			text = "*" + text + "*"
		}
		if node.hasMark(MarkBold) {
			text = "**" + text + "**"
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// PlainText concatenates every text run in the tree, used by the fallback
// document search when the full-text index has no match.
func PlainText(node Node) string {
	var sb strings.Builder

	var walk func(n Node)
	walk = func(n Node) {
		if n.Text != "" {
			sb.WriteString(n.Text)
			sb.WriteByte(' ')
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(node)

	return strings.TrimSpace(sb.String())
}
