package richtext

import (
	"testing"
)

func heading(level int, text string) Node {
	return Node{
		Type:    TypeHeading,
		Attrs:   &Attrs{Level: level},
		Content: []Node{{Type: TypeText, Text: text}},
	}
}

func paragraph(text string) Node {
	return Node{
		Type:    TypeParagraph,
		Content: []Node{{Type: TypeText, Text: text}},
	}
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		doc  Node
		want string
	}{
		{
			name: "heading and paragraph",
			doc: Node{Type: TypeDoc, Content: []Node{
				heading(1, "Guia"),
				paragraph("texto antigo"),
			}},
			want: "# Guia\n\ntexto antigo",
		},
		{
			name: "heading levels",
			doc: Node{Type: TypeDoc, Content: []Node{
				heading(2, "Visão geral"),
				heading(3, "Detalhes"),
			}},
			want: "## Visão geral\n\n### Detalhes",
		},
		{
			name: "bullet list items get a dash prefix",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeBulletList, Content: []Node{
					{Type: TypeListItem, Content: []Node{paragraph("um")}},
					{Type: TypeListItem, Content: []Node{paragraph("dois")}},
				}},
			}},
			want: "- um\n\n- dois",
		},
		{
			name: "ordered list items are numbered",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeOrderedList, Content: []Node{
					{Type: TypeListItem, Content: []Node{paragraph("primeiro")}},
					{Type: TypeListItem, Content: []Node{paragraph("segundo")}},
				}},
			}},
			want: "1. primeiro\n\n2. segundo",
		},
		{
			name: "blockquote",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeBlockquote, Content: []Node{{Type: TypeText, Text: "citação"}}},
			}},
			want: "> citação",
		},
		{
			name: "inline marks are re-emitted",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeParagraph, Content: []Node{
					{Type: TypeText, Text: "veja "},
					{Type: TypeText, Text: "isto", Marks: []Mark{{Type: MarkBold}}},
					{Type: TypeText, Text: " e "},
					{Type: TypeText, Text: "docs", Marks: []Mark{{Type: MarkLink, Attrs: &MarkAttrs{Href: "https://amby.dev"}}}},
				}},
			}},
			want: "veja **isto** e [docs](https://amby.dev)",
		},
		{
			name: "unknown container recurses without markup",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: "callout", Content: []Node{paragraph("dentro")}},
			}},
			want: "dentro",
		},
		{
			name: "empty paragraphs are skipped",
			doc: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeParagraph},
				paragraph("só isso"),
			}},
			want: "só isso",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToMarkdown(tt.doc)
			if got != tt.want {
				t.Errorf("ToMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	doc := Node{Type: TypeDoc, Content: []Node{
		heading(1, "Acesso"),
		paragraph("usuário e senha"),
		{Type: TypeBulletList, Content: []Node{
			{Type: TypeListItem, Content: []Node{paragraph("vpn")}},
		}},
	}}

	want := "Acesso usuário e senha vpn"
	if got := PlainText(doc); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}
