package richtext

import (
	"reflect"
	"testing"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     Node
	}{
		{
			name:     "heading and paragraph",
			markdown: "## Visão geral\n\ntexto novo",
			want: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeHeading, Attrs: &Attrs{Level: 2}, Content: []Node{{Type: TypeText, Text: "Visão geral"}}},
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "texto novo"}}},
			}},
		},
		{
			name:     "consecutive plain lines join into one paragraph",
			markdown: "linha um\nlinha dois",
			want: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "linha um linha dois"}}},
			}},
		},
		{
			name:     "bullet list accumulates adjacent items",
			markdown: "- um\n- dois",
			want: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeBulletList, Content: []Node{
					{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "um"}}}}},
					{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "dois"}}}}},
				}},
			}},
		},
		{
			name:     "list kind change flushes the previous list",
			markdown: "- um\n1. primeiro",
			want: Node{Type: TypeDoc, Content: []Node{
				{Type: TypeBulletList, Content: []Node{
					{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "um"}}}}},
				}},
				{Type: TypeOrderedList, Content: []Node{
					{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "primeiro"}}}}},
				}},
			}},
		},
		{
			name:     "empty input yields a single empty paragraph",
			markdown: "",
			want:     EmptyDoc(),
		},
		{
			name:     "blank lines only",
			markdown: "\n\n   \n",
			want:     EmptyDoc(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromMarkdown(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromMarkdown(%q) = %#v, want %#v", tt.markdown, got, tt.want)
			}
		})
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Node
	}{
		{
			name: "plain text only",
			text: "sem marcação",
			want: []Node{{Type: TypeText, Text: "sem marcação"}},
		},
		{
			name: "bold italic code and link",
			text: "**negrito** *itálico* `cmd` [site](https://amby.dev)",
			want: []Node{
				{Type: TypeText, Text: "negrito", Marks: []Mark{{Type: MarkBold}}},
				{Type: TypeText, Text: "itálico", Marks: []Mark{{Type: MarkItalic}}},
				{Type: TypeText, Text: "cmd", Marks: []Mark{{Type: MarkCode}}},
				{Type: TypeText, Text: "site", Marks: []Mark{{Type: MarkLink, Attrs: &MarkAttrs{Href: "https://amby.dev"}}}},
			},
		},
		{
			name: "plain runs between marks are kept",
			text: "antes **meio** depois",
			want: []Node{
				{Type: TypeText, Text: "antes "},
				{Type: TypeText, Text: "meio", Marks: []Mark{{Type: MarkBold}}},
				{Type: TypeText, Text: " depois"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInline(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInline(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

// The converter pair is lossy on list grouping (each item becomes its own
// block) but must preserve block ordering, heading levels and text verbatim.
func TestRoundTrip(t *testing.T) {
	doc := Node{Type: TypeDoc, Content: []Node{
		heading(1, "Guia"),
		paragraph("texto antigo"),
		heading(2, "Seção"),
		{Type: TypeParagraph, Content: []Node{
			{Type: TypeText, Text: "use "},
			{Type: TypeText, Text: "amby", Marks: []Mark{{Type: MarkCode}}},
		}},
	}}

	markdown := ToMarkdown(doc)
	back := FromMarkdown(markdown)

	if !reflect.DeepEqual(back.Content, doc.Content) {
		t.Errorf("round trip changed the tree:\nmarkdown: %q\ngot:  %#v\nwant: %#v", markdown, back.Content, doc.Content)
	}

	// Markdown is stable once derived.
	if again := ToMarkdown(back); again != markdown {
		t.Errorf("second conversion diverged: %q != %q", again, markdown)
	}
}
