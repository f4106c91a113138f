package richtext

// Node represents any node in the document tree persisted for the editor.
// A single struct with a Type tag keeps JSON round-trips tolerant: unknown
// node types are carried through untouched instead of being rejected.
type Node struct {
	Type    string `json:"type"`
	Attrs   *Attrs `json:"attrs,omitempty"`
	Content []Node `json:"content,omitempty"`

	// Text specific
	Text  string `json:"text,omitempty"`
	Marks []Mark `json:"marks,omitempty"`
}

// Attrs holds node attributes. Only heading levels are meaningful today.
type Attrs struct {
	Level int `json:"level,omitempty"`
}

// Mark is an inline formatting mark attached to a text node.
type Mark struct {
	Type  string     `json:"type"`
	Attrs *MarkAttrs `json:"attrs,omitempty"`
}

type MarkAttrs struct {
	Href string `json:"href,omitempty"`
}

// Node types
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeListItem    = "listItem"
	TypeBlockquote  = "blockquote"
	TypeText        = "text"
)

// Mark types
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
	MarkCode   = "code"
	MarkLink   = "link"
)

// EmptyDoc returns the minimal valid document: a root with one empty
// paragraph. Persisted content must never be an empty tree.
func EmptyDoc() Node {
	return Node{
		Type:    TypeDoc,
		Content: []Node{{Type: TypeParagraph}},
	}
}

func (n Node) hasMark(markType string) bool {
	for _, m := range n.Marks {
		if m.Type == markType {
			return true
		}
	}
	return false
}

func (n Node) linkHref() (string, bool) {
	for _, m := range n.Marks {
		if m.Type == MarkLink && m.Attrs != nil && m.Attrs.Href != "" {
			return m.Attrs.Href, true
		}
	}
	return "", false
}
