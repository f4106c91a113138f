package richtext

import (
	"regexp"
	"strings"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletPattern  = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	orderedPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	linePattern    = regexp.MustCompile(`\r?\n`)

	inlinePattern = regexp.MustCompile("(\\*\\*([^*]+)\\*\\*|\\*([^*]+)\\*|`([^`]+)`|\\[([^\\]]+)\\]\\(([^)]+)\\))")
)

type listKind string

const (
	listBullet  listKind = "bullet"
	listOrdered listKind = "ordered"
)

// FromMarkdown converts flat Markdown into the document tree. It is a
// line-oriented state machine: consecutive plain lines accumulate into one
// paragraph, list lines accumulate into one list, and a blank line, a
// heading or a list-kind change flushes whatever is pending.
func FromMarkdown(markdown string) Node {
	lines := linePattern.Split(markdown, -1)

	var nodes []Node
	var paragraphBuffer []string
	var currentList *struct {
		kind  listKind
		items []string
	}

	flushParagraph := func() {
		if len(paragraphBuffer) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(paragraphBuffer, " "))
		paragraphBuffer = nil
		if text == "" {
			return
		}
		nodes = append(nodes, Node{
			Type:    TypeParagraph,
			Content: ParseInline(text),
		})
	}

	flushList := func() {
		if currentList == nil || len(currentList.items) == 0 {
			currentList = nil
			return
		}
		listItems := make([]Node, 0, len(currentList.items))
		for _, item := range currentList.items {
			listItems = append(listItems, Node{
				Type: TypeListItem,
				Content: []Node{{
					Type:    TypeParagraph,
					Content: ParseInline(item),
				}},
			})
		}
		listType := TypeBulletList
		if currentList.kind == listOrdered {
			listType = TypeOrderedList
		}
		nodes = append(nodes, Node{Type: listType, Content: listItems})
		currentList = nil
	}

	for _, rawLine := range lines {
		trimmed := strings.TrimSpace(rawLine)

		if trimmed == "" {
			flushParagraph()
			flushList()
			continue
		}

		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			flushParagraph()
			flushList()
			nodes = append(nodes, Node{
				Type:    TypeHeading,
				Attrs:   &Attrs{Level: len(m[1])},
				Content: ParseInline(m[2]),
			})
			continue
		}

		bulletMatch := bulletPattern.FindStringSubmatch(trimmed)
		orderedMatch := orderedPattern.FindStringSubmatch(trimmed)

		if bulletMatch != nil || orderedMatch != nil {
			flushParagraph()

			kind := listBullet
			itemText := ""
			if orderedMatch != nil {
				kind = listOrdered
				itemText = orderedMatch[2]
			} else {
				itemText = bulletMatch[1]
			}

			if currentList == nil || currentList.kind != kind {
				flushList()
				currentList = &struct {
					kind  listKind
					items []string
				}{kind: kind}
			}
			currentList.items = append(currentList.items, itemText)
			continue
		}

		paragraphBuffer = append(paragraphBuffer, trimmed)
	}

	flushParagraph()
	flushList()

	if len(nodes) == 0 {
		return EmptyDoc()
	}
	return Node{Type: TypeDoc, Content: nodes}
}

// ParseInline scans the text left to right for **bold**, *italic*, `code`
// and [label](url) runs. Unmatched stretches become plain text nodes; text
// is never dropped, so an input with no recognizable marks yields a single
// plain node holding the original string.
func ParseInline(text string) []Node {
	var nodes []Node
	lastIndex := 0

	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		matchStart, matchEnd := m[0], m[1]

		if matchStart > lastIndex {
			plain := text[lastIndex:matchStart]
			if strings.TrimSpace(plain) != "" {
				nodes = append(nodes, Node{Type: TypeText, Text: plain})
			}
		}

		switch {
		case m[4] >= 0: // **bold**
			nodes = append(nodes, Node{
				Type:  TypeText,
				Text:  text[m[4]:m[5]],
				Marks: []Mark{{Type: MarkBold}},
			})
		case m[6] >= 0: // *italic*
			nodes = append(nodes, Node{
				Type:  TypeText,
				Text:  text[m[6]:m[7]],
				Marks: []Mark{{Type: MarkItalic}},
			})
		case m[8] >= 0: // `code`
			nodes = append(nodes, Node{
				Type:  TypeText,
				Text:  text[m[8]:m[9]],
				Marks: []Mark{{Type: MarkCode}},
			})
		case m[10] >= 0 && m[12] >= 0: // [label](url)
			nodes = append(nodes, Node{
				Type: TypeText,
				Text: text[m[10]:m[11]],
				Marks: []Mark{{
					Type:  MarkLink,
					Attrs: &MarkAttrs{Href: text[m[12]:m[13]]},
				}},
			})
		}

		lastIndex = matchEnd
	}

	if lastIndex < len(text) {
		plain := text[lastIndex:]
		if strings.TrimSpace(plain) != "" {
			nodes = append(nodes, Node{Type: TypeText, Text: plain})
		}
	}

	if len(nodes) == 0 {
		nodes = append(nodes, Node{Type: TypeText, Text: text})
	}

	return nodes
}
