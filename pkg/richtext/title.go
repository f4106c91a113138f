package richtext

import (
	"regexp"
	"strings"

	"github.com/fabi0dev/amby/pkg/utils"
)

var h1Pattern = regexp.MustCompile(`^#\s+(.+)$`)

// StripDuplicateTitle drops the first line of the Markdown when it is a
// level-1 heading repeating the document title. The title lives in its own
// column, so an assistant echoing it back would otherwise duplicate it as
// the first heading of the body. Comparison is case- and accent-insensitive.
// Running the pre-pass twice yields the same output as running it once.
func StripDuplicateTitle(markdown, docTitle string) string {
	if strings.TrimSpace(docTitle) == "" {
		return markdown
	}

	normalizedTitle := utils.NormalizeText(strings.TrimSpace(docTitle))

	lines := linePattern.Split(markdown, -1)
	if len(lines) == 0 {
		return markdown
	}

	first := strings.TrimSpace(lines[0])
	m := h1Pattern.FindStringSubmatch(first)
	if m == nil {
		return markdown
	}

	if utils.NormalizeText(m[1]) != normalizedTitle {
		return markdown
	}

	return strings.TrimLeft(strings.Join(lines[1:], "\n"), " \t\r\n")
}
