// Package extract pulls a replacement-document Markdown payload out of an
// assistant response.
package extract

import (
	"regexp"
	"strings"
)

// Strategy tries to locate a document payload in the response text. It
// returns the payload and whether it matched.
type Strategy func(response string) (string, bool)

var fencedPattern = regexp.MustCompile("(?is)```DOCUMENT_MARKDOWN\\s*(.*?)```")

// fencedBlock matches the explicit sentinel fence and returns its inner text.
func fencedBlock(response string) (string, bool) {
	m := fencedPattern.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

var headingStartPattern = regexp.MustCompile(`(?m)^#\s`)

// fromFirstHeading discards any prose before the first level-1 heading and
// returns everything from that line onward.
func fromFirstHeading(response string) (string, bool) {
	loc := headingStartPattern.FindStringIndex(response)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(response[loc[0]:]), true
}

// wholeResponse is the last resort: the entire trimmed response is the
// payload, so a requested edit is never silently dropped.
func wholeResponse(response string) (string, bool) {
	return strings.TrimSpace(response), true
}

var strategies = []Strategy{
	fencedBlock,
	fromFirstHeading,
	wholeResponse,
}

// DocumentMarkdown extracts the proposed document content from an assistant
// response, trying each strategy in order. An empty response yields "".
func DocumentMarkdown(response string) string {
	if strings.TrimSpace(response) == "" {
		return ""
	}
	for _, strategy := range strategies {
		if payload, ok := strategy(response); ok {
			return payload
		}
	}
	return ""
}
