package service

import (
	"strings"
	"testing"
)

func TestSnippetAroundMatchInBody(t *testing.T) {
	body := strings.Repeat("a", 300) + "pipeline de deploy" + strings.Repeat("b", 300)

	snippet := snippetAround(body, "pipeline")

	if !strings.Contains(snippet, "pipeline") {
		t.Fatalf("snippet does not contain the match: %q", snippet)
	}
	if len([]rune(snippet)) > searchSnippetChars+1 {
		t.Fatalf("snippet exceeds the window: %d runes", len([]rune(snippet)))
	}
}

func TestSnippetAroundTitleOnlyMatch(t *testing.T) {
	body := "corpo sem o termo buscado"

	snippet := snippetAround(body, "runbook")

	if snippet != body {
		t.Fatalf("expected the body head, got %q", snippet)
	}
}

func TestSnippetAroundCaseInsensitive(t *testing.T) {
	snippet := snippetAround("O Pipeline roda às 9h.", "pipeline")

	if !strings.Contains(snippet, "Pipeline") {
		t.Fatalf("expected case-insensitive match, got %q", snippet)
	}
}
