package contextdocs

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/pkg/richtext"
)

type fakeSource struct {
	hits   map[string][]SearchHit
	recent []RecentDocument

	searchedKeywords [][]string
}

func scopeKey(scope SearchScope) string {
	if scope.OnlyDocumentID != nil {
		return "only:" + scope.OnlyDocumentID.String()
	}
	if scope.ExcludeDocumentID != nil {
		return "exclude:" + scope.ExcludeDocumentID.String()
	}
	return "all"
}

func (f *fakeSource) SearchFullText(_ context.Context, _ uuid.UUID, keywords []string, scope SearchScope, limit int) ([]SearchHit, error) {
	f.searchedKeywords = append(f.searchedKeywords, keywords)
	hits := f.hits[scopeKey(scope)]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (f *fakeSource) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]RecentDocument, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func textDoc(text string) richtext.Node {
	return richtext.Node{
		Type: richtext.TypeDoc,
		Content: []richtext.Node{
			{
				Type:    richtext.TypeParagraph,
				Content: []richtext.Node{{Type: richtext.TypeText, Text: text}},
			},
		},
	}
}

func TestBuildEmptyQuery(t *testing.T) {
	r := NewRetriever(&fakeSource{})
	workspaceID := uuid.New()

	for _, query := range []string{"", "   ", "\n\t"} {
		got, err := r.Build(context.Background(), workspaceID, nil, query)
		if err != nil {
			t.Fatalf("Build(%q) error: %v", query, err)
		}
		if got != nil {
			t.Errorf("Build(%q) = %+v, want nil", query, got)
		}
	}
}

func TestBuildNoMatches(t *testing.T) {
	r := NewRetriever(&fakeSource{})
	workspaceID := uuid.New()

	got, err := r.Build(context.Background(), workspaceID, nil, "nada sobre isso")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got != nil {
		t.Errorf("Build = %+v, want nil when nothing matches", got)
	}
}

func TestBuildPrefersCurrentDocument(t *testing.T) {
	workspaceID := uuid.New()
	currentID := uuid.New()
	otherID := uuid.New()

	source := &fakeSource{
		hits: map[string][]SearchHit{
			"only:" + currentID.String(): {
				{DocumentID: currentID, Title: "Documento atual", Content: "conteúdo do atual"},
			},
			"exclude:" + currentID.String(): {
				// Duplicate of the current document must be dropped on merge.
				{DocumentID: currentID, Title: "Documento atual", Content: "conteúdo do atual"},
				{DocumentID: otherID, Title: "Outro documento", Content: "conteúdo do outro"},
			},
		},
	}

	r := NewRetriever(source)
	got, err := r.Build(context.Background(), workspaceID, &currentID, "conteúdo relevante")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got == nil || !got.HasDocuments {
		t.Fatalf("Build = %+v, want context with documents", got)
	}

	currentPos := strings.Index(got.Message, "Documento atual")
	otherPos := strings.Index(got.Message, "Outro documento")
	if currentPos == -1 || otherPos == -1 {
		t.Fatalf("context missing expected titles: %q", got.Message)
	}
	if currentPos > otherPos {
		t.Errorf("current document should come first in %q", got.Message)
	}
	if strings.Count(got.Message, "Documento atual") != 1 {
		t.Errorf("duplicate document entries in %q", got.Message)
	}
}

func TestBuildRespectsBudgets(t *testing.T) {
	workspaceID := uuid.New()

	long := strings.Repeat("a", 2*maxCharsPerDoc)
	source := &fakeSource{
		hits: map[string][]SearchHit{
			"all": {
				{DocumentID: uuid.New(), Title: "Um", Content: long},
				{DocumentID: uuid.New(), Title: "Dois", Content: long},
				{DocumentID: uuid.New(), Title: "Três", Content: long},
				{DocumentID: uuid.New(), Title: "Quatro", Content: long},
				{DocumentID: uuid.New(), Title: "Cinco", Content: long},
			},
		},
	}

	r := NewRetriever(source)
	got, err := r.Build(context.Background(), workspaceID, nil, "aaa conteúdo")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got == nil {
		t.Fatal("Build = nil, want context")
	}

	body := strings.TrimPrefix(got.Message, contextHeader)
	if len(body) > maxContextChars+len(blockDivider)*maxContextDocs {
		t.Errorf("context body too large: %d chars", len(body))
	}

	// Each excerpt was truncated, so no block carries the full long text.
	if strings.Contains(got.Message, long) {
		t.Error("excerpt was not truncated to the per-document cap")
	}
}

func TestBuildFallbackWindowsAroundHit(t *testing.T) {
	workspaceID := uuid.New()

	padding := strings.Repeat("x ", 600)
	body := padding + "PALAVRACHAVE aqui perto " + padding
	source := &fakeSource{
		recent: []RecentDocument{
			{ID: uuid.New(), Title: "Notas recentes", Content: textDoc(body)},
		},
	}

	r := NewRetriever(source)
	got, err := r.Build(context.Background(), workspaceID, nil, "palavrachave")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got == nil {
		t.Fatal("Build = nil, want fallback context")
	}
	if !strings.Contains(got.Message, "palavrachave") {
		t.Errorf("snippet should contain the matched term: %q", got.Message)
	}
	if !strings.Contains(got.Message, "Notas recentes") {
		t.Errorf("snippet should carry the document title: %q", got.Message)
	}
}

func TestBuildLongQueryCutsOnRuneBoundary(t *testing.T) {
	workspaceID := uuid.New()

	source := &fakeSource{}
	r := NewRetriever(source)

	// One leading single-byte rune shifts every two-byte rune onto an odd
	// offset, so the 200-byte cap lands mid-rune.
	query := "x" + strings.Repeat("á", 150)
	if _, err := r.Build(context.Background(), workspaceID, nil, query); err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if len(source.searchedKeywords) == 0 {
		t.Fatal("no full-text search was issued")
	}
	for _, terms := range source.searchedKeywords {
		for _, term := range terms {
			if !utf8.ValidString(term) {
				t.Errorf("search term is not valid UTF-8: %q", term)
			}
		}
	}
}

func TestBuildShortQueryFallsBackToRawTerm(t *testing.T) {
	workspaceID := uuid.New()

	source := &fakeSource{
		recent: []RecentDocument{
			{ID: uuid.New(), Title: "Guia AB", Content: textDoc("tudo sobre ab neste guia")},
		},
	}

	r := NewRetriever(source)
	got, err := r.Build(context.Background(), workspaceID, nil, "ab")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got == nil {
		t.Fatal("Build = nil, want context found via raw query term")
	}
	if !strings.Contains(got.Message, "Guia AB") {
		t.Errorf("context missing fallback match: %q", got.Message)
	}
}
