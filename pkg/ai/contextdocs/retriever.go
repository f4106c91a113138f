// Package contextdocs selects and bounds the documentation excerpts injected
// into the assistant prompt for a chat turn.
package contextdocs

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/pkg/richtext"
	"github.com/fabi0dev/amby/pkg/utils"
)

const (
	// Query length cap before search, to avoid pathological lookups.
	maxQueryChars = 200
	// Global character budget for the whole context block.
	maxContextChars = 4000
	// Per-excerpt cap before accumulation.
	maxCharsPerDoc = 800
	// How many excerpts a context block may carry.
	maxContextDocs = 5
	// Results reserved for the session's current document.
	currentDocLimit = 3
	// Recently-updated documents scanned on the fallback path.
	fallbackScanLimit = 50

	contextHeader = "Contexto da documentação do workspace (trechos relevantes):\n\n"
	blockDivider  = "\n\n---\n\n"
)

// SearchHit is one row from the full-text index.
type SearchHit struct {
	DocumentID uuid.UUID
	Title      string
	Content    string
}

// RecentDocument is a candidate for the in-memory fallback scan.
type RecentDocument struct {
	ID      uuid.UUID
	Title   string
	Content richtext.Node
}

// SearchScope narrows a full-text query to one document, or excludes one.
type SearchScope struct {
	OnlyDocumentID    *uuid.UUID
	ExcludeDocumentID *uuid.UUID
}

// DocumentSource is the storage boundary the retriever reads from.
type DocumentSource interface {
	// SearchFullText returns indexed documents of the workspace whose title
	// or body contains ANY of the keywords, soft-deleted documents excluded.
	SearchFullText(ctx context.Context, workspaceID uuid.UUID, keywords []string, scope SearchScope, limit int) ([]SearchHit, error)

	// ListRecent returns the most recently updated non-deleted documents.
	ListRecent(ctx context.Context, workspaceID uuid.UUID, limit int) ([]RecentDocument, error)
}

// Context is the formatted excerpt block handed to the prompt assembler.
type Context struct {
	Message      string
	HasDocuments bool
}

type Retriever struct {
	source DocumentSource
}

func NewRetriever(source DocumentSource) *Retriever {
	return &Retriever{source: source}
}

// Build selects relevant excerpts for the query. A nil result with nil error
// means "no documentation found" and is not an error condition.
func (r *Retriever) Build(ctx context.Context, workspaceID uuid.UUID, documentID *uuid.UUID, userQuery string) (*Context, error) {
	cleanedQuery := strings.TrimSpace(userQuery)
	if cleanedQuery == "" {
		return nil, nil
	}

	queryForSearch := cleanedQuery
	if len(queryForSearch) > maxQueryChars {
		cut := maxQueryChars
		for cut > 0 && !utf8.RuneStart(queryForSearch[cut]) {
			cut--
		}
		queryForSearch = queryForSearch[:cut]
	}

	keywords := tokenizeQuery(queryForSearch)

	// Without a usable keyword the raw query itself is the search term.
	searchTerms := keywords
	if len(searchTerms) == 0 {
		searchTerms = []string{strings.ToLower(queryForSearch)}
	}

	hits, err := r.searchIndexed(ctx, workspaceID, documentID, searchTerms)
	if err != nil {
		return nil, err
	}

	parts := accumulateBlocks(nil, hitsToExcerpts(hits))

	if len(parts) == 0 {
		fallback, err := r.scanRecent(ctx, workspaceID, keywords, queryForSearch)
		if err != nil {
			return nil, err
		}
		parts = accumulateBlocks(parts, fallback)
	}

	if len(parts) == 0 {
		return nil, nil
	}

	return &Context{
		HasDocuments: true,
		Message:      contextHeader + strings.Join(parts, blockDivider),
	}, nil
}

// searchIndexed runs the primary full-text lookup. With a current document
// bound to the session, two scoped queries bias the context toward the open
// document while still surfacing cross-document matches.
func (r *Retriever) searchIndexed(ctx context.Context, workspaceID uuid.UUID, documentID *uuid.UUID, keywords []string) ([]SearchHit, error) {
	var currentHits []SearchHit
	if documentID != nil {
		var err error
		currentHits, err = r.source.SearchFullText(ctx, workspaceID, keywords, SearchScope{OnlyDocumentID: documentID}, currentDocLimit)
		if err != nil {
			return nil, err
		}
	}

	otherHits, err := r.source.SearchFullText(ctx, workspaceID, keywords, SearchScope{ExcludeDocumentID: documentID}, maxContextDocs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	merged := make([]SearchHit, 0, len(currentHits)+len(otherHits))
	for _, hit := range append(currentHits, otherHits...) {
		if seen[hit.DocumentID] {
			continue
		}
		seen[hit.DocumentID] = true
		merged = append(merged, hit)
		if len(merged) == maxContextDocs {
			break
		}
	}
	return merged, nil
}

// scanRecent is the fallback when the index has no match: extract plain text
// from the latest documents and keep the ones mentioning a search term, with
// the snippet window centered on the first hit.
func (r *Retriever) scanRecent(ctx context.Context, workspaceID uuid.UUID, keywords []string, queryForSearch string) ([]excerpt, error) {
	candidates, err := r.source.ListRecent(ctx, workspaceID, fallbackScanLimit)
	if err != nil {
		return nil, err
	}

	terms := keywords
	if len(terms) == 0 {
		terms = []string{strings.ToLower(queryForSearch)}
	}

	var matched []excerpt
	for _, doc := range candidates {
		plain := strings.ToLower(richtext.PlainText(doc.Content))
		if plain == "" {
			continue
		}

		firstIndex := -1
		for _, term := range terms {
			if idx := strings.Index(plain, term); idx != -1 && (firstIndex == -1 || idx < firstIndex) {
				firstIndex = idx
			}
		}
		if firstIndex == -1 {
			continue
		}

		snippet := plain
		if len(plain) > maxCharsPerDoc {
			start := firstIndex - maxCharsPerDoc/2
			if start < 0 {
				start = 0
			}
			end := start + maxCharsPerDoc
			if end > len(plain) {
				end = len(plain)
			}
			snippet = plain[start:end]
		}

		matched = append(matched, excerpt{Title: doc.Title, Content: snippet})
		if len(matched) == maxContextDocs {
			break
		}
	}
	return matched, nil
}

type excerpt struct {
	Title   string
	Content string
}

func hitsToExcerpts(hits []SearchHit) []excerpt {
	excerpts := make([]excerpt, 0, len(hits))
	for _, hit := range hits {
		excerpts = append(excerpts, excerpt{Title: hit.Title, Content: hit.Content})
	}
	return excerpts
}

// accumulateBlocks formats excerpts and appends them to parts until the
// global character budget is hit. Each excerpt is truncated to its own cap
// first; an excerpt whose block would push the running total past the budget
// is dropped along with everything after it.
func accumulateBlocks(parts []string, excerpts []excerpt) []string {
	totalChars := 0
	for _, part := range parts {
		totalChars += len(part)
	}

	for _, ex := range excerpts {
		if totalChars >= maxContextChars {
			break
		}

		snippet := utils.Truncate(ex.Content, maxCharsPerDoc)
		block := "Título: " + ex.Title + "\nTrecho:\n" + snippet

		totalChars += len(block)
		if totalChars > maxContextChars {
			break
		}
		parts = append(parts, block)
	}
	return parts
}

// tokenizeQuery lowercases the query, strips punctuation and keeps tokens of
// at least three characters.
func tokenizeQuery(query string) []string {
	stripper := strings.NewReplacer(".", "", ",", "", ";", "", "!", "", "?", "", "(", "", ")", "", `"`, "", "'", "", "`", "")

	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		cleaned := stripper.Replace(word)
		if len(cleaned) >= 3 {
			keywords = append(keywords, cleaned)
		}
	}
	return keywords
}
