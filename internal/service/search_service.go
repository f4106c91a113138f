package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/utils"
)

const (
	searchResultLimit  = 20
	searchSnippetChars = 200
)

type ISearchService interface {
	Search(ctx context.Context, userId, workspaceId uuid.UUID, query string) ([]*dto.SearchResultResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
	}
}

func (s *searchService) Search(ctx context.Context, userId, workspaceId uuid.UUID, query string) ([]*dto.SearchResultResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, serverutils.BadRequest("Query is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	rows, err := uow.DocumentFullTextRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.SearchQuery{Query: query},
		specification.OrderBy{Field: "indexed_at", Desc: true},
		specification.Limit{N: searchResultLimit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SearchResultResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.SearchResultResponse{
			DocumentId: row.DocumentId,
			Title:      row.Title,
			Snippet:    snippetAround(row.Body, query),
		})
	}
	return result, nil
}

// snippetAround cuts a window of the body centered on the first match, or the
// beginning of the body when the match is only in the title.
func snippetAround(body, query string) string {
	idx := strings.Index(strings.ToLower(body), strings.ToLower(query))
	if idx < 0 {
		return utils.Truncate(body, searchSnippetChars)
	}

	start := idx - searchSnippetChars/2
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(body[start]) {
		start--
	}
	return utils.Truncate(body[start:], searchSnippetChars)
}
