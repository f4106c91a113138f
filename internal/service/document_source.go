package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/ai/contextdocs"
)

// documentSource exposes the document tables to the context retriever.
type documentSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentSource(uowFactory unitofwork.RepositoryFactory) contextdocs.DocumentSource {
	return &documentSource{
		uowFactory: uowFactory,
	}
}

func (s *documentSource) SearchFullText(ctx context.Context, workspaceID uuid.UUID, keywords []string, scope contextdocs.SearchScope, limit int) ([]contextdocs.SearchHit, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByWorkspaceID{WorkspaceID: workspaceID},
		specification.FullTextKeywords{Keywords: keywords},
	}
	if scope.OnlyDocumentID != nil {
		specs = append(specs, specification.ByDocumentID{DocumentID: *scope.OnlyDocumentID})
	}
	if scope.ExcludeDocumentID != nil {
		specs = append(specs, specification.ExcludeDocumentID{DocumentID: *scope.ExcludeDocumentID})
	}
	specs = append(specs,
		specification.OrderBy{Field: "indexed_at", Desc: true},
		specification.Limit{N: limit},
	)

	rows, err := uow.DocumentFullTextRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	hits := make([]contextdocs.SearchHit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, contextdocs.SearchHit{
			DocumentID: row.DocumentId,
			Title:      row.Title,
			Content:    row.Body,
		})
	}
	return hits, nil
}

func (s *documentSource) ListRecent(ctx context.Context, workspaceID uuid.UUID, limit int) ([]contextdocs.RecentDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceID},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}

	recent := make([]contextdocs.RecentDocument, 0, len(documents))
	for _, d := range documents {
		recent = append(recent, contextdocs.RecentDocument{
			ID:      d.Id,
			Title:   d.Title,
			Content: d.Content,
		})
	}
	return recent, nil
}
