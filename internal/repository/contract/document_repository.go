package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/pkg/richtext"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error

	// UpdateContent replaces the document's whole content in one write.
	UpdateContent(ctx context.Context, id uuid.UUID, content richtext.Node) error

	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type DocumentFullTextRepository interface {
	// Upsert replaces the indexed projection for the document.
	Upsert(ctx context.Context, fulltext *entity.DocumentFullText) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFullText, error)
}
