package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/specification"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error)
}
