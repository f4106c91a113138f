package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/specification"
)

type ShareLinkRepository interface {
	Create(ctx context.Context, link *entity.ShareLink) error
	Update(ctx context.Context, link *entity.ShareLink) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareLink, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareLink, error)
}
