package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/specification"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entity.Workspace) error
	Update(ctx context.Context, workspace *entity.Workspace) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type WorkspaceMemberRepository interface {
	Create(ctx context.Context, member *entity.WorkspaceMember) error
	Update(ctx context.Context, member *entity.WorkspaceMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkspaceMember, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkspaceMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type WorkspaceInviteRepository interface {
	Create(ctx context.Context, invite *entity.WorkspaceInvite) error
	Update(ctx context.Context, invite *entity.WorkspaceInvite) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkspaceInvite, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkspaceInvite, error)
}
