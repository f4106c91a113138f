package unitofwork

import (
	"context"

	"github.com/fabi0dev/amby/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	WorkspaceRepository() contract.WorkspaceRepository
	WorkspaceMemberRepository() contract.WorkspaceMemberRepository
	WorkspaceInviteRepository() contract.WorkspaceInviteRepository
	ProjectRepository() contract.ProjectRepository
	DocumentRepository() contract.DocumentRepository
	DocumentFullTextRepository() contract.DocumentFullTextRepository
	CommentRepository() contract.CommentRepository
	ShareLinkRepository() contract.ShareLinkRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
