package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
)

type ICommentService interface {
	Create(ctx context.Context, userId, workspaceId, documentId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error)
	List(ctx context.Context, userId, workspaceId, documentId uuid.UUID) ([]*dto.CommentResponse, error)
	Resolve(ctx context.Context, userId, workspaceId, documentId, commentId uuid.UUID) error
	Delete(ctx context.Context, userId, workspaceId, documentId, commentId uuid.UUID) error
}

type commentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCommentService(uowFactory unitofwork.RepositoryFactory) ICommentService {
	return &commentService{
		uowFactory: uowFactory,
	}
}

func (s *commentService) requireDocument(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, documentId uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, serverutils.NotFound("Document not found")
	}
	return document, nil
}

func (s *commentService) Create(ctx context.Context, userId, workspaceId, documentId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}
	if _, err := s.requireDocument(ctx, uow, workspaceId, documentId); err != nil {
		return nil, err
	}

	if req.ParentId != nil {
		parent, err := uow.CommentRepository().FindOne(ctx,
			specification.ByID{ID: *req.ParentId},
			specification.ByDocumentID{DocumentID: documentId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, serverutils.BadRequest("Parent comment does not belong to this document")
		}
		if parent.ParentId != nil {
			return nil, serverutils.BadRequest("Replies cannot be nested further")
		}
	}

	comment := &entity.Comment{
		Id:         uuid.New(),
		DocumentId: documentId,
		AuthorId:   userId,
		ParentId:   req.ParentId,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}

	if err := uow.CommentRepository().Create(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.CreateCommentResponse{Id: comment.Id}, nil
}

func (s *commentService) List(ctx context.Context, userId, workspaceId, documentId uuid.UUID) ([]*dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}
	if _, err := s.requireDocument(ctx, uow, workspaceId, documentId); err != nil {
		return nil, err
	}

	comments, err := uow.CommentRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*dto.CommentResponse{}, nil
	}

	authorIds := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorId] {
			seen[c.AuthorId] = true
			authorIds = append(authorIds, c.AuthorId)
		}
	}

	authors, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: authorIds})
	if err != nil {
		return nil, err
	}
	nameById := make(map[uuid.UUID]string, len(authors))
	for _, a := range authors {
		nameById[a.Id] = a.Name
	}

	result := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, &dto.CommentResponse{
			Id:         c.Id,
			AuthorId:   c.AuthorId,
			AuthorName: nameById[c.AuthorId],
			ParentId:   c.ParentId,
			Body:       c.Body,
			ResolvedAt: c.ResolvedAt,
			CreatedAt:  c.CreatedAt,
		})
	}
	return result, nil
}

func (s *commentService) Resolve(ctx context.Context, userId, workspaceId, documentId, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return err
	}
	if _, err := s.requireDocument(ctx, uow, workspaceId, documentId); err != nil {
		return err
	}

	comment, err := uow.CommentRepository().FindOne(ctx,
		specification.ByID{ID: commentId},
		specification.ByDocumentID{DocumentID: documentId},
	)
	if err != nil {
		return err
	}
	if comment == nil {
		return serverutils.NotFound("Comment not found")
	}
	if comment.ResolvedAt != nil {
		return serverutils.Conflict("Comment is already resolved")
	}

	now := time.Now()
	comment.ResolvedAt = &now
	return uow.CommentRepository().Update(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, userId, workspaceId, documentId, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if _, err := s.requireDocument(ctx, uow, workspaceId, documentId); err != nil {
		return err
	}

	comment, err := uow.CommentRepository().FindOne(ctx,
		specification.ByID{ID: commentId},
		specification.ByDocumentID{DocumentID: documentId},
	)
	if err != nil {
		return err
	}
	if comment == nil {
		return serverutils.NotFound("Comment not found")
	}

	if comment.AuthorId != userId && !roleAtLeast(member.Role, entity.WorkspaceRoleAdmin) {
		return serverutils.Forbidden("Only the author or an admin can delete a comment")
	}

	return uow.CommentRepository().Delete(ctx, comment.Id)
}
