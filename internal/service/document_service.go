package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/logger"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/richtext"
	"github.com/fabi0dev/amby/pkg/utils"
)

type IDocumentService interface {
	Create(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	List(ctx context.Context, userId, workspaceId uuid.UUID, projectId *uuid.UUID) ([]*dto.DocumentSummaryResponse, error)
	Get(ctx context.Context, userId, workspaceId, documentId uuid.UUID) (*dto.DocumentResponse, error)
	Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Move(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.MoveDocumentRequest) error
	Delete(ctx context.Context, userId, workspaceId, documentId uuid.UUID) error
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	log        logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// publishReindex queues a rebuild of the document's search projection. A
// publish failure never fails the write that triggered it.
func (s *documentService) publishReindex(ctx context.Context, documentId uuid.UUID) {
	payload, err := json.Marshal(dto.ReindexDocumentMessage{DocumentId: documentId})
	if err != nil {
		s.log.Error("document", "Failed to marshal reindex message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("document", "Failed to publish reindex message", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}

func documentToResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        document.Id,
		Title:     document.Title,
		Slug:      document.Slug,
		ProjectId: document.ProjectId,
		ParentId:  document.ParentId,
		Content:   document.Content,
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
}

func (s *documentService) findDocument(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, documentId uuid.UUID) (*entity.Document, error) {
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

func (s *documentService) Create(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	if req.ProjectId != nil {
		project, err := uow.ProjectRepository().FindOne(ctx,
			specification.ByID{ID: *req.ProjectId},
			specification.ByWorkspaceID{WorkspaceID: workspaceId},
		)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, serverutils.BadRequest("Project does not belong to this workspace")
		}
	}

	if req.ParentId != nil {
		if _, err := s.findDocument(ctx, uow, workspaceId, *req.ParentId); err != nil {
			return nil, serverutils.BadRequest("Parent document does not belong to this workspace")
		}
	}

	content := richtext.EmptyDoc()
	if req.Content != nil {
		content = *req.Content
	}

	document := &entity.Document{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		ProjectId:   req.ProjectId,
		ParentId:    req.ParentId,
		Title:       req.Title,
		Slug:        utils.UniqueSlug(req.Title),
		Content:     content,
		CreatedById: userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	s.publishReindex(ctx, document.Id)

	return &dto.CreateDocumentResponse{
		Id:   document.Id,
		Slug: document.Slug,
	}, nil
}

func (s *documentService) List(ctx context.Context, userId, workspaceId uuid.UUID, projectId *uuid.UUID) ([]*dto.DocumentSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if projectId != nil {
		specs = append(specs, specification.ByProjectID{ProjectID: *projectId})
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentSummaryResponse, 0, len(documents))
	for _, d := range documents {
		result = append(result, &dto.DocumentSummaryResponse{
			Id:        d.Id,
			Title:     d.Title,
			Slug:      d.Slug,
			ProjectId: d.ProjectId,
			ParentId:  d.ParentId,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return result, nil
}

func (s *documentService) Get(ctx context.Context, userId, workspaceId, documentId uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	document, err := s.findDocument(ctx, uow, workspaceId, documentId)
	if err != nil {
		return nil, err
	}

	return documentToResponse(document), nil
}

func (s *documentService) Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	document, err := s.findDocument(ctx, uow, workspaceId, req.Id)
	if err != nil {
		return nil, err
	}

	document.Title = req.Title
	if req.Content != nil {
		document.Content = *req.Content
	}

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	s.publishReindex(ctx, document.Id)

	return documentToResponse(document), nil
}

func (s *documentService) Move(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.MoveDocumentRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return err
	}

	document, err := s.findDocument(ctx, uow, workspaceId, req.Id)
	if err != nil {
		return err
	}

	if req.ProjectId != nil {
		project, err := uow.ProjectRepository().FindOne(ctx,
			specification.ByID{ID: *req.ProjectId},
			specification.ByWorkspaceID{WorkspaceID: workspaceId},
		)
		if err != nil {
			return err
		}
		if project == nil {
			return serverutils.BadRequest("Project does not belong to this workspace")
		}
	}

	if req.ParentId != nil {
		if *req.ParentId == document.Id {
			return serverutils.BadRequest("Document cannot be its own parent")
		}
		if _, err := s.findDocument(ctx, uow, workspaceId, *req.ParentId); err != nil {
			return serverutils.BadRequest("Parent document does not belong to this workspace")
		}
	}

	document.ProjectId = req.ProjectId
	document.ParentId = req.ParentId
	return uow.DocumentRepository().Update(ctx, document)
}

func (s *documentService) Delete(ctx context.Context, userId, workspaceId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return err
	}

	document, err := s.findDocument(ctx, uow, workspaceId, documentId)
	if err != nil {
		return err
	}

	if err := uow.DocumentRepository().Delete(ctx, document.Id); err != nil {
		return err
	}

	// The consumer sees the document soft-deleted and drops its index row.
	s.publishReindex(ctx, document.Id)
	return nil
}
