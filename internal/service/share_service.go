package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
)

type IShareService interface {
	CreateLink(ctx context.Context, userId, workspaceId, documentId uuid.UUID, req *dto.CreateShareLinkRequest) (*dto.ShareLinkResponse, error)
	ListLinks(ctx context.Context, userId, workspaceId, documentId uuid.UUID) ([]*dto.ShareLinkResponse, error)
	RevokeLink(ctx context.Context, userId, workspaceId, documentId, linkId uuid.UUID) error

	// GetSharedDocument resolves a public token without authentication.
	GetSharedDocument(ctx context.Context, token string) (*dto.SharedDocumentResponse, error)
}

type shareService struct {
	uowFactory unitofwork.RepositoryFactory
	clientURL  string
}

func NewShareService(uowFactory unitofwork.RepositoryFactory, clientURL string) IShareService {
	return &shareService{
		uowFactory: uowFactory,
		clientURL:  clientURL,
	}
}

func newShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *shareService) linkToResponse(link *entity.ShareLink) *dto.ShareLinkResponse {
	return &dto.ShareLinkResponse{
		Id:        link.Id,
		Token:     link.Token,
		URL:       fmt.Sprintf("%s/share/%s", s.clientURL, link.Token),
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}

func (s *shareService) CreateLink(ctx context.Context, userId, workspaceId, documentId uuid.UUID, req *dto.CreateShareLinkRequest) (*dto.ShareLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

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

	token, err := newShareToken()
	if err != nil {
		return nil, err
	}

	link := &entity.ShareLink{
		Id:          uuid.New(),
		DocumentId:  documentId,
		Token:       token,
		CreatedById: userId,
		CreatedAt:   time.Now(),
	}
	if req.ExpiresInDays > 0 {
		expiresAt := time.Now().Add(time.Duration(req.ExpiresInDays) * 24 * time.Hour)
		link.ExpiresAt = &expiresAt
	}

	if err := uow.ShareLinkRepository().Create(ctx, link); err != nil {
		return nil, err
	}

	return s.linkToResponse(link), nil
}

func (s *shareService) ListLinks(ctx context.Context, userId, workspaceId, documentId uuid.UUID) ([]*dto.ShareLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	links, err := uow.ShareLinkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShareLinkResponse, 0, len(links))
	for _, link := range links {
		result = append(result, s.linkToResponse(link))
	}
	return result, nil
}

func (s *shareService) RevokeLink(ctx context.Context, userId, workspaceId, documentId, linkId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return err
	}

	link, err := uow.ShareLinkRepository().FindOne(ctx,
		specification.ByID{ID: linkId},
		specification.ByDocumentID{DocumentID: documentId},
	)
	if err != nil {
		return err
	}
	if link == nil {
		return serverutils.NotFound("Share link not found")
	}
	if link.RevokedAt != nil {
		return serverutils.Conflict("Share link is already revoked")
	}

	now := time.Now()
	link.RevokedAt = &now
	return uow.ShareLinkRepository().Update(ctx, link)
}

func (s *shareService) GetSharedDocument(ctx context.Context, token string) (*dto.SharedDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	link, err := uow.ShareLinkRepository().FindOne(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, err
	}
	// Expired and revoked links look identical to a missing one.
	if link == nil || !link.IsActive(time.Now()) {
		return nil, serverutils.NotFound("Shared document not found")
	}

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: link.DocumentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, serverutils.NotFound("Shared document not found")
	}

	return &dto.SharedDocumentResponse{
		Title:     document.Title,
		Content:   document.Content,
		UpdatedAt: document.UpdatedAt,
	}, nil
}
