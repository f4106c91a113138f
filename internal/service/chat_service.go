package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/constant"
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/logger"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/ai/contextdocs"
	"github.com/fabi0dev/amby/pkg/ai/extract"
	"github.com/fabi0dev/amby/pkg/ai/intent"
	"github.com/fabi0dev/amby/pkg/ai/prompt"
	"github.com/fabi0dev/amby/pkg/llm"
	"github.com/fabi0dev/amby/pkg/richtext"
	"github.com/fabi0dev/amby/pkg/turnlock"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error)
	ListSessions(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	ListMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error

	// Completion runs one chat turn and persists both sides of it.
	Completion(ctx context.Context, userId, sessionId uuid.UUID, req *dto.CompletionRequest) (*dto.CompletionResponse, error)

	// ApplyMessage writes an assistant edit payload into the session's document.
	ApplyMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.ApplyMessageRequest) (*dto.ApplyMessageResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.Provider
	retriever  *contextdocs.Retriever
	locker     turnlock.Locker
	publisher  IPublisherService
	log        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	retriever *contextdocs.Retriever,
	locker turnlock.Locker,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		provider:   provider,
		retriever:  retriever,
		locker:     locker,
		publisher:  publisher,
		log:        log,
	}
}

// ensureSessionAccess loads the session and verifies the caller belongs to
// its workspace.
func (s *chatService) ensureSessionAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("Sessão não encontrada")
	}

	if _, err := requireMember(ctx, uow, session.WorkspaceId, userId); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, req.WorkspaceId, userId); err != nil {
		return nil, err
	}

	if req.DocumentId != nil {
		document, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: *req.DocumentId},
			specification.ByWorkspaceID{WorkspaceID: req.WorkspaceId},
		)
		if err != nil {
			return nil, err
		}
		if document == nil {
			return nil, serverutils.BadRequest("Document does not belong to this workspace")
		}
	}

	session := &entity.ChatSession{
		Id:          uuid.New(),
		WorkspaceId: req.WorkspaceId,
		DocumentId:  req.DocumentId,
		UserId:      userId,
		Title:       req.Title,
		CreatedAt:   time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateChatSessionResponse{Id: session.Id}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, &dto.ChatSessionResponse{
			Id:          sess.Id,
			WorkspaceId: sess.WorkspaceId,
			DocumentId:  sess.DocumentId,
			Title:       sess.Title,
			CreatedAt:   sess.CreatedAt,
			UpdatedAt:   sess.UpdatedAt,
		})
	}
	return result, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ensureSessionAccess(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, &dto.ChatMessageResponse{
			Id:             m.Id,
			Role:           m.Role,
			Content:        m.Content,
			ActionMarkdown: m.ActionMarkdown,
			ActionApplied:  m.ActionApplied,
			CreatedAt:      m.CreatedAt,
		})
	}
	return result, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ensureSessionAccess(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}
	if session.UserId != userId {
		return serverutils.Forbidden("Only the session owner can delete it")
	}

	return uow.ChatSessionRepository().Delete(ctx, session.Id)
}

func (s *chatService) Completion(ctx context.Context, userId, sessionId uuid.UUID, req *dto.CompletionRequest) (*dto.CompletionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ensureSessionAccess(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	last, ok := latestUserMessage(req.Messages)
	if !ok {
		return nil, serverutils.BadRequest("The conversation has no user message to answer")
	}

	if err := s.locker.Acquire(ctx, session.Id); err != nil {
		if errors.Is(err, turnlock.ErrTurnInFlight) {
			return nil, serverutils.Conflict("Another turn is already in progress for this session")
		}
		return nil, err
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), session.Id); err != nil {
			s.log.Warn("chat", "Failed to release turn lock", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}()

	userMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.ChatRoleUser,
		Content:   last.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	editRequest := session.DocumentId != nil && intent.IsEditRequest(last.Content)

	if !editRequest {
		if metric, ok := intent.DetectMetric(last.Content); ok {
			return s.answerMetric(ctx, uow, session, metric)
		}
	}

	if s.provider == nil {
		s.persistAssistantMessage(ctx, uow, session, constant.MissingCredentialAnswer, "", nil)
		return &dto.CompletionResponse{Message: constant.MissingCredentialAnswer}, nil
	}

	in := prompt.Input{
		EditRequest: editRequest,
		History:     toLLMMessages(req.Messages),
	}

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: session.WorkspaceId})
	if err != nil {
		return nil, err
	}
	if workspace != nil {
		in.WorkspaceName = workspace.Name
	}

	var document *entity.Document
	if session.DocumentId != nil {
		document, err = uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: *session.DocumentId},
			specification.ByWorkspaceID{WorkspaceID: session.WorkspaceId},
		)
		if err != nil {
			return nil, err
		}
		if document != nil {
			in.DocumentTitle = document.Title
		}
	}

	if editRequest {
		if document == nil {
			return nil, serverutils.NotFound("Document not found")
		}
		in.DocumentMarkdown = richtext.ToMarkdown(document.Content)
	} else {
		docContext, err := s.retriever.Build(ctx, session.WorkspaceId, session.DocumentId, last.Content)
		if err != nil {
			s.log.Warn("chat", "Context retrieval failed, answering without documents", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		} else if docContext != nil && docContext.HasDocuments {
			in.ContextBlock = docContext.Message
		}
	}

	response, err := s.provider.Chat(ctx, prompt.BuildMessages(in),
		llm.WithTemperature(constant.CompletionTemperature),
		llm.WithMaxTokens(constant.CompletionMaxTokens),
		llm.WithTopP(constant.CompletionTopP),
	)
	if err != nil {
		return nil, mapProviderError(err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		response = constant.EmptyCompletionFallback
	}

	var documentMarkdown string
	if editRequest {
		documentMarkdown = extract.DocumentMarkdown(response)
	}

	metadata := map[string]interface{}{
		constant.MetadataKeyProvider: s.provider.Name(),
		constant.MetadataKeyModel:    s.provider.Model(),
	}
	s.persistAssistantMessage(ctx, uow, session, response, documentMarkdown, metadata)

	return &dto.CompletionResponse{
		Message:          response,
		DocumentMarkdown: documentMarkdown,
	}, nil
}

// answerMetric short-circuits count questions with a database answer instead
// of a model call.
func (s *chatService) answerMetric(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, metric intent.Metric) (*dto.CompletionResponse, error) {
	var answer string
	switch metric {
	case intent.MetricWorkspaceCount:
		count, err := uow.WorkspaceRepository().Count(ctx)
		if err != nil {
			return nil, err
		}
		answer = fmt.Sprintf(constant.WorkspaceCountAnswer, count)
	case intent.MetricDocumentCount:
		count, err := uow.DocumentRepository().Count(ctx, specification.ByWorkspaceID{WorkspaceID: session.WorkspaceId})
		if err != nil {
			return nil, err
		}
		answer = fmt.Sprintf(constant.DocumentCountAnswer, count)
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	metadata := map[string]interface{}{
		constant.MetadataKeyReason: constant.ReasonMetricQuestion,
	}
	s.persistAssistantMessage(ctx, uow, session, answer, "", metadata)

	return &dto.CompletionResponse{Message: answer}, nil
}

// persistAssistantMessage stores the assistant turn and bumps the session.
// Failures are logged but never surfaced; the user already has the answer.
func (s *chatService) persistAssistantMessage(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, content, actionMarkdown string, metadata map[string]interface{}) {
	message := &entity.ChatMessage{
		Id:             uuid.New(),
		SessionId:      session.Id,
		Role:           constant.ChatRoleAssistant,
		Content:        content,
		ActionMarkdown: actionMarkdown,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}

	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		s.log.Error("chat", "Failed to persist assistant message", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return
	}

	if err := uow.ChatSessionRepository().Touch(ctx, session.Id); err != nil {
		s.log.Error("chat", "Failed to touch session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (s *chatService) ApplyMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.ApplyMessageRequest) (*dto.ApplyMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ensureSessionAccess(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.DocumentId == nil {
		return nil, serverutils.BadRequest("Session is not bound to a document")
	}

	message, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByID{ID: req.MessageId},
		specification.BySessionID{SessionID: session.Id},
	)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, serverutils.NotFound("Message not found")
	}
	if message.ActionMarkdown == "" {
		return nil, serverutils.BadRequest("Message carries no document payload")
	}
	if message.ActionApplied {
		return nil, serverutils.Conflict("Message payload was already applied")
	}

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: *session.DocumentId},
		specification.ByWorkspaceID{WorkspaceID: session.WorkspaceId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, serverutils.NotFound("Document not found")
	}

	markdown := richtext.StripDuplicateTitle(message.ActionMarkdown, document.Title)
	content := richtext.FromMarkdown(markdown)

	if err := uow.DocumentRepository().UpdateContent(ctx, document.Id, content); err != nil {
		return nil, err
	}

	if err := uow.ChatMessageRepository().MarkApplied(ctx, message.Id); err != nil {
		return nil, err
	}

	s.publishDocumentReindex(ctx, document.Id)

	return &dto.ApplyMessageResponse{
		DocumentId: document.Id,
		Applied:    true,
	}, nil
}

func (s *chatService) publishDocumentReindex(ctx context.Context, documentId uuid.UUID) {
	payload, err := json.Marshal(dto.ReindexDocumentMessage{DocumentId: documentId})
	if err != nil {
		s.log.Error("chat", "Failed to marshal reindex message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("chat", "Failed to publish reindex message", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}

// latestUserMessage walks the history backwards for the turn to answer, so
// a history ending in an assistant entry still resolves to a user message.
func latestUserMessage(messages []dto.ChatMessageInput) (dto.ChatMessageInput, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constant.ChatRoleUser && strings.TrimSpace(messages[i].Content) != "" {
			return messages[i], true
		}
	}
	return dto.ChatMessageInput{}, false
}

func toLLMMessages(inputs []dto.ChatMessageInput) []llm.Message {
	messages := make([]llm.Message, 0, len(inputs))
	for _, in := range inputs {
		role := llm.RoleUser
		if in.Role == constant.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: in.Content})
	}
	return messages
}

func mapProviderError(err error) error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return serverutils.NewAppError(503, "AI provider is not configured").
			WithHint("Set GROQ_API_KEY or configure another provider")
	}
	if errors.Is(err, llm.ErrUnauthorized) {
		return serverutils.Unauthorized("AI provider rejected the credentials").
			WithHint("Check the GROQ_API_KEY value")
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return serverutils.NewAppError(502, "AI provider request failed").
			WithDetails(upstream.Message)
	}
	return err
}
