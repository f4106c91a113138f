package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/constant"
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/contract"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/ai/contextdocs"
	"github.com/fabi0dev/amby/pkg/llm"
	"github.com/fabi0dev/amby/pkg/richtext"
	"github.com/fabi0dev/amby/pkg/turnlock"
)

type fakeChatSessionRepo struct {
	session *entity.ChatSession
	touched int
}

func (f *fakeChatSessionRepo) Create(_ context.Context, _ *entity.ChatSession) error { return nil }
func (f *fakeChatSessionRepo) Update(_ context.Context, _ *entity.ChatSession) error { return nil }
func (f *fakeChatSessionRepo) Touch(_ context.Context, _ uuid.UUID) error {
	f.touched++
	return nil
}
func (f *fakeChatSessionRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeChatSessionRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.ChatSession, error) {
	return f.session, nil
}
func (f *fakeChatSessionRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}

type fakeChatMessageRepo struct {
	created []*entity.ChatMessage
}

func (f *fakeChatMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	f.created = append(f.created, message)
	return nil
}
func (f *fakeChatMessageRepo) Update(_ context.Context, _ *entity.ChatMessage) error { return nil }
func (f *fakeChatMessageRepo) MarkApplied(_ context.Context, _ uuid.UUID) error      { return nil }
func (f *fakeChatMessageRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.ChatMessage, error) {
	return nil, nil
}
func (f *fakeChatMessageRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ChatMessage, error) {
	return nil, nil
}

type fakeMemberRepo struct {
	member *entity.WorkspaceMember
}

func (f *fakeMemberRepo) Create(_ context.Context, _ *entity.WorkspaceMember) error { return nil }
func (f *fakeMemberRepo) Update(_ context.Context, _ *entity.WorkspaceMember) error { return nil }
func (f *fakeMemberRepo) Delete(_ context.Context, _ uuid.UUID) error               { return nil }
func (f *fakeMemberRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.WorkspaceMember, error) {
	return f.member, nil
}
func (f *fakeMemberRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.WorkspaceMember, error) {
	return nil, nil
}
func (f *fakeMemberRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeWorkspaceRepo struct {
	workspace *entity.Workspace
}

func (f *fakeWorkspaceRepo) Create(_ context.Context, _ *entity.Workspace) error { return nil }
func (f *fakeWorkspaceRepo) Update(_ context.Context, _ *entity.Workspace) error { return nil }
func (f *fakeWorkspaceRepo) Delete(_ context.Context, _ uuid.UUID) error         { return nil }
func (f *fakeWorkspaceRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Workspace, error) {
	return f.workspace, nil
}
func (f *fakeWorkspaceRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Workspace, error) {
	return nil, nil
}
func (f *fakeWorkspaceRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeDocumentRepo struct {
	document *entity.Document
	count    int64
}

func (f *fakeDocumentRepo) Create(_ context.Context, _ *entity.Document) error { return nil }
func (f *fakeDocumentRepo) Update(_ context.Context, _ *entity.Document) error { return nil }
func (f *fakeDocumentRepo) UpdateContent(_ context.Context, _ uuid.UUID, _ richtext.Node) error {
	return nil
}
func (f *fakeDocumentRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeDocumentRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Document, error) {
	return f.document, nil
}
func (f *fakeDocumentRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Document, error) {
	return nil, nil
}
func (f *fakeDocumentRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return f.count, nil
}

type fakeUnitOfWork struct {
	sessions   *fakeChatSessionRepo
	messages   *fakeChatMessageRepo
	members    *fakeMemberRepo
	workspaces *fakeWorkspaceRepo
	documents  *fakeDocumentRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository             { return nil }
func (u *fakeUnitOfWork) WorkspaceRepository() contract.WorkspaceRepository  { return u.workspaces }
func (u *fakeUnitOfWork) WorkspaceMemberRepository() contract.WorkspaceMemberRepository {
	return u.members
}
func (u *fakeUnitOfWork) WorkspaceInviteRepository() contract.WorkspaceInviteRepository {
	return nil
}
func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository   { return nil }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository { return u.documents }
func (u *fakeUnitOfWork) DocumentFullTextRepository() contract.DocumentFullTextRepository {
	return nil
}
func (u *fakeUnitOfWork) CommentRepository() contract.CommentRepository     { return nil }
func (u *fakeUnitOfWork) ShareLinkRepository() contract.ShareLinkRepository { return nil }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messages
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeProvider struct {
	calls    int
	response string
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, nil
}
func (f *fakeProvider) Model() string { return "fake-model" }
func (f *fakeProvider) Name() string  { return "fake" }

type silentLogger struct{}

func (silentLogger) Debug(_, _ string, _ map[string]interface{}) {}
func (silentLogger) Info(_, _ string, _ map[string]interface{})  {}
func (silentLogger) Warn(_, _ string, _ map[string]interface{})  {}
func (silentLogger) Error(_, _ string, _ map[string]interface{}) {}
func (silentLogger) Sync() error                                 { return nil }

type fakeReindexPublisher struct {
	payloads [][]byte
}

func (f *fakeReindexPublisher) Publish(_ context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type emptyDocSource struct{}

func (emptyDocSource) SearchFullText(_ context.Context, _ uuid.UUID, _ []string, _ contextdocs.SearchScope, _ int) ([]contextdocs.SearchHit, error) {
	return nil, nil
}
func (emptyDocSource) ListRecent(_ context.Context, _ uuid.UUID, _ int) ([]contextdocs.RecentDocument, error) {
	return nil, nil
}

func newCompletionFixture(session *entity.ChatSession, provider llm.Provider) (IChatService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		sessions: &fakeChatSessionRepo{session: session},
		messages: &fakeChatMessageRepo{},
		members: &fakeMemberRepo{member: &entity.WorkspaceMember{
			Id:          uuid.New(),
			WorkspaceId: session.WorkspaceId,
			UserId:      session.UserId,
			Role:        "member",
		}},
		workspaces: &fakeWorkspaceRepo{workspace: &entity.Workspace{
			Id:   session.WorkspaceId,
			Name: "Engenharia",
		}},
		documents: &fakeDocumentRepo{count: 3},
	}

	if session.DocumentId != nil {
		uow.documents.document = &entity.Document{
			Id:          *session.DocumentId,
			WorkspaceId: session.WorkspaceId,
			Title:       "Onboarding",
			Content:     richtext.EmptyDoc(),
		}
	}

	svc := NewChatService(
		&fakeFactory{uow: uow},
		provider,
		contextdocs.NewRetriever(emptyDocSource{}),
		turnlock.NewMemoryLocker(),
		&fakeReindexPublisher{},
		silentLogger{},
	)
	return svc, uow
}

func TestCompletionMetricQuestionSkipsProvider(t *testing.T) {
	session := &entity.ChatSession{
		Id:          uuid.New(),
		WorkspaceId: uuid.New(),
		UserId:      uuid.New(),
	}
	provider := &fakeProvider{response: "nunca deve ser usado"}
	svc, uow := newCompletionFixture(session, provider)

	res, err := svc.Completion(context.Background(), session.UserId, session.Id, &dto.CompletionRequest{
		Messages: []dto.ChatMessageInput{
			{Role: constant.ChatRoleUser, Content: "quantos documentos temos aqui?"},
		},
	})
	if err != nil {
		t.Fatalf("Completion error: %v", err)
	}

	if provider.calls != 0 {
		t.Errorf("provider was called %d times, want 0", provider.calls)
	}
	want := fmt.Sprintf(constant.DocumentCountAnswer, 3)
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}

	if len(uow.messages.created) != 2 {
		t.Fatalf("persisted %d messages, want user + assistant", len(uow.messages.created))
	}
	assistant := uow.messages.created[1]
	if assistant.Role != constant.ChatRoleAssistant {
		t.Errorf("persisted role = %q", assistant.Role)
	}
	if assistant.Content != want {
		t.Errorf("persisted content = %q", assistant.Content)
	}
	if assistant.Metadata[constant.MetadataKeyReason] != constant.ReasonMetricQuestion {
		t.Errorf("metadata reason = %v", assistant.Metadata[constant.MetadataKeyReason])
	}
	if uow.sessions.touched != 1 {
		t.Errorf("session touched %d times, want 1", uow.sessions.touched)
	}
}

func TestCompletionEditTurnExtractsDocumentMarkdown(t *testing.T) {
	documentId := uuid.New()
	session := &entity.ChatSession{
		Id:          uuid.New(),
		WorkspaceId: uuid.New(),
		DocumentId:  &documentId,
		UserId:      uuid.New(),
	}
	payload := "# Onboarding\n\nPasso a passo atualizado."
	provider := &fakeProvider{response: "Claro!\n```DOCUMENT_MARKDOWN\n" + payload + "\n```"}
	svc, uow := newCompletionFixture(session, provider)

	res, err := svc.Completion(context.Background(), session.UserId, session.Id, &dto.CompletionRequest{
		Messages: []dto.ChatMessageInput{
			{Role: constant.ChatRoleUser, Content: "reescreva o documento de onboarding"},
		},
	})
	if err != nil {
		t.Fatalf("Completion error: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("provider was called %d times, want 1", provider.calls)
	}
	if res.DocumentMarkdown != payload {
		t.Errorf("document markdown = %q, want %q", res.DocumentMarkdown, payload)
	}

	if len(uow.messages.created) != 2 {
		t.Fatalf("persisted %d messages, want user + assistant", len(uow.messages.created))
	}
	assistant := uow.messages.created[1]
	if assistant.ActionMarkdown != payload {
		t.Errorf("persisted payload = %q, want %q", assistant.ActionMarkdown, payload)
	}
	if assistant.Metadata[constant.MetadataKeyProvider] != "fake" {
		t.Errorf("metadata provider = %v", assistant.Metadata[constant.MetadataKeyProvider])
	}
}

func TestCompletionQuestionTurnKeepsResponseAsProse(t *testing.T) {
	session := &entity.ChatSession{
		Id:          uuid.New(),
		WorkspaceId: uuid.New(),
		UserId:      uuid.New(),
	}
	provider := &fakeProvider{response: "O deploy roda assim:\n```DOCUMENT_MARKDOWN\n# Rascunho\n```"}
	svc, uow := newCompletionFixture(session, provider)

	res, err := svc.Completion(context.Background(), session.UserId, session.Id, &dto.CompletionRequest{
		Messages: []dto.ChatMessageInput{
			{Role: constant.ChatRoleUser, Content: "como funciona o processo de deploy?"},
		},
	})
	if err != nil {
		t.Fatalf("Completion error: %v", err)
	}

	if res.DocumentMarkdown != "" {
		t.Errorf("document markdown = %q, want empty outside edit turns", res.DocumentMarkdown)
	}
	assistant := uow.messages.created[1]
	if assistant.ActionMarkdown != "" {
		t.Errorf("persisted payload = %q, want empty", assistant.ActionMarkdown)
	}
}
