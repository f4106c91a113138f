package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionRequest struct {
	WorkspaceId uuid.UUID  `json:"workspace_id" validate:"required"`
	DocumentId  *uuid.UUID `json:"document_id"`
	Title       string     `json:"title" validate:"max=255"`
}

type CreateChatSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatSessionResponse struct {
	Id          uuid.UUID  `json:"id"`
	WorkspaceId uuid.UUID  `json:"workspace_id"`
	DocumentId  *uuid.UUID `json:"document_id,omitempty"`
	Title       string     `json:"title,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ChatMessageInput struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type CompletionRequest struct {
	Messages []ChatMessageInput `json:"messages" validate:"required,min=1,dive"`
}

type CompletionResponse struct {
	Message          string `json:"message"`
	DocumentMarkdown string `json:"documentMarkdown,omitempty"`
}

type ChatMessageResponse struct {
	Id             uuid.UUID `json:"id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	ActionMarkdown string    `json:"action_markdown,omitempty"`
	ActionApplied  bool      `json:"action_applied"`
	CreatedAt      time.Time `json:"created_at"`
}

type ApplyMessageRequest struct {
	MessageId uuid.UUID `json:"message_id" validate:"required"`
}

type ApplyMessageResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Applied    bool      `json:"applied"`
}

// ReindexDocumentMessage is the payload published to the reindex topic.
type ReindexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
