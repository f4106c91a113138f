package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Body     string     `json:"body" validate:"required,min=1,max=10000"`
	ParentId *uuid.UUID `json:"parent_id"`
}

type CreateCommentResponse struct {
	Id uuid.UUID `json:"id"`
}

type CommentResponse struct {
	Id         uuid.UUID  `json:"id"`
	AuthorId   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	ParentId   *uuid.UUID `json:"parent_id,omitempty"`
	Body       string     `json:"body"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
