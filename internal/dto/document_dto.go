package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/pkg/richtext"
)

type CreateDocumentRequest struct {
	Title     string         `json:"title" validate:"required,min=1,max=255"`
	ProjectId *uuid.UUID     `json:"project_id"`
	ParentId  *uuid.UUID     `json:"parent_id"`
	Content   *richtext.Node `json:"content"`
}

type CreateDocumentResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type UpdateDocumentRequest struct {
	Id      uuid.UUID      `json:"-"`
	Title   string         `json:"title" validate:"required,min=1,max=255"`
	Content *richtext.Node `json:"content"`
}

type MoveDocumentRequest struct {
	Id        uuid.UUID  `json:"-"`
	ProjectId *uuid.UUID `json:"project_id"`
	ParentId  *uuid.UUID `json:"parent_id"`
}

type DocumentResponse struct {
	Id        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	ProjectId *uuid.UUID    `json:"project_id,omitempty"`
	ParentId  *uuid.UUID    `json:"parent_id,omitempty"`
	Content   richtext.Node `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

type DocumentSummaryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	ProjectId *uuid.UUID `json:"project_id,omitempty"`
	ParentId  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
