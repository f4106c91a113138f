package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/pkg/richtext"
)

type Document struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	ProjectId   *uuid.UUID
	ParentId    *uuid.UUID
	Title       string
	Slug        string
	Content     richtext.Node
	CreatedById uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// DocumentFullText is the searchable projection of a document, kept in sync
// by the reindex consumer.
type DocumentFullText struct {
	DocumentId  uuid.UUID
	WorkspaceId uuid.UUID
	Title       string
	Body        string
	IndexedAt   time.Time
}
