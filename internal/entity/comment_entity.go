package entity

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	AuthorId   uuid.UUID
	ParentId   *uuid.UUID
	Body       string
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
