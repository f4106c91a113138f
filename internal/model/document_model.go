package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId   *uuid.UUID     `gorm:"type:uuid;index"`
	ParentId    *uuid.UUID     `gorm:"type:uuid;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Slug        string         `gorm:"type:varchar(255);not null;index"`
	Content     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedById uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentFullText struct {
	DocumentId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Body        string    `gorm:"type:text;not null"`
	IndexedAt   time.Time `gorm:"autoUpdateTime"`
}

func (DocumentFullText) TableName() string {
	return "document_fulltexts"
}
