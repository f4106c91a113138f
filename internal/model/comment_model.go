package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;index"`
	AuthorId   uuid.UUID      `gorm:"type:uuid;not null"`
	ParentId   *uuid.UUID     `gorm:"type:uuid;index"`
	Body       string         `gorm:"type:text;not null"`
	ResolvedAt *time.Time     `gorm:""`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}
