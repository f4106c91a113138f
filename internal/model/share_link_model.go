package model

import (
	"time"

	"github.com/google/uuid"
)

type ShareLink struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token       string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedById uuid.UUID  `gorm:"type:uuid;not null"`
	ExpiresAt   *time.Time `gorm:""`
	RevokedAt   *time.Time `gorm:""`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (ShareLink) TableName() string {
	return "share_links"
}
