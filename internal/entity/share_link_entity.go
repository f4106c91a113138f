package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShareLink struct {
	Id          uuid.UUID
	DocumentId  uuid.UUID
	Token       string
	CreatedById uuid.UUID
	ExpiresAt   *time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

func (s *ShareLink) IsActive(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}
