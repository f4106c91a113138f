package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/pkg/richtext"
)

type CreateShareLinkRequest struct {
	ExpiresInDays int `json:"expires_in_days" validate:"min=0,max=365"`
}

type ShareLinkResponse struct {
	Id        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SharedDocumentResponse is the public, read-only view of a shared document.
type SharedDocumentResponse struct {
	Title     string        `json:"title"`
	Content   richtext.Node `json:"content"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}
