package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateProjectRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,min=2,max=255"`
	Description string    `json:"description" validate:"max=2000"`
}

type ProjectResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
