package dto

import "github.com/google/uuid"

type SearchResultResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	Snippet    string    `json:"snippet"`
}
