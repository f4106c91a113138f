package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string

	// ActionMarkdown is the replacement-document payload extracted from an
	// assistant response, present only on edit turns.
	ActionMarkdown string
	ActionApplied  bool

	Metadata  map[string]interface{}
	CreatedAt time.Time
}
