package entity

import (
	"time"

	"github.com/google/uuid"
)

// Workspace member roles, owner > admin > member.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"
)

// Invite lifecycle states.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRevoked  = "revoked"
)

type Workspace struct {
	Id        uuid.UUID
	Name      string
	Slug      string
	OwnerId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type WorkspaceMember struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	UserId      uuid.UUID
	Role        string
	CreatedAt   time.Time
}

type WorkspaceInvite struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Email       string
	Role        string
	Token       string
	Status      string
	InvitedById uuid.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
