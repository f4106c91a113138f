package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workspace struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Slug      string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	OwnerId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

type WorkspaceMember struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index:idx_workspace_members_ws_user,unique"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index:idx_workspace_members_ws_user,unique"`
	Role        string    `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

type WorkspaceInvite struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Role        string    `gorm:"type:varchar(32);not null"`
	Token       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status      string    `gorm:"type:varchar(32);not null;default:pending"`
	InvitedById uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WorkspaceInvite) TableName() string {
	return "workspace_invites"
}
