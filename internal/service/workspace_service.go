package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/logger"
	"github.com/fabi0dev/amby/internal/pkg/mailer"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/utils"
)

const inviteExpiry = 7 * 24 * time.Hour

type IWorkspaceService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.WorkspaceResponse, error)
	Get(ctx context.Context, userId, workspaceId uuid.UUID) (*dto.WorkspaceResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, userId, workspaceId uuid.UUID) error

	ListMembers(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.WorkspaceMemberResponse, error)
	UpdateMemberRole(ctx context.Context, userId, workspaceId, memberId uuid.UUID, req *dto.UpdateMemberRoleRequest) error
	RemoveMember(ctx context.Context, userId, workspaceId, memberId uuid.UUID) error

	CreateInvite(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateInviteRequest) (*dto.InviteResponse, error)
	ListInvites(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.InviteResponse, error)
	RevokeInvite(ctx context.Context, userId, workspaceId, inviteId uuid.UUID) error
	AcceptInvite(ctx context.Context, userId uuid.UUID, req *dto.AcceptInviteRequest) (*dto.AcceptInviteResponse, error)
}

type workspaceService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IWorkspaceService {
	return &workspaceService{
		uowFactory:   uowFactory,
		emailService: emailService,
		log:          log,
	}
}

// requireMember returns the caller's membership row or a 403.
func requireMember(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, userId uuid.UUID) (*entity.WorkspaceMember, error) {
	member, err := uow.WorkspaceMemberRepository().FindOne(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, serverutils.Forbidden("Acesso negado ao workspace")
	}
	return member, nil
}

func roleAtLeast(role, required string) bool {
	rank := map[string]int{
		entity.WorkspaceRoleMember: 1,
		entity.WorkspaceRoleAdmin:  2,
		entity.WorkspaceRoleOwner:  3,
	}
	return rank[role] >= rank[required]
}

func (s *workspaceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	workspace := &entity.Workspace{
		Id:        uuid.New(),
		Name:      req.Name,
		Slug:      utils.UniqueSlug(req.Name),
		OwnerId:   userId,
		CreatedAt: time.Now(),
	}

	if err := uow.WorkspaceRepository().Create(ctx, workspace); err != nil {
		return nil, err
	}

	owner := &entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: workspace.Id,
		UserId:      userId,
		Role:        entity.WorkspaceRoleOwner,
		CreatedAt:   time.Now(),
	}

	if err := uow.WorkspaceMemberRepository().Create(ctx, owner); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateWorkspaceResponse{
		Id:   workspace.Id,
		Slug: workspace.Slug,
	}, nil
}

func (s *workspaceService) List(ctx context.Context, userId uuid.UUID) ([]*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.WorkspaceMemberRepository().FindAll(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []*dto.WorkspaceResponse{}, nil
	}

	roleByWorkspace := make(map[uuid.UUID]string, len(memberships))
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		roleByWorkspace[m.WorkspaceId] = m.Role
		ids = append(ids, m.WorkspaceId)
	}

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		result = append(result, &dto.WorkspaceResponse{
			Id:        w.Id,
			Name:      w.Name,
			Slug:      w.Slug,
			Role:      roleByWorkspace[w.Id],
			CreatedAt: w.CreatedAt,
			UpdatedAt: w.UpdatedAt,
		})
	}
	return result, nil
}

func (s *workspaceService) Get(ctx context.Context, userId, workspaceId uuid.UUID) (*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, serverutils.NotFound("Workspace not found")
	}

	return &dto.WorkspaceResponse{
		Id:        workspace.Id,
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		Role:      member.Role,
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}, nil
}

func (s *workspaceService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := requireMember(ctx, uow, req.Id, userId)
	if err != nil {
		return nil, err
	}
	if !roleAtLeast(member.Role, entity.WorkspaceRoleAdmin) {
		return nil, serverutils.Forbidden("Only admins can update the workspace")
	}

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, serverutils.NotFound("Workspace not found")
	}

	workspace.Name = req.Name
	if err := uow.WorkspaceRepository().Update(ctx, workspace); err != nil {
		return nil, err
	}

	return &dto.WorkspaceResponse{
		Id:        workspace.Id,
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		Role:      member.Role,
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}, nil
}

func (s *workspaceService) Delete(ctx context.Context, userId, workspaceId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if member.Role != entity.WorkspaceRoleOwner {
		return serverutils.Forbidden("Only the owner can delete the workspace")
	}

	return uow.WorkspaceRepository().Delete(ctx, workspaceId)
}

func (s *workspaceService) ListMembers(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.WorkspaceMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	members, err := uow.WorkspaceMemberRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*dto.WorkspaceMemberResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserId)
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	usersById := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		usersById[u.Id] = u
	}

	result := make([]*dto.WorkspaceMemberResponse, 0, len(members))
	for _, m := range members {
		resp := &dto.WorkspaceMemberResponse{
			Id:       m.Id,
			UserId:   m.UserId,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
		if u, ok := usersById[m.UserId]; ok {
			resp.Name = u.Name
			resp.Email = u.Email
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *workspaceService) UpdateMemberRole(ctx context.Context, userId, workspaceId, memberId uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if !roleAtLeast(caller.Role, entity.WorkspaceRoleAdmin) {
		return serverutils.Forbidden("Only admins can change member roles")
	}

	target, err := uow.WorkspaceMemberRepository().FindOne(ctx,
		specification.ByID{ID: memberId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return err
	}
	if target == nil {
		return serverutils.NotFound("Member not found")
	}
	if target.Role == entity.WorkspaceRoleOwner {
		return serverutils.Forbidden("The owner role cannot be changed")
	}

	target.Role = req.Role
	return uow.WorkspaceMemberRepository().Update(ctx, target)
}

func (s *workspaceService) RemoveMember(ctx context.Context, userId, workspaceId, memberId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}

	target, err := uow.WorkspaceMemberRepository().FindOne(ctx,
		specification.ByID{ID: memberId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return err
	}
	if target == nil {
		return serverutils.NotFound("Member not found")
	}
	if target.Role == entity.WorkspaceRoleOwner {
		return serverutils.Forbidden("The owner cannot be removed")
	}

	// Members may leave on their own; removing others requires admin.
	if target.UserId != userId && !roleAtLeast(caller.Role, entity.WorkspaceRoleAdmin) {
		return serverutils.Forbidden("Only admins can remove members")
	}

	return uow.WorkspaceMemberRepository().Delete(ctx, target.Id)
}

func (s *workspaceService) CreateInvite(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}
	if !roleAtLeast(caller.Role, entity.WorkspaceRoleAdmin) {
		return nil, serverutils.Forbidden("Only admins can invite members")
	}

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, serverutils.NotFound("Workspace not found")
	}

	invited, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if invited != nil {
		existing, err := uow.WorkspaceMemberRepository().FindOne(ctx,
			specification.ByWorkspaceID{WorkspaceID: workspaceId},
			specification.ByUserID{UserID: invited.Id},
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, serverutils.Conflict("User is already a member of this workspace")
		}
	}

	pending, err := uow.WorkspaceInviteRepository().FindOne(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ByEmail{Email: req.Email},
		specification.ByStatus{Status: entity.InviteStatusPending},
	)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, serverutils.Conflict("An invite for this email is already pending")
	}

	invite := &entity.WorkspaceInvite{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		Email:       req.Email,
		Role:        req.Role,
		Token:       uuid.New().String(),
		Status:      entity.InviteStatusPending,
		InvitedById: userId,
		ExpiresAt:   time.Now().Add(inviteExpiry),
		CreatedAt:   time.Now(),
	}

	if err := uow.WorkspaceInviteRepository().Create(ctx, invite); err != nil {
		return nil, err
	}

	inviter, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	inviterName := "Alguém"
	if inviter != nil {
		inviterName = inviter.Name
	}

	// The invite stays valid even when delivery fails; the token can be
	// resent from the members page.
	if err := s.emailService.SendWorkspaceInvite(req.Email, workspace.Name, inviterName, invite.Token); err != nil {
		s.log.Error("workspace", "Failed to send invite email", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
	}

	return &dto.InviteResponse{
		Id:        invite.Id,
		Email:     invite.Email,
		Role:      invite.Role,
		Status:    invite.Status,
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	}, nil
}

func (s *workspaceService) ListInvites(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.InviteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}
	if !roleAtLeast(caller.Role, entity.WorkspaceRoleAdmin) {
		return nil, serverutils.Forbidden("Only admins can list invites")
	}

	invites, err := uow.WorkspaceInviteRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		result = append(result, &dto.InviteResponse{
			Id:        inv.Id,
			Email:     inv.Email,
			Role:      inv.Role,
			Status:    inv.Status,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		})
	}
	return result, nil
}

func (s *workspaceService) RevokeInvite(ctx context.Context, userId, workspaceId, inviteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if !roleAtLeast(caller.Role, entity.WorkspaceRoleAdmin) {
		return serverutils.Forbidden("Only admins can revoke invites")
	}

	invite, err := uow.WorkspaceInviteRepository().FindOne(ctx,
		specification.ByID{ID: inviteId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return err
	}
	if invite == nil {
		return serverutils.NotFound("Invite not found")
	}
	if invite.Status != entity.InviteStatusPending {
		return serverutils.Conflict("Only pending invites can be revoked")
	}

	invite.Status = entity.InviteStatusRevoked
	return uow.WorkspaceInviteRepository().Update(ctx, invite)
}

func (s *workspaceService) AcceptInvite(ctx context.Context, userId uuid.UUID, req *dto.AcceptInviteRequest) (*dto.AcceptInviteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invite, err := uow.WorkspaceInviteRepository().FindOne(ctx, specification.ByToken{Token: req.Token})
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, serverutils.NotFound("Invite not found")
	}
	if invite.Status != entity.InviteStatusPending {
		return nil, serverutils.Conflict("Invite is no longer valid")
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, serverutils.Conflict("Invite has expired")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NotFound("User not found")
	}
	if user.Email != invite.Email {
		return nil, serverutils.Forbidden("Invite was issued to a different email")
	}

	existing, err := uow.WorkspaceMemberRepository().FindOne(ctx,
		specification.ByWorkspaceID{WorkspaceID: invite.WorkspaceId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Conflict("User is already a member of this workspace")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	member := &entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: invite.WorkspaceId,
		UserId:      userId,
		Role:        invite.Role,
		CreatedAt:   time.Now(),
	}
	if err := uow.WorkspaceMemberRepository().Create(ctx, member); err != nil {
		return nil, err
	}

	invite.Status = entity.InviteStatusAccepted
	if err := uow.WorkspaceInviteRepository().Update(ctx, invite); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.AcceptInviteResponse{
		WorkspaceId: invite.WorkspaceId,
		Role:        invite.Role,
	}, nil
}
