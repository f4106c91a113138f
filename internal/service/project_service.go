package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
)

type IProjectService interface {
	Create(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	List(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.ProjectResponse, error)
	Get(ctx context.Context, userId, workspaceId, projectId uuid.UUID) (*dto.ProjectResponse, error)
	Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, userId, workspaceId, projectId uuid.UUID) error
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{
		uowFactory: uowFactory,
	}
}

func projectToResponse(project *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		Id:          project.Id,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func (s *projectService) Create(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	project := &entity.Project{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}

	return &dto.CreateProjectResponse{Id: project.Id}, nil
}

func (s *projectService) List(ctx context.Context, userId, workspaceId uuid.UUID) ([]*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, projectToResponse(p))
	}
	return result, nil
}

func (s *projectService) Get(ctx context.Context, userId, workspaceId, projectId uuid.UUID) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NotFound("Project not found")
	}

	return projectToResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NotFound("Project not found")
	}

	project.Name = req.Name
	project.Description = req.Description
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return projectToResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, userId, workspaceId, projectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if !roleAtLeast(member.Role, entity.WorkspaceRoleAdmin) {
		return serverutils.Forbidden("Only admins can delete projects")
	}

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return err
	}
	if project == nil {
		return serverutils.NotFound("Project not found")
	}

	return uow.ProjectRepository().Delete(ctx, projectId)
}
